package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/plwgs/apparel_api/internal/cache"
	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/repository"
	"github.com/plwgs/apparel_api/internal/utils"
)

// SaveProductRequest is the admin payload for creating or updating a
// product. Image entries may be inline data URIs or already-remote URLs.
type SaveProductRequest struct {
	Name              string             `json:"name" binding:"required"`
	Description       string             `json:"description"`
	Price             decimal.Decimal    `json:"price"`
	OriginalPrice     decimal.Decimal    `json:"original_price"`
	Category          string             `json:"category"`
	StockQuantity     int                `json:"stock_quantity"`
	LowStockThreshold int                `json:"low_stock_threshold"`
	SalePercentage    int                `json:"sale_percentage"`
	IsFeatured        bool               `json:"is_featured"`
	SizePricing       models.SizePricing `json:"size_pricing"`
	Tags              models.StringList  `json:"tags"`
	Colors            models.StringList  `json:"colors"`
	Sizes             models.StringList  `json:"sizes"`
	Specifications    models.Document    `json:"specifications"`
	Features          models.Document    `json:"features"`
	Images            []ImageInput       `json:"images"`
}

// SaveProductResult pairs the stored row with the per-image upload outcomes
// so callers can see partial image failures without failing the save.
type SaveProductResult struct {
	Product  *models.Product `json:"product"`
	Failures []ImageFailure  `json:"image_failures,omitempty"`
}

// ProductService orchestrates the product save pipeline: resolve images
// through the CDN, write the canonical row, keep the read cache honest.
// Static pages are rebuilt only on demand, never automatically on write.
type ProductService struct {
	products *repository.ProductRepository
	images   *ImageService
	pages    *StaticPageService
	cache    *cache.ProductCache
}

// NewProductService constructs a ProductService.
func NewProductService(products *repository.ProductRepository, images *ImageService, pages *StaticPageService, productCache *cache.ProductCache) *ProductService {
	return &ProductService{products: products, images: images, pages: pages, cache: productCache}
}

// CreateProduct uploads any supplied images, then inserts the canonical row.
// Image failures are reported but do not block the save: the product may be
// stored with fewer images than requested.
func (s *ProductService) CreateProduct(ctx context.Context, req *SaveProductRequest) (*SaveProductResult, error) {
	p := &models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		OriginalPrice:     req.OriginalPrice,
		Category:          req.Category,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		SalePercentage:    req.SalePercentage,
		IsFeatured:        req.IsFeatured,
		SizePricing:       req.SizePricing,
		Tags:              req.Tags,
		Colors:            req.Colors,
		Sizes:             req.Sizes,
		Specifications:    req.Specifications,
		Features:          req.Features,
		IsActive:          true,
	}
	if p.StockQuantity == 0 {
		p.StockQuantity = 50
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 5
	}
	if p.SizePricing == nil {
		p.SizePricing = models.DefaultSizePricing()
	}

	result := &SaveProductResult{Product: p}
	if len(req.Images) > 0 {
		upload := s.images.UploadProductImages(ctx, req.Images, req.Name)
		p.ImageURL = upload.MainImage
		p.SubImages = upload.SubImages
		result.Failures = upload.Failures
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	log.Info().Int("id", p.ID).Str("name", p.Name).Msg("product created")
	return result, nil
}

// UpdateProduct applies the payload over the existing row. Newly supplied
// images are resolved first; when the payload carries no images the stored
// URLs are kept.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, req *SaveProductRequest) (*SaveProductResult, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.OriginalPrice = req.OriginalPrice
	p.Category = req.Category
	p.StockQuantity = req.StockQuantity
	p.LowStockThreshold = req.LowStockThreshold
	p.SalePercentage = req.SalePercentage
	p.IsFeatured = req.IsFeatured
	p.Tags = req.Tags
	p.Colors = req.Colors
	p.Sizes = req.Sizes
	p.Specifications = req.Specifications
	p.Features = req.Features
	if req.SizePricing != nil {
		p.SizePricing = req.SizePricing
	}

	result := &SaveProductResult{Product: p}
	if len(req.Images) > 0 {
		upload := s.images.UploadProductImages(ctx, req.Images, req.Name)
		if upload.MainImage != "" {
			p.ImageURL = upload.MainImage
			p.SubImages = upload.SubImages
		}
		result.Failures = upload.Failures
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	log.Info().Int("id", id).Msg("product updated")
	return result, nil
}

// DeleteProduct soft-deletes: the row stays in history with is_active false.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.products.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	log.Info().Int("id", id).Msg("product deactivated")
	return nil
}

// GetPublicProduct serves storefront reads through the cache.
func (s *ProductService) GetPublicProduct(ctx context.Context, id int) (*models.Product, error) {
	if p, err := s.cache.Get(ctx, id); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("product cache read failed")
	} else if p != nil {
		return p, nil
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, utils.ErrProductNotFound
	}

	if err := s.cache.Set(ctx, p); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("product cache write failed")
	}
	return p, nil
}

// ListProducts returns a page of active products.
func (s *ProductService) ListProducts(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error) {
	return s.products.GetAllPaged(ctx, category, search, page, limit)
}

// RebuildPage regenerates the static artifact for one product from its
// current canonical row.
func (s *ProductService) RebuildPage(ctx context.Context, id int) (string, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", utils.ErrProductNotFound
		}
		return "", fmt.Errorf("load product %d: %w", id, err)
	}
	return s.pages.BuildStaticProductPage(p)
}

// BuildAllPages rebuilds every active product's static page, continuing past
// individual failures. Returns pages built and per-product failures.
func (s *ProductService) BuildAllPages(ctx context.Context) (int, []error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return 0, []error{fmt.Errorf("list active products: %w", err)}
	}

	var failures []error
	built := 0
	for i := range products {
		if _, err := s.pages.BuildStaticProductPage(&products[i]); err != nil {
			failures = append(failures, fmt.Errorf("product %d: %w", products[i].ID, err))
			continue
		}
		built++
	}
	return built, failures
}

func (s *ProductService) invalidate(ctx context.Context, id int) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("product cache invalidation failed")
	}
}

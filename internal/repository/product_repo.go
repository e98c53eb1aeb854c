package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/plwgs/apparel_api/internal/models"
)

// ProductRepository handles data access for canonical product rows.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productColumns is the insert/update column list shared by Create and Update.
const productColumns = `name, description, price, original_price, category,
        stock_quantity, low_stock_threshold, size_pricing, image_url, sub_images,
        tags, colors, sizes, specifications, features,
        is_featured, is_active, sale_percentage`

// Create inserts a product and populates its id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	q := `INSERT INTO products (` + productColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		p.Name, p.Description, p.Price, p.OriginalPrice, p.Category,
		p.StockQuantity, p.LowStockThreshold, p.SizePricing, p.ImageURL, p.SubImages,
		p.Tags, p.Colors, p.Sizes, p.Specifications, p.Features,
		p.IsFeatured, p.IsActive, p.SalePercentage,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update rewrites every mutable column of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	const q = `UPDATE products SET
            name = $1, description = $2, price = $3, original_price = $4, category = $5,
            stock_quantity = $6, low_stock_threshold = $7, size_pricing = $8, image_url = $9, sub_images = $10,
            tags = $11, colors = $12, sizes = $13, specifications = $14, features = $15,
            is_featured = $16, is_active = $17, sale_percentage = $18, updated_at = NOW()
        WHERE id = $19
        RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, q,
		p.Name, p.Description, p.Price, p.OriginalPrice, p.Category,
		p.StockQuantity, p.LowStockThreshold, p.SizePricing, p.ImageURL, p.SubImages,
		p.Tags, p.Colors, p.Sizes, p.Specifications, p.Features,
		p.IsFeatured, p.IsActive, p.SalePercentage, p.ID,
	).Scan(&p.UpdatedAt)
}

// GetByID returns a single product by id, active or not.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetAllPaged returns active products with optional category filter and name
// search, newest first, plus the total count. Page begins at 1.
func (r *ProductRepository) GetAllPaged(ctx context.Context, category, search string, page, limit int) ([]models.Product, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	const baseWhere = `WHERE is_active = true
        AND ($1 = '' OR category = $1)
        AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM products `+baseWhere, category, search); err != nil {
		return nil, 0, err
	}

	var products []models.Product
	listQuery := `SELECT * FROM products ` + baseWhere + `
        ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	if err := r.db.SelectContext(ctx, &products, listQuery, category, search, limit, offset); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListActive returns every active product, oldest first. Used by the static
// page builder when rebuilding the whole catalog.
func (r *ProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	const q = `SELECT * FROM products WHERE is_active = true ORDER BY id`

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// SetActive flips the soft-delete flag. Rows are never removed from history.
func (r *ProductRepository) SetActive(ctx context.Context, id int, active bool) error {
	const q = `UPDATE products SET is_active = $2, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plwgs/apparel_api/internal/service"
	"github.com/plwgs/apparel_api/internal/utils"
)

// ProductHandler serves public storefront catalog reads.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	search := c.Query("search")
	page, limit := 1, 50
	if v := c.Query("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			page = p
		}
	}
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), category, search, page, limit)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", products, page, limit, total)
}

// GetProduct handles GET /api/products/public/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	product, err := h.productService.GetPublicProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve product")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plwgs/apparel_api/internal/service"
	"github.com/plwgs/apparel_api/internal/utils"
)

// CatalogAdminHandler serves admin product mutations and the on-demand
// maintenance operations (static page rebuilds, category reconciliation,
// size pricing migration).
type CatalogAdminHandler struct {
	productService   *service.ProductService
	reconcileService *service.ReconcileService
	schemaService    *service.SchemaService
}

// NewCatalogAdminHandler constructs a CatalogAdminHandler.
func NewCatalogAdminHandler(productService *service.ProductService, reconcileService *service.ReconcileService, schemaService *service.SchemaService) *CatalogAdminHandler {
	return &CatalogAdminHandler{
		productService:   productService,
		reconcileService: reconcileService,
		schemaService:    schemaService,
	}
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogAdminHandler) CreateProduct(c *gin.Context) {
	var req service.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}
	utils.Success(c, 201, "Product created", result)
}

// UpdateProduct handles PUT /api/admin/products/:id
func (h *CatalogAdminHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	var req service.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		return
	}
	utils.Success(c, 200, "Product updated", result)
}

// DeleteProduct handles DELETE /api/admin/products/:id (soft delete).
func (h *CatalogAdminHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted", nil)
}

// RebuildPage handles POST /api/admin/products/:id/rebuild-page
func (h *CatalogAdminHandler) RebuildPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be numeric")
		return
	}

	path, err := h.productService.RebuildPage(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "BUILD_FAILED", "Failed to build static page")
		return
	}
	utils.Success(c, 200, "Static page built", gin.H{"path": path})
}

// ReconcileCategories handles POST /api/admin/maintenance/reconcile-categories
func (h *CatalogAdminHandler) ReconcileCategories(c *gin.Context) {
	report, err := h.reconcileService.EnsureFallbackCategory(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "RECONCILE_FAILED", "Category reconciliation failed")
		return
	}
	utils.Success(c, 200, "Categories reconciled", report)
}

// MigrateSizePricing handles POST /api/admin/maintenance/size-pricing
func (h *CatalogAdminHandler) MigrateSizePricing(c *gin.Context) {
	report, err := h.schemaService.EnsureSizePricingColumn(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "MIGRATION_FAILED", "Size pricing migration failed")
		return
	}
	utils.Success(c, 200, "Size pricing schema ensured", report)
}

package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/service"
	"github.com/plwgs/apparel_api/internal/utils"
)

// CategoryHandler serves category reads and admin category management.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

type createCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCategory handles POST /api/admin/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	category := &models.Category{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.categoryService.CreateCategory(c.Request.Context(), category); err != nil {
		if errors.Is(err, utils.ErrCategoryExists) {
			utils.Error(c, 409, "CATEGORY_EXISTS", "A category with that name already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create category")
		return
	}
	utils.Success(c, 201, "Category created", category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Category id must be numeric")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, utils.ErrCategoryNotFound):
			utils.Error(c, 404, "CATEGORY_NOT_FOUND", "Category not found")
		case errors.Is(err, utils.ErrCategoryProtected):
			utils.Error(c, 403, "CATEGORY_PROTECTED", "The fallback category cannot be deleted")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete category")
		}
		return
	}
	utils.Success(c, 200, "Category deleted", nil)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/repository"
	"github.com/plwgs/apparel_api/internal/utils"
)

// CategoryService handles admin category management with fallback
// protection. Deleting a non-fallback category can orphan products; the
// reconciler repairs that out-of-band.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// ListCategories returns all categories in display order with product counts.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory inserts a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := s.categories.Create(ctx, c); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return utils.ErrCategoryExists
		}
		return fmt.Errorf("create category: %w", err)
	}
	log.Info().Int("id", c.ID).Str("name", c.Name).Msg("category created")
	return nil
}

// DeleteCategory removes a category unless it is the protected fallback.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrCategoryNotFound
		}
		return fmt.Errorf("load category %d: %w", id, err)
	}
	if c.IsFallback() {
		return utils.ErrCategoryProtected
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	log.Warn().Int("id", id).Str("name", c.Name).Msg("category deleted; products referencing it are orphaned until reconciliation")
	return nil
}

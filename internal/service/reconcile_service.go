package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/repository"
)

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	CategoryID        int    `json:"category_id"`
	CategoryName      string `json:"category_name"`
	CategoryCreated   bool   `json:"category_created"`
	OrphansReassigned int64  `json:"orphans_reassigned"`
	OrphansRemaining  int    `json:"orphans_remaining"`
}

// ReconcileService repairs category integrity: it guarantees the protected
// fallback category exists and that every product references a category that
// exists, reassigning orphans to the fallback.
type ReconcileService struct {
	categories *repository.CategoryRepository
}

// NewReconcileService constructs a ReconcileService.
func NewReconcileService(categories *repository.CategoryRepository) *ReconcileService {
	return &ReconcileService{categories: categories}
}

// EnsureFallbackCategory runs one reconciliation pass as a single logical
// unit: find or create the fallback category, reassign every orphaned product
// to it in one bulk update, then verify no orphans remain. Any step failure
// stops the pass and surfaces the error; there is no rollback — the fallback
// category, once created, persists.
//
// Matching is a case-insensitive substring check on the fallback keyword, so
// a pre-existing near-duplicate ("Uncategorized") satisfies the invariant
// instead of spawning a second fallback. Leniency over strictness keeps
// repeated runs from ever duplicating the row.
func (s *ReconcileService) EnsureFallbackCategory(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}

	fallback, err := s.categories.FindByKeyword(ctx, models.FallbackCategoryKeyword)
	switch {
	case err == nil:
		log.Info().Str("category", fallback.Name).Int("id", fallback.ID).Msg("fallback category already exists")
	case errors.Is(err, sql.ErrNoRows):
		fallback = &models.Category{
			Name:        models.FallbackCategoryName,
			Description: "Default category for uncategorized products - DO NOT DELETE - System Critical",
			// Maximal display order: the fallback always sorts last.
			DisplayOrder: 999,
		}
		if err := s.categories.Create(ctx, fallback); err != nil {
			return nil, fmt.Errorf("create fallback category: %w", err)
		}
		report.CategoryCreated = true
		log.Info().Str("category", fallback.Name).Int("id", fallback.ID).Msg("fallback category created")
	default:
		return nil, fmt.Errorf("look up fallback category: %w", err)
	}
	report.CategoryID = fallback.ID
	report.CategoryName = fallback.Name

	orphans, err := s.categories.ListOrphans(ctx)
	if err != nil {
		return report, fmt.Errorf("scan for orphaned products: %w", err)
	}
	if len(orphans) == 0 {
		log.Info().Msg("no orphaned products found")
		return report, nil
	}

	for _, o := range orphans {
		log.Warn().Int("id", o.ID).Str("name", o.Name).Str("category", o.Category).Msg("orphaned product")
	}

	reassigned, err := s.categories.ReassignOrphans(ctx, fallback.Name)
	if err != nil {
		return report, fmt.Errorf("reassign orphaned products: %w", err)
	}
	report.OrphansReassigned = reassigned
	log.Info().Int64("count", reassigned).Str("category", fallback.Name).Msg("orphaned products reassigned")

	remaining, err := s.categories.CountOrphans(ctx)
	if err != nil {
		return report, fmt.Errorf("verify reconciliation: %w", err)
	}
	report.OrphansRemaining = remaining
	if remaining > 0 {
		log.Error().Int("remaining", remaining).Msg("orphaned products remain after reconciliation")
	}

	return report, nil
}

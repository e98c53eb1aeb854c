package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/repository"
)

// SchemaReport summarizes one run of a schema evolution job.
type SchemaReport struct {
	ColumnAdded    bool  `json:"column_added"`
	RowsBackfilled int64 `json:"rows_backfilled"`
	IndexEnsured   bool  `json:"index_ensured"`
}

// SchemaService runs out-of-band schema evolution jobs: it adds new optional
// columns to live tables, backfills defaults for rows created under older
// schemas, and keeps supporting indexes in place.
type SchemaService struct {
	schema *repository.SchemaRepository
}

// NewSchemaService constructs a SchemaService.
func NewSchemaService(schema *repository.SchemaRepository) *SchemaService {
	return &SchemaService{schema: schema}
}

// EnsureSizePricingColumn brings products.size_pricing up to date:
//
//  1. add the column (JSONB, empty-document default) if the live schema
//     lacks it,
//  2. backfill every row still carrying the empty/default document with the
//     documented default size map,
//  3. ensure the GIN index exists.
//
// Every step is individually idempotent, so the job carries no
// partial-completion state: any failure aborts with the underlying database
// error and the job is simply re-run.
func (s *SchemaService) EnsureSizePricingColumn(ctx context.Context) (*SchemaReport, error) {
	report := &SchemaReport{}

	exists, err := s.schema.ColumnExists(ctx, "products", "size_pricing")
	if err != nil {
		return nil, fmt.Errorf("size pricing migration: %w", err)
	}
	if !exists {
		if err := s.schema.AddSizePricingColumn(ctx); err != nil {
			return nil, fmt.Errorf("size pricing migration: %w", err)
		}
		report.ColumnAdded = true
		log.Info().Msg("size_pricing column added")
	} else {
		log.Info().Msg("size_pricing column already exists")
	}

	// Backfill runs unconditionally; it only touches default/empty rows, so
	// re-running against populated data changes nothing.
	backfilled, err := s.schema.BackfillSizePricing(ctx, models.DefaultSizePricing())
	if err != nil {
		return nil, fmt.Errorf("size pricing migration: %w", err)
	}
	report.RowsBackfilled = backfilled
	log.Info().Int64("rows", backfilled).Msg("size_pricing backfill completed")

	if err := s.schema.EnsureSizePricingIndex(ctx); err != nil {
		return nil, fmt.Errorf("size pricing migration: %w", err)
	}
	report.IndexEnsured = true
	log.Info().Msg("size_pricing index ensured")

	return report, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/plwgs/apparel_api/internal/models"
)

// SchemaRepository issues the DDL and backfill DML for schema evolution jobs.
// Unlike the versioned base migrations, these statements are written to be
// individually idempotent so the whole job can be re-run after any failure.
type SchemaRepository struct {
	db *sqlx.DB
}

// NewSchemaRepository creates a new SchemaRepository.
func NewSchemaRepository(db *sqlx.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// ColumnExists checks the live schema for a named column.
func (r *SchemaRepository) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	const q = `
        SELECT COUNT(1) FROM information_schema.columns
        WHERE table_name = $1 AND column_name = $2`

	var n int
	if err := r.db.GetContext(ctx, &n, q, table, column); err != nil {
		return false, fmt.Errorf("inspect %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

// AddSizePricingColumn adds products.size_pricing with an empty-document
// default so pre-existing rows are distinguishable from populated ones.
func (r *SchemaRepository) AddSizePricingColumn(ctx context.Context) error {
	const q = `ALTER TABLE products ADD COLUMN size_pricing JSONB DEFAULT '{}'`

	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("add size_pricing column: %w", err)
	}
	return nil
}

// BackfillSizePricing writes the given default map into every row still
// carrying the empty/default document and returns the number of rows changed.
// Rows with real size pricing are left untouched, which makes re-runs no-ops.
func (r *SchemaRepository) BackfillSizePricing(ctx context.Context, defaults models.SizePricing) (int64, error) {
	const q = `
        UPDATE products SET size_pricing = $1::jsonb
        WHERE size_pricing = '{}' OR size_pricing IS NULL`

	doc, err := json.Marshal(defaults)
	if err != nil {
		return 0, fmt.Errorf("marshal default size pricing: %w", err)
	}

	res, err := r.db.ExecContext(ctx, q, doc)
	if err != nil {
		return 0, fmt.Errorf("backfill size_pricing: %w", err)
	}
	return res.RowsAffected()
}

// EnsureSizePricingIndex creates the GIN index supporting queries that filter
// on the size pricing document. CREATE INDEX IF NOT EXISTS makes it a no-op
// when the index is already present.
func (r *SchemaRepository) EnsureSizePricingIndex(ctx context.Context) error {
	const q = `
        CREATE INDEX IF NOT EXISTS idx_products_size_pricing
        ON products USING GIN (size_pricing)`

	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create size_pricing index: %w", err)
	}
	return nil
}

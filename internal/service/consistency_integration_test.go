package service

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plwgs/apparel_api/internal/repository"
)

// openTestDB connects to the disposable database named by TEST_DATABASE_URL
// and resets the catalog tables. The size_pricing column is intentionally
// absent so the schema evolution job has work to do.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`DROP TABLE IF EXISTS products`)
	db.MustExec(`DROP TABLE IF EXISTS categories`)
	db.MustExec(`
        CREATE TABLE categories (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL UNIQUE,
            description TEXT NOT NULL DEFAULT '',
            display_order INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	db.MustExec(`
        CREATE TABLE products (
            id SERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL,
            category VARCHAR(255),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`)
	return db
}

func TestEnsureFallbackCategoryIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	db.MustExec(`INSERT INTO categories (name) VALUES ('Halloween')`)
	db.MustExec(`INSERT INTO products (name, category) VALUES
        ('Witch Hat Tee', 'Halloween'),
        ('Pumpkin Hoodie', 'Hallowean'),
        ('Mystery Tee', NULL)`)

	svc := NewReconcileService(repository.NewCategoryRepository(db))

	report, err := svc.EnsureFallbackCategory(ctx)
	require.NoError(t, err)
	assert.True(t, report.CategoryCreated)
	assert.Equal(t, "Uncategory", report.CategoryName)
	assert.EqualValues(t, 2, report.OrphansReassigned, "typo'd and NULL categories are both orphans")
	assert.Zero(t, report.OrphansRemaining)

	var reassigned int
	require.NoError(t, db.Get(&reassigned, `SELECT COUNT(*) FROM products WHERE category = 'Uncategory'`))
	assert.Equal(t, 2, reassigned)

	var untouched string
	require.NoError(t, db.Get(&untouched, `SELECT category FROM products WHERE name = 'Witch Hat Tee'`))
	assert.Equal(t, "Halloween", untouched, "products in existing categories are untouched")

	// Second pass is a no-op.
	report, err = svc.EnsureFallbackCategory(ctx)
	require.NoError(t, err)
	assert.False(t, report.CategoryCreated)
	assert.Zero(t, report.OrphansReassigned)

	var fallbacks int
	require.NoError(t, db.Get(&fallbacks, `SELECT COUNT(*) FROM categories WHERE name = 'Uncategory'`))
	assert.Equal(t, 1, fallbacks, "repeat runs never duplicate the fallback")
}

func TestEnsureFallbackCategoryAcceptsNearDuplicate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	db.MustExec(`INSERT INTO categories (name) VALUES ('Uncategory Bin')`)
	db.MustExec(`INSERT INTO products (name, category) VALUES ('Mystery Tee', NULL)`)

	svc := NewReconcileService(repository.NewCategoryRepository(db))

	report, err := svc.EnsureFallbackCategory(ctx)
	require.NoError(t, err)
	assert.False(t, report.CategoryCreated, "keyword match reuses the near-duplicate")
	assert.Equal(t, "Uncategory Bin", report.CategoryName)
	assert.EqualValues(t, 1, report.OrphansReassigned)
}

func TestEnsureSizePricingColumnIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	db.MustExec(`INSERT INTO products (name) VALUES ('Witch Hat Tee'), ('Pumpkin Hoodie')`)

	svc := NewSchemaService(repository.NewSchemaRepository(db))

	report, err := svc.EnsureSizePricingColumn(ctx)
	require.NoError(t, err)
	assert.True(t, report.ColumnAdded)
	assert.EqualValues(t, 2, report.RowsBackfilled)
	assert.True(t, report.IndexEnsured)

	var price float64
	require.NoError(t, db.Get(&price, `SELECT (size_pricing->'2X'->>'price')::float FROM products WHERE name = 'Witch Hat Tee'`))
	assert.Equal(t, 22.00, price, "plus size backfilled with surcharge")

	// Re-run: column and index in place, populated rows untouched.
	report, err = svc.EnsureSizePricingColumn(ctx)
	require.NoError(t, err)
	assert.False(t, report.ColumnAdded)
	assert.Zero(t, report.RowsBackfilled)
	assert.True(t, report.IndexEnsured)

	// A populated row keeps its custom pricing through another run.
	db.MustExec(`UPDATE products SET size_pricing = '{"S": {"price": 30, "available": true}}' WHERE name = 'Pumpkin Hoodie'`)
	_, err = svc.EnsureSizePricingColumn(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Get(&price, `SELECT (size_pricing->'S'->>'price')::float FROM products WHERE name = 'Pumpkin Hoodie'`))
	assert.Equal(t, 30.00, price)
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/plwgs/apparel_api/internal/models"
)

// CategoryRepository handles data access for categories, including the
// orphan queries used by the reconciler.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories ordered for display, with a product count per
// category name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	const q = `
        SELECT c.*,
            (SELECT COUNT(1) FROM products p WHERE p.category = c.name AND p.is_active = true) AS product_count
        FROM categories c
        ORDER BY c.display_order, c.name`

	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a single category.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	const q = `SELECT *, 0 AS product_count FROM categories WHERE id = $1 LIMIT 1`

	var c models.Category
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category and populates its id and timestamps.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	const q = `
        INSERT INTO categories (name, description, display_order)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q, c.Name, c.Description, c.DisplayOrder).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Delete removes a category by id. Callers must check fallback protection
// first; the repository does not.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM categories WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// FindByKeyword returns the first category whose name contains the keyword,
// case-insensitively. Used by the reconciler to detect an existing fallback
// (including near-duplicates such as "Uncategorized").
func (r *CategoryRepository) FindByKeyword(ctx context.Context, keyword string) (*models.Category, error) {
	const q = `SELECT *, 0 AS product_count FROM categories WHERE name ILIKE $1 ORDER BY id LIMIT 1`

	var c models.Category
	if err := r.db.GetContext(ctx, &c, q, "%"+keyword+"%"); err != nil {
		return nil, err
	}
	return &c, nil
}

// orphanWhere matches products whose category does not resolve to any
// existing category row.
const orphanWhere = `WHERE p.category IS NULL
       OR p.category NOT IN (SELECT name FROM categories)`

// ListOrphans returns id, name and stated category of every orphaned product.
func (r *CategoryRepository) ListOrphans(ctx context.Context) ([]OrphanedProduct, error) {
	const q = `SELECT p.id, p.name, COALESCE(p.category, '') AS category FROM products p ` + orphanWhere

	var orphans []OrphanedProduct
	if err := r.db.SelectContext(ctx, &orphans, q); err != nil {
		return nil, err
	}
	return orphans, nil
}

// CountOrphans returns how many orphaned products remain.
func (r *CategoryRepository) CountOrphans(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(1) FROM products p ` + orphanWhere

	var n int
	if err := r.db.GetContext(ctx, &n, q); err != nil {
		return 0, err
	}
	return n, nil
}

// ReassignOrphans points every orphaned product at the given category name in
// one bulk update and returns the number of rows changed.
func (r *CategoryRepository) ReassignOrphans(ctx context.Context, categoryName string) (int64, error) {
	const q = `
        UPDATE products p SET category = $1, updated_at = NOW()
        ` + orphanWhere

	res, err := r.db.ExecContext(ctx, q, categoryName)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// OrphanedProduct identifies a product whose stated category no longer
// resolves.
type OrphanedProduct struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
}

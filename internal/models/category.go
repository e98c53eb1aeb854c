package models

import (
	"strings"
	"time"
)

// FallbackCategoryName is the protected singleton category that orphaned
// products are reassigned to. It must always exist and is never deletable.
const FallbackCategoryName = "Uncategory"

// FallbackCategoryKeyword is matched case-insensitively as a substring when
// checking whether the fallback already exists, so near-duplicates such as
// "Uncategorized" satisfy the invariant instead of creating a second row.
const FallbackCategoryKeyword = "uncategory"

// Category groups products by name. The name doubles as the join key on
// products.category, which is why deleting a category can orphan rows.
type Category struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	// Populated by list queries via subquery; not a table column.
	ProductCount int `db:"product_count" json:"product_count"`
}

// IsFallback reports whether the category is the protected fallback.
func (c *Category) IsFallback() bool {
	return strings.Contains(strings.ToLower(c.Name), FallbackCategoryKeyword)
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a canonical catalog row. Fields are tagged for both DB
// scanning and JSON serialization. The category field is a name-typed
// reference to categories.name; the reconciler guarantees it always resolves.
type Product struct {
	ID                int             `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Description       string          `db:"description" json:"description"`
	Price             decimal.Decimal `db:"price" json:"price"`
	OriginalPrice     decimal.Decimal `db:"original_price" json:"original_price"`
	Category          string          `db:"category" json:"category"`
	StockQuantity     int             `db:"stock_quantity" json:"stock_quantity"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"low_stock_threshold"`
	SizePricing       SizePricing     `db:"size_pricing" json:"size_pricing"`
	ImageURL          string          `db:"image_url" json:"image_url"`
	SubImages         StringList      `db:"sub_images" json:"sub_images"`
	Tags              StringList      `db:"tags" json:"tags"`
	Colors            StringList      `db:"colors" json:"colors"`
	Sizes             StringList      `db:"sizes" json:"sizes"`
	Specifications    Document        `db:"specifications" json:"specifications"`
	Features          Document        `db:"features" json:"features"`
	IsFeatured        bool            `db:"is_featured" json:"is_featured"`
	IsActive          bool            `db:"is_active" json:"is_active"`
	SalePercentage    int             `db:"sale_percentage" json:"sale_percentage"`
	CreatedAt         time.Time       `db:"created_at" json:"-"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

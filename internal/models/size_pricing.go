package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Base tier pricing for the size map backfill. Plus sizes carry a fixed
// surcharge on top of the base tier.
const (
	baseSizePrice     = 20.00
	plusSizeSurcharge = 2.00
)

// SizePrice is one size's entry in the size_pricing document.
type SizePrice struct {
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// SizePricing maps a garment size to its price and availability. It is
// stored as a JSONB document; entries are optional per size and rows created
// before the column existed are backfilled with DefaultSizePricing.
type SizePricing map[string]SizePrice

// DefaultSizePricing returns the documented default map: S, M, L and XL at
// the base tier, 2X at the base tier plus the plus-size surcharge.
func DefaultSizePricing() SizePricing {
	return SizePricing{
		"S":  {Price: baseSizePrice, Available: true},
		"M":  {Price: baseSizePrice, Available: true},
		"L":  {Price: baseSizePrice, Available: true},
		"XL": {Price: baseSizePrice, Available: true},
		"2X": {Price: baseSizePrice + plusSizeSurcharge, Available: true},
	}
}

// Value implements driver.Valuer so sqlx can write the map as JSONB.
// A nil map is stored as the empty document, matching the column default.
func (s SizePricing) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB columns.
func (s *SizePricing) Scan(src interface{}) error {
	if src == nil {
		*s = SizePricing{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("size_pricing: cannot scan %T", src)
	}
	return json.Unmarshal(b, s)
}

// Package slugify derives URL-safe slugs for product page filenames and
// CDN folder names. Slugs are cosmetic only; identity always comes from
// the numeric product id.
package slugify

import (
	"strings"

	"github.com/gosimple/slug"
)

const (
	// maxLength caps slug length so generated filenames stay readable.
	maxLength = 80

	// fallback is used when a name slugifies to nothing (e.g. all symbols).
	fallback = "product"
)

// Make returns a lowercase slug with non-alphanumeric runs collapsed to a
// single hyphen, trimmed, capped at 80 characters. Deterministic: the same
// input always yields the same slug. Empty results fall back to "product".
func Make(name string) string {
	s := slug.Make(name)
	if len(s) > maxLength {
		s = strings.TrimRight(s[:maxLength], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSONB array
// (sub image URLs, tags, colors, sizes).
type StringList []string

// Value implements driver.Valuer. A nil list is stored as an empty array so
// consumers never see SQL NULL.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("string list: cannot scan %T", src)
	}
	return json.Unmarshal(b, l)
}

// Document is a free-form JSONB object (specifications, features).
type Document map[string]interface{}

// Value implements driver.Valuer.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src interface{}) error {
	if src == nil {
		*d = Document{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("document: cannot scan %T", src)
	}
	return json.Unmarshal(b, d)
}

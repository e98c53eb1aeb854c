package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsFallback(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Uncategory", true},
		{"uncategory", true},
		{"UNCATEGORY", true},
		{"My Uncategory Bin", true},
		{"Halloween", false},
		{"Uncategorized", false},
		{"", false},
	}
	for _, tt := range tests {
		c := Category{Name: tt.name}
		assert.Equal(t, tt.want, c.IsFallback(), "name %q", tt.name)
	}
}

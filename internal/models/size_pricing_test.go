package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSizePricing(t *testing.T) {
	sp := DefaultSizePricing()

	require.Len(t, sp, 5)
	for _, size := range []string{"S", "M", "L", "XL"} {
		entry, ok := sp[size]
		require.True(t, ok, "missing size %s", size)
		assert.Equal(t, 20.00, entry.Price)
		assert.True(t, entry.Available)
	}

	plus, ok := sp["2X"]
	require.True(t, ok)
	assert.Equal(t, 22.00, plus.Price, "plus size carries the surcharge")
	assert.True(t, plus.Available)
}

func TestSizePricingValueNilIsEmptyObject(t *testing.T) {
	var sp SizePricing
	v, err := sp.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestSizePricingScanRoundTrip(t *testing.T) {
	src := DefaultSizePricing()
	v, err := src.Value()
	require.NoError(t, err)

	var dst SizePricing
	require.NoError(t, dst.Scan(v))
	assert.Equal(t, src, dst)
}

func TestSizePricingScanNil(t *testing.T) {
	var sp SizePricing
	require.NoError(t, sp.Scan(nil))
	assert.NotNil(t, sp)
	assert.Empty(t, sp)
}

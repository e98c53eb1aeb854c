package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const canonical = "https://res.cloudinary.com/demo/image/upload/v1700000000/plwg-creative-apparel/products/halloween-tee/front.jpg"

func TestTransform(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		width, height int
		want          string
	}{
		{
			name:  "canonical url gets directives after upload marker",
			url:   canonical,
			width: 800, height: 800,
			want: "https://res.cloudinary.com/demo/image/upload/c_fill,g_auto,q_auto,f_auto,w_800,h_800/v1700000000/plwg-creative-apparel/products/halloween-tee/front.jpg",
		},
		{
			name:  "thumbnail size",
			url:   canonical,
			width: 300, height: 120,
			want: "https://res.cloudinary.com/demo/image/upload/c_fill,g_auto,q_auto,f_auto,w_300,h_120/v1700000000/plwg-creative-apparel/products/halloween-tee/front.jpg",
		},
		{
			name:  "data uri passes through",
			url:   "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
			width: 800, height: 800,
			want: "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
		},
		{
			name:  "empty string passes through",
			url:   "",
			width: 800, height: 800,
			want: "",
		},
		{
			name:  "non cloudinary url passes through",
			url:   "https://example.com/images/shirt.jpg",
			width: 800, height: 800,
			want: "https://example.com/images/shirt.jpg",
		},
		{
			name:  "url with repeated upload segment passes through",
			url:   "https://res.cloudinary.com/demo/image/upload/v1/upload/x.jpg",
			width: 800, height: 800,
			want: "https://res.cloudinary.com/demo/image/upload/v1/upload/x.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.url, tt.width, tt.height))
		})
	}
}

// Transform must be reproducible byte for byte: static pages regenerated from
// the same row must not churn.
func TestTransformPure(t *testing.T) {
	first := Transform(canonical, 640, 480)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Transform(canonical, 640, 480))
	}
}

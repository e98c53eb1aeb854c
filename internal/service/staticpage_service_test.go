package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plwgs/apparel_api/internal/config"
	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/utils"
)

func newTestPageService(t *testing.T) *StaticPageService {
	t.Helper()
	svc, err := NewStaticPageService(&config.CatalogConfig{
		StaticPagesDir:  t.TempDir(),
		SiteName:        "PlwgsCreativeApparel",
		MainImageWidth:  800,
		MainImageHeight: 800,
		ThumbWidth:      300,
		ThumbHeight:     120,
	})
	require.NoError(t, err)
	return svc
}

func testProduct() *models.Product {
	return &models.Product{
		ID:          7,
		Name:        "Just A Little Boost!",
		Description: "A soft hoodie for chilly mornings.",
		Price:       decimal.NewFromFloat(24.50),
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/v123/shop/hoodie.jpg",
		SubImages: models.StringList{
			"https://res.cloudinary.com/demo/image/upload/v123/shop/hoodie-back.jpg",
		},
		IsActive: true,
	}
}

func TestFilename(t *testing.T) {
	svc := newTestPageService(t)
	assert.Equal(t, "7-just-a-little-boost.html", svc.Filename(testProduct()))
}

func TestBuildStaticProductPage(t *testing.T) {
	svc := newTestPageService(t)
	p := testProduct()

	path, err := svc.BuildStaticProductPage(p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.outDir, "7-just-a-little-boost.html"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "Just A Little Boost!")
	assert.Contains(t, html, "24.50")
	assert.Contains(t, html, "/upload/c_fill,g_auto,q_auto,f_auto,w_800,h_800/v123/shop/hoodie.jpg", "main image is rewritten to delivery size")
	assert.Contains(t, html, "/upload/c_fill,g_auto,q_auto,f_auto,w_300,h_120/v123/shop/hoodie-back.jpg", "sub image is rewritten to thumbnail size")
	assert.Contains(t, html, `"@type":"Product"`)
	assert.Contains(t, html, `"priceCurrency":"USD"`)
	assert.Contains(t, html, "/pages/product.html?id=7")
}

func TestBuildStaticProductPageOverwritesStaleArtifact(t *testing.T) {
	svc := newTestPageService(t)
	p := testProduct()

	_, err := svc.BuildStaticProductPage(p)
	require.NoError(t, err)

	p.Price = decimal.NewFromFloat(19.99)
	path, err := svc.BuildStaticProductPage(p)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "19.99")
	assert.NotContains(t, string(raw), "24.50")
}

func TestBuildStaticProductPageLeavesNoTempFiles(t *testing.T) {
	svc := newTestPageService(t)
	_, err := svc.BuildStaticProductPage(testProduct())
	require.NoError(t, err)

	entries, err := os.ReadDir(svc.outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "7-just-a-little-boost.html", entries[0].Name())
}

func TestBuildStaticProductPageRejectsInvalidRows(t *testing.T) {
	svc := newTestPageService(t)

	_, err := svc.BuildStaticProductPage(nil)
	assert.ErrorIs(t, err, utils.ErrInvalidProduct)

	_, err = svc.BuildStaticProductPage(&models.Product{Name: "No ID"})
	assert.ErrorIs(t, err, utils.ErrInvalidProduct)

	_, err = svc.BuildStaticProductPage(&models.Product{ID: 3})
	assert.ErrorIs(t, err, utils.ErrInvalidProduct)
}

func TestBuildStaticProductPageNonCloudinaryImagePassesThrough(t *testing.T) {
	svc := newTestPageService(t)
	p := testProduct()
	p.ImageURL = "https://cdn.example.com/hoodie.jpg"
	p.SubImages = nil

	path, err := svc.BuildStaticProductPage(p)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "https://cdn.example.com/hoodie.jpg")
	assert.NotContains(t, string(raw), "c_fill,g_auto")
}

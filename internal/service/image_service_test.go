package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpload struct {
	src      string
	folder   string
	publicID string
}

// fakeUploader records uploads and fails any source listed in failSrcs.
type fakeUploader struct {
	calls    []fakeUpload
	failSrcs map[string]bool
}

func (f *fakeUploader) Upload(ctx context.Context, src, folder, publicID string) (string, error) {
	f.calls = append(f.calls, fakeUpload{src: src, folder: folder, publicID: publicID})
	if f.failSrcs[src] {
		return "", errors.New("simulated CDN outage")
	}
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/%s/%s.jpg", folder, publicID), nil
}

func TestUploadProductImagesRemoteURLsPassThrough(t *testing.T) {
	up := &fakeUploader{}
	svc := newImageServiceWithUploader(up, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "front.jpg", Data: "https://res.cloudinary.com/demo/image/upload/v1/front.jpg"},
		{Name: "back.jpg", Data: "https://example.com/back.jpg"},
	}, "Skull Hoodie")

	assert.Empty(t, up.calls, "remote URLs must not be re-uploaded")
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/front.jpg", result.MainImage)
	require.Len(t, result.SubImages, 1)
	assert.Equal(t, "https://example.com/back.jpg", result.SubImages[0])
	assert.Empty(t, result.Failures)
}

func TestUploadProductImagesInlinePayloadsUploaded(t *testing.T) {
	up := &fakeUploader{}
	svc := newImageServiceWithUploader(up, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "Front View.png", Data: "data:image/png;base64,aGVsbG8="},
		{Name: "Back View.png", Data: "data:image/png;base64,d29ybGQ="},
	}, "Skull Hoodie")

	require.Len(t, up.calls, 2)
	assert.Equal(t, "plwg-creative-apparel/products/skull-hoodie", up.calls[0].folder)
	assert.Equal(t, "front-view-1", up.calls[0].publicID)
	assert.Equal(t, "back-view-2", up.calls[1].publicID)
	assert.NotEmpty(t, result.MainImage)
	assert.Len(t, result.SubImages, 1)
}

func TestUploadProductImagesFailureIsolation(t *testing.T) {
	up := &fakeUploader{failSrcs: map[string]bool{"data:image/png;base64,YmFk": true}}
	svc := newImageServiceWithUploader(up, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "a.png", Data: "data:image/png;base64,b2s="},
		{Name: "b.png", Data: "data:image/png;base64,YmFk"},
		{Name: "c.png", Data: "data:image/png;base64,YWxzbw=="},
	}, "Skull Hoodie")

	assert.NotEmpty(t, result.MainImage)
	assert.Len(t, result.SubImages, 1, "image after the failure keeps its place")
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "b.png", result.Failures[0].Name)
	assert.Contains(t, result.Failures[0].Reason, "simulated CDN outage")
}

func TestUploadProductImagesFirstFailurePromotesNext(t *testing.T) {
	up := &fakeUploader{failSrcs: map[string]bool{"data:image/png;base64,YmFk": true}}
	svc := newImageServiceWithUploader(up, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "a.png", Data: "data:image/png;base64,YmFk"},
		{Name: "b.png", Data: "data:image/png;base64,b2s="},
	}, "Skull Hoodie")

	assert.NotEmpty(t, result.MainImage, "second image becomes main when first fails")
	assert.Empty(t, result.SubImages)
	assert.Len(t, result.Failures, 1)
}

func TestUploadProductImagesUnsupportedPayload(t *testing.T) {
	up := &fakeUploader{}
	svc := newImageServiceWithUploader(up, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "weird.bin", Data: "ftp://example.com/weird.bin"},
	}, "Skull Hoodie")

	assert.Empty(t, up.calls)
	assert.Empty(t, result.MainImage)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "weird.bin", result.Failures[0].Name)
}

func TestUploadProductImagesNoCDNKeepsInlinePlaceholder(t *testing.T) {
	svc := newImageServiceWithUploader(nil, "plwg-creative-apparel/products")

	result := svc.UploadProductImages(context.Background(), []ImageInput{
		{Name: "a.png", Data: "data:image/png;base64,aGVsbG8="},
	}, "Skull Hoodie")

	assert.Equal(t, "data:image/png;base64,aGVsbG8=", result.MainImage)
	assert.Empty(t, result.Failures)
}

func TestPublicID(t *testing.T) {
	assert.Equal(t, "front-view-1", publicID("Front View.png", 0))
	assert.Equal(t, "product-3", publicID("", 2))
	assert.Equal(t, "archive-tar-2", publicID("archive.tar.gz", 1))
}

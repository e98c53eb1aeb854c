package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/config"
	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/pkg/slugify"
)

// ImageInput is one image supplied by an admin payload: either inline
// encoded bytes (a data URI) or an existing remote URL.
type ImageInput struct {
	Name string `json:"name"`
	Data string `json:"data" binding:"required"`
}

// ImageFailure records one image that could not be resolved to a CDN URL.
// Failures are reported, not fatal: the caller decides whether saving the
// product with fewer images is acceptable (it is).
type ImageFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// UploadResult aggregates per-image outcomes of one pipeline run. The first
// resolved image becomes the product's main image, the rest its sub images.
type UploadResult struct {
	MainImage string
	SubImages models.StringList
	Failures  []ImageFailure
}

// imageUploader abstracts the CDN client so the pipeline's sequencing and
// failure isolation can be tested without network access.
type imageUploader interface {
	Upload(ctx context.Context, src, folder, publicID string) (string, error)
}

// ImageService resolves admin-supplied image payloads to canonical CDN URLs.
type ImageService struct {
	up         imageUploader
	rootFolder string
}

// NewImageService constructs an ImageService from CDN configuration. When no
// credentials are configured the service still works: remote URLs pass
// through and inline payloads are kept as placeholders.
func NewImageService(cfg *config.CloudinaryConfig) (*ImageService, error) {
	svc := &ImageService{rootFolder: cfg.UploadFolder}

	if !cfg.Configured() {
		log.Warn().Msg("cloudinary credentials not configured - inline images will be stored as placeholders")
		return svc, nil
	}

	var cld *cloudinary.Cloudinary
	var err error
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}

	svc.up = &cloudinaryUploader{cld: cld}
	return svc, nil
}

// newImageServiceWithUploader is used by tests to inject a fake CDN.
func newImageServiceWithUploader(up imageUploader, rootFolder string) *ImageService {
	return &ImageService{up: up, rootFolder: rootFolder}
}

// UploadProductImages resolves every image in order. Inline payloads are
// uploaded under a folder derived from the slugified product label so related
// uploads stay discoverable; URLs already remote (including CDN URLs from a
// previous save) pass through unchanged and are never re-uploaded.
//
// One image failing does not drop the others: each failure is recorded in the
// result and logged, and the remaining images keep their positions.
func (s *ImageService) UploadProductImages(ctx context.Context, images []ImageInput, productLabel string) *UploadResult {
	result := &UploadResult{}
	folder := path.Join(s.rootFolder, slugify.Make(productLabel))

	for i, img := range images {
		url, err := s.resolve(ctx, img, folder, i)
		if err != nil {
			log.Error().Err(err).
				Str("product", productLabel).
				Str("image", img.Name).
				Msg("image upload failed")
			result.Failures = append(result.Failures, ImageFailure{Name: img.Name, Reason: err.Error()})
			continue
		}
		if result.MainImage == "" {
			result.MainImage = url
		} else {
			result.SubImages = append(result.SubImages, url)
		}
	}

	return result
}

// resolve maps a single image input to its canonical stored URL.
func (s *ImageService) resolve(ctx context.Context, img ImageInput, folder string, index int) (string, error) {
	switch {
	case strings.HasPrefix(img.Data, "http://"), strings.HasPrefix(img.Data, "https://"):
		// Already remote: no redundant re-upload.
		return img.Data, nil

	case strings.HasPrefix(img.Data, "data:"):
		if s.up == nil {
			// No CDN configured: keep the inline payload as a placeholder.
			return img.Data, nil
		}
		return s.up.Upload(ctx, img.Data, folder, publicID(img.Name, index))

	default:
		return "", errors.New("unsupported image payload: expected data URI or http(s) URL")
	}
}

// publicID derives a stable CDN public identifier from the image's file name;
// the position index keeps ids unique when names collide or are missing.
func publicID(name string, index int) string {
	base := name
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return fmt.Sprintf("%s-%d", slugify.Make(base), index+1)
}

// cloudinaryUploader is the real CDN client.
type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// Upload pushes one asset and returns its canonical secure URL. The stored
// URL is always the untransformed, original-resolution upload; derived sizes
// come from URL rewriting at delivery time.
func (u *cloudinaryUploader) Upload(ctx context.Context, src, folder, id string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   folder,
		PublicID: id,
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

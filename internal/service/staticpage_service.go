package service

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/plwgs/apparel_api/internal/config"
	"github.com/plwgs/apparel_api/internal/models"
	"github.com/plwgs/apparel_api/internal/utils"
	"github.com/plwgs/apparel_api/pkg/imageurl"
	"github.com/plwgs/apparel_api/pkg/slugify"
)

//go:embed templates/product_page.html.tmpl
var productPageTmpl string

// StaticPageService renders self-contained HTML product pages from canonical
// rows. Artifacts are a read-optimized cache: derived, disposable, and safe
// to regenerate at any time. A missing artifact is a cache miss, not an
// error.
type StaticPageService struct {
	outDir   string
	siteName string

	mainW, mainH   int
	thumbW, thumbH int

	tmpl *template.Template
}

// NewStaticPageService constructs a StaticPageService from catalog
// configuration.
func NewStaticPageService(cfg *config.CatalogConfig) (*StaticPageService, error) {
	tmpl, err := template.New("product_page").Parse(productPageTmpl)
	if err != nil {
		return nil, fmt.Errorf("parse product page template: %w", err)
	}
	return &StaticPageService{
		outDir:   cfg.StaticPagesDir,
		siteName: cfg.SiteName,
		mainW:    cfg.MainImageWidth,
		mainH:    cfg.MainImageHeight,
		thumbW:   cfg.ThumbWidth,
		thumbH:   cfg.ThumbHeight,
		tmpl:     tmpl,
	}, nil
}

// pageData is the template's view of a product row.
type pageData struct {
	ID              int
	Name            string
	Description     string
	MetaDescription string
	Price           string
	MainImage       string
	SubImages       []string
	Canonical       string
	SiteName        string
	Year            int
	JSONLD          template.HTML

	MainWidth, MainHeight   int
	ThumbWidth, ThumbHeight int
}

// productLD is the schema.org structured-data block embedded for search
// engines.
type productLD struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Image       []string `json:"image"`
	Description string   `json:"description"`
	Offers      offerLD  `json:"offers"`
}

type offerLD struct {
	Type          string `json:"@type"`
	PriceCurrency string `json:"priceCurrency"`
	Price         string `json:"price"`
	Availability  string `json:"availability"`
}

// Filename returns the artifact filename for a product: {id}-{slug}.html.
// The numeric id guarantees uniqueness even when two names share a slug; the
// slug exists purely for readability.
func (s *StaticPageService) Filename(p *models.Product) string {
	return fmt.Sprintf("%d-%s.html", p.ID, slugify.Make(p.Name))
}

// BuildStaticProductPage renders the page for one product and publishes it
// under the output directory, unconditionally replacing any stale version.
// The write goes to a temporary file first and is renamed into place so a
// half-written artifact is never visible. Returns the written path.
func (s *StaticPageService) BuildStaticProductPage(p *models.Product) (string, error) {
	if p == nil || p.ID == 0 || p.Name == "" {
		return "", utils.ErrInvalidProduct
	}

	html, err := s.render(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create static pages dir: %w", err)
	}

	outPath := filepath.Join(s.outDir, s.Filename(p))
	tmpPath := outPath + ".tmp." + uuid.New().String()[:8]
	if err := os.WriteFile(tmpPath, html, 0o644); err != nil {
		return "", fmt.Errorf("write static page: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("publish static page: %w", err)
	}

	log.Info().Int("product_id", p.ID).Str("path", outPath).Msg("static product page built")
	return outPath, nil
}

// render produces the full document as bytes; pure with respect to the
// filesystem.
func (s *StaticPageService) render(p *models.Product) ([]byte, error) {
	main := imageurl.Transform(p.ImageURL, s.mainW, s.mainH)
	subs := make([]string, 0, len(p.SubImages))
	for _, u := range p.SubImages {
		subs = append(subs, imageurl.Transform(u, s.thumbW, s.thumbH))
	}

	ldImages := make([]string, 0, len(subs)+1)
	if p.ImageURL != "" {
		ldImages = append(ldImages, p.ImageURL)
	}
	for _, u := range subs {
		if u != "" {
			ldImages = append(ldImages, u)
		}
	}

	ld, err := json.Marshal(productLD{
		Context:     "https://schema.org/",
		Type:        "Product",
		Name:        p.Name,
		Image:       ldImages,
		Description: p.Description,
		Offers: offerLD{
			Type:          "Offer",
			PriceCurrency: "USD",
			Price:         p.Price.StringFixed(2),
			Availability:  "https://schema.org/InStock",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal structured data: %w", err)
	}

	meta := p.Description
	if runes := []rune(meta); len(runes) > 150 {
		meta = string(runes[:150])
	}

	data := pageData{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		MetaDescription: meta,
		Price:           p.Price.StringFixed(2),
		MainImage:       main,
		SubImages:       subs,
		Canonical:       fmt.Sprintf("/pages/product.html?id=%d", p.ID),
		SiteName:        s.siteName,
		Year:            time.Now().Year(),
		// json.Marshal HTML-escapes <, > and &, so the block is safe to
		// embed verbatim.
		JSONLD:     template.HTML(ld),
		MainWidth:  s.mainW,
		MainHeight: s.mainH,
		ThumbWidth: s.thumbW, ThumbHeight: s.thumbH,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render static page: %w", err)
	}
	return buf.Bytes(), nil
}

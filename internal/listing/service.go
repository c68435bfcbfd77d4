package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zombor/finery-generator/internal/scanning"
)

var (
	// ErrTitleRequired is returned when the product title is blank
	ErrTitleRequired = errors.New("product title is required")
	// ErrNoImages is returned when no product image was uploaded
	ErrNoImages = errors.New("at least one product image is required")
)

// Service generates product listings
type Service struct {
	scanner      scanning.Scanner
	templates    TemplateSource
	previewWidth int
}

// NewService creates a new Service. previewWidth caps the width of the
// inlined main image, 0 keeps it at full size.
func NewService(scanner scanning.Scanner, templates TemplateSource, previewWidth int) *Service {
	return &Service{
		scanner:      scanner,
		templates:    templates,
		previewWidth: previewWidth,
	}
}

// DefaultKeyword returns the focus keyword suggested for a title
func (s *Service) DefaultKeyword(title string) string {
	return ExtractFocusKeyword(title)
}

// Generate builds the description, meta description, size list and download for one form
func (s *Service) Generate(ctx context.Context, req Request) (*Listing, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		keyword = ExtractFocusKeyword(title)
	}
	if len(req.Images) == 0 {
		return nil, ErrNoImages
	}

	first := req.Images[0]
	preview, err := scanning.Preview(first.Data, first.ContentType, s.previewWidth)
	if err != nil {
		return nil, fmt.Errorf("encoding main image %s: %w", first.Filename, err)
	}
	imageSrc := ImageDataURI(preview)

	sizes, err := ExtractSizes(ctx, s.scanner, req.Images)
	if err != nil {
		slog.Error("Failed to extract sizes",
			"images", len(req.Images),
			"error", err,
		)
		return nil, fmt.Errorf("extracting sizes: %w", err)
	}

	tmpl, err := s.templates.Load()
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	html := FillTemplate(tmpl, keyword, imageSrc)

	return &Listing{
		Title:            title,
		FocusKeyword:     keyword,
		HTML:             html,
		MetaDescription:  MetaDescription(keyword),
		Sizes:            sizes,
		SizesHTML:        SizesHTML(sizes),
		ImageSrc:         imageSrc,
		DownloadURI:      HTMLDataURI(html),
		DownloadFilename: DownloadFilename,
	}, nil
}

package mock

import (
	"context"

	"github.com/prodsync/prodsync"
)

var _ prodsync.ProductExtractor = (*ProductExtractor)(nil)

// ProductExtractor is a mock implementation of prodsync.ProductExtractor.
type ProductExtractor struct {
	ExtractFn func(ctx context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error)
	NameFn    func() string
}

func (e *ProductExtractor) Extract(ctx context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
	return e.ExtractFn(ctx, page)
}

func (e *ProductExtractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

var _ prodsync.StorefrontDetector = (*StorefrontDetector)(nil)

// StorefrontDetector is a mock implementation of prodsync.StorefrontDetector.
type StorefrontDetector struct {
	DetectFn func(html string) prodsync.Storefront
}

func (d *StorefrontDetector) Detect(html string) prodsync.Storefront {
	return d.DetectFn(html)
}

var _ prodsync.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of prodsync.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(html string) (string, string, error)
}

func (e *ContentExtractor) ExtractContent(html string) (string, string, error) {
	return e.ExtractContentFn(html)
}

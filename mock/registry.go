package mock

import "github.com/prodsync/prodsync"

var _ prodsync.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of prodsync.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn        func(storefront prodsync.Storefront) prodsync.ProductExtractor
	GetForHTMLFn func(html string) prodsync.ProductExtractor
	RegisterFn   func(storefront prodsync.Storefront, extractor prodsync.ProductExtractor)
	ListFn       func() []prodsync.Storefront
}

func (r *ExtractorRegistry) Get(storefront prodsync.Storefront) prodsync.ProductExtractor {
	return r.GetFn(storefront)
}

func (r *ExtractorRegistry) GetForHTML(html string) prodsync.ProductExtractor {
	return r.GetForHTMLFn(html)
}

func (r *ExtractorRegistry) Register(storefront prodsync.Storefront, extractor prodsync.ProductExtractor) {
	r.RegisterFn(storefront, extractor)
}

func (r *ExtractorRegistry) List() []prodsync.Storefront {
	return r.ListFn()
}

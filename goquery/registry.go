package goquery

import "github.com/prodsync/prodsync"

var _ prodsync.ExtractorRegistry = (*Registry)(nil)

// Registry manages storefront-specific product extractors and
// auto-detects storefronts from HTML content. It uses a
// StorefrontDetector to identify the storefront and returns the
// appropriate extractor, falling back to a generic one when the
// storefront is unknown or no specific extractor is registered.
type Registry struct {
	detector   prodsync.StorefrontDetector
	fallback   prodsync.ProductExtractor
	extractors map[prodsync.Storefront]prodsync.ProductExtractor
}

// NewRegistry creates a new Registry with the given detector and
// fallback extractor.
func NewRegistry(detector prodsync.StorefrontDetector, fallback prodsync.ProductExtractor) *Registry {
	return &Registry{
		detector:   detector,
		fallback:   fallback,
		extractors: make(map[prodsync.Storefront]prodsync.ProductExtractor),
	}
}

// Get returns the extractor for a specific storefront.
// Returns nil if no extractor is registered for the storefront.
func (r *Registry) Get(storefront prodsync.Storefront) prodsync.ProductExtractor {
	return r.extractors[storefront]
}

// GetForHTML detects the storefront from HTML and returns the
// appropriate extractor, falling back to the fallback extractor if the
// storefront is unknown or unregistered.
func (r *Registry) GetForHTML(html string) prodsync.ProductExtractor {
	storefront := r.detector.Detect(html)
	if extractor, ok := r.extractors[storefront]; ok {
		return extractor
	}
	return r.fallback
}

// Register adds an extractor for a storefront.
// If an extractor is already registered, it is replaced.
func (r *Registry) Register(storefront prodsync.Storefront, extractor prodsync.ProductExtractor) {
	r.extractors[storefront] = extractor
}

// List returns all registered storefronts.
func (r *Registry) List() []prodsync.Storefront {
	storefronts := make([]prodsync.Storefront, 0, len(r.extractors))
	for s := range r.extractors {
		storefronts = append(storefronts, s)
	}
	return storefronts
}

package prodsync

import "context"

// Fetcher retrieves page content from URLs. Implementations may use
// plain HTTP or browser automation for JavaScript-rendered storefronts.
type Fetcher interface {
	// Fetch returns the body at url. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ProductURLSource discovers product page URLs for a storefront,
// typically from its sitemap.
type ProductURLSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting for batch runs.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

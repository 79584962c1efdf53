package mock

import (
	"context"

	"github.com/prodsync/prodsync"
)

var _ prodsync.ProductURLSource = (*ProductURLSource)(nil)

// ProductURLSource is a mock implementation of prodsync.ProductURLSource.
type ProductURLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *ProductURLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}

var _ prodsync.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of prodsync.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

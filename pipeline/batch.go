package pipeline

import (
	"context"
	"net/url"
	"sync/atomic"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for batch URL deduplication.
const (
	batchExpectedURLs      = 10000
	batchFalsePositiveRate = 0.01
)

// Batch syncs a whole storefront catalog: product URLs are discovered
// from sitemaps, deduplicated, and run through the pipeline with
// bounded concurrency and per-domain rate limiting.
type Batch struct {
	Runner  *Runner
	Source  prodsync.ProductURLSource
	Limiter prodsync.DomainLimiter

	// Concurrency bounds simultaneous page runs. Defaults to 4.
	Concurrency int
}

// SyncResult summarizes a batch sync.
type SyncResult struct {
	Discovered int
	Synced     int
	Skipped    int
	NotProduct int
	Failed     int
}

// Sync discovers and processes every product page for the profile's
// storefront at baseURL. Individual page failures are counted, not
// fatal; Sync fails only when discovery fails or the context is
// canceled.
func (b *Batch) Sync(ctx context.Context, profile *prodsync.Profile, baseURL string) (*SyncResult, error) {
	urls, err := b.Source.Discover(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Discovered: len(urls)}
	if len(urls) == 0 {
		return result, nil
	}

	seen := bloom.NewFilter(batchExpectedURLs, batchFalsePositiveRate)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var synced, skipped, notProduct, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, pageURL := range urls {
		if seen.Seen(pageURL) {
			skipped.Add(1)
			continue
		}

		g.Go(func() error {
			if b.Limiter != nil {
				parsed, err := url.Parse(pageURL)
				if err != nil {
					failed.Add(1)
					return nil
				}
				if err := b.Limiter.Wait(gctx, parsed.Host); err != nil {
					return err // context canceled
				}
			}

			_, err := b.Runner.Run(gctx, profile, pageURL)
			switch prodsync.ErrorCode(err) {
			case "":
				synced.Add(1)
			case prodsync.ENOTPRODUCT:
				notProduct.Add(1)
			default:
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Synced = int(synced.Load())
	result.Skipped = int(skipped.Load())
	result.NotProduct = int(notProduct.Load())
	result.Failed = int(failed.Load())
	return result, nil
}

package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/mock"
	"github.com/prodsync/prodsync/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// batchRunner returns a Runner whose extractor behavior is keyed by
// page URL, recording every processed URL.
func batchRunner(processed *[]string, mu *sync.Mutex) *pipeline.Runner {
	extractor := &mock.ProductExtractor{
		ExtractFn: func(_ context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
			switch {
			case page.URL == "https://shop.example.com/products/not-a-product":
				return nil, prodsync.Errorf(prodsync.ENOTPRODUCT, "not a product page")
			case page.URL == "https://shop.example.com/products/broken":
				return nil, prodsync.Errorf(prodsync.EPAYLOAD, "bad payload")
			default:
				return &prodsync.ProductExtraction{
					Title:   "Product",
					BaseSKU: "SKU",
					OptionGroups: []prodsync.OptionGroup{
						{Name: "Title", Options: []prodsync.Option{{Value: "Default Title"}}},
					},
				}, nil
			}
		},
	}

	return &pipeline.Runner{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				mu.Lock()
				*processed = append(*processed, url)
				mu.Unlock()
				return "<html><body></body></html>", nil
			},
		},
		Sanitizer: &mock.Sanitizer{
			CleanFn: func(string) (*prodsync.CleanedDocument, error) {
				return &prodsync.CleanedDocument{BodyMarkup: "<div></div>"}, nil
			},
		},
		Extractors: &mock.ExtractorRegistry{
			GetFn: func(prodsync.Storefront) prodsync.ProductExtractor { return extractor },
		},
		Uploader: &mock.Uploader{
			SubmitFn: func(context.Context, *prodsync.ProductRecord) (*prodsync.UploadResult, error) {
				return &prodsync.UploadResult{Status: "created"}, nil
			},
		},
	}
}

func TestBatch_Sync(t *testing.T) {
	t.Parallel()

	t.Run("syncs discovered product URLs with dedupe", func(t *testing.T) {
		t.Parallel()

		var processed []string
		var mu sync.Mutex

		b := &pipeline.Batch{
			Runner: batchRunner(&processed, &mu),
			Source: &mock.ProductURLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return []string{
						"https://shop.example.com/products/one",
						"https://shop.example.com/products/two",
						"https://shop.example.com/products/one", // duplicate
						"https://shop.example.com/products/not-a-product",
						"https://shop.example.com/products/broken",
					}, nil
				},
			},
			Limiter: &mock.DomainLimiter{},
		}

		result, err := b.Sync(context.Background(), runProfile(), "https://shop.example.com")
		require.NoError(t, err)

		assert.Equal(t, 5, result.Discovered)
		assert.Equal(t, 2, result.Synced)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.NotProduct)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, processed, 4, "duplicate URL fetched once")
	})

	t.Run("waits on the domain limiter per page", func(t *testing.T) {
		t.Parallel()

		var processed []string
		var mu sync.Mutex
		var waits []string

		b := &pipeline.Batch{
			Runner: batchRunner(&processed, &mu),
			Source: &mock.ProductURLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return []string{"https://shop.example.com/products/one"}, nil
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					waits = append(waits, domain)
					mu.Unlock()
					return nil
				},
			},
		}

		_, err := b.Sync(context.Background(), runProfile(), "https://shop.example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"shop.example.com"}, waits)
	})

	t.Run("empty discovery is not an error", func(t *testing.T) {
		t.Parallel()

		b := &pipeline.Batch{
			Runner: &pipeline.Runner{},
			Source: &mock.ProductURLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return []string{}, nil
				},
			},
		}

		result, err := b.Sync(context.Background(), runProfile(), "https://shop.example.com")
		require.NoError(t, err)
		assert.Zero(t, result.Discovered)
		assert.Zero(t, result.Synced)
	})

	t.Run("discovery failure is fatal", func(t *testing.T) {
		t.Parallel()

		b := &pipeline.Batch{
			Runner: &pipeline.Runner{},
			Source: &mock.ProductURLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "HTTP 503 for sitemap")
				},
			},
		}

		_, err := b.Sync(context.Background(), runProfile(), "https://shop.example.com")
		require.Error(t, err)
		assert.Equal(t, prodsync.EUNAVAILABLE, prodsync.ErrorCode(err))
	})

	t.Run("canceled context aborts the batch", func(t *testing.T) {
		t.Parallel()

		var processed []string
		var mu sync.Mutex

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b := &pipeline.Batch{
			Runner: batchRunner(&processed, &mu),
			Source: &mock.ProductURLSource{
				DiscoverFn: func(context.Context, string) ([]string, error) {
					return []string{"https://shop.example.com/products/one"}, nil
				},
			},
			Limiter: &mock.DomainLimiter{
				WaitFn: func(ctx context.Context, _ string) error {
					return ctx.Err()
				},
			},
		}

		_, err := b.Sync(ctx, runProfile(), "https://shop.example.com")
		require.Error(t, err)
	})
}

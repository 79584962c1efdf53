package main_test

import (
	"context"
	"testing"

	"github.com/prodsync/prodsync"
	main "github.com/prodsync/prodsync/cmd/prodsync"
	"github.com/prodsync/prodsync/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("syncs discovered pages and prints a summary", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.ProductExtractor{
			ExtractFn: func(_ context.Context, page *prodsync.Page) (*prodsync.ProductExtraction, error) {
				if page.URL == "https://shop.example.com/products/not-a-product" {
					return nil, prodsync.Errorf(prodsync.ENOTPRODUCT, "not a product page")
				}
				return &prodsync.ProductExtraction{Title: "Product", BaseSKU: "SKU"}, nil
			},
		}
		uploader := &mock.Uploader{
			SubmitFn: func(context.Context, *prodsync.ProductRecord) (*prodsync.UploadResult, error) {
				return &prodsync.UploadResult{Status: "created"}, nil
			},
		}

		deps, stdout, _ := pipelineDeps(t, extractor, uploader)
		deps.Source = &mock.ProductURLSource{
			DiscoverFn: func(_ context.Context, baseURL string) ([]string, error) {
				assert.Equal(t, "https://shop.example.com", baseURL)
				return []string{
					"https://shop.example.com/products/one",
					"https://shop.example.com/products/two",
					"https://shop.example.com/products/not-a-product",
				}, nil
			},
		}
		deps.Limiter = &mock.DomainLimiter{}

		cmd := &main.SyncCmd{Profile: "alpine-shop", URL: "https://shop.example.com", Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Synced 2 of 3 pages")
		assert.Contains(t, stdout.String(), "1 not products")
	})

	t.Run("reports empty discovery", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := pipelineDeps(t, &mock.ProductExtractor{}, &mock.Uploader{})
		deps.Source = &mock.ProductURLSource{
			DiscoverFn: func(context.Context, string) ([]string, error) {
				return []string{}, nil
			},
		}

		cmd := &main.SyncCmd{Profile: "alpine-shop", URL: "https://shop.example.com"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No product URLs discovered")
	})

	t.Run("discovery failure is reported", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := pipelineDeps(t, &mock.ProductExtractor{}, &mock.Uploader{})
		deps.Source = &mock.ProductURLSource{
			DiscoverFn: func(context.Context, string) ([]string, error) {
				return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "HTTP 503 for sitemap")
			},
		}

		cmd := &main.SyncCmd{Profile: "alpine-shop", URL: "https://shop.example.com"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, prodsync.EUNAVAILABLE, prodsync.ErrorCode(err))
		assert.Contains(t, stderr.String(), "sitemap")
	})
}

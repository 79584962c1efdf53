package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prodsync/prodsync"
	main "github.com/prodsync/prodsync/cmd/prodsync"
	"github.com/prodsync/prodsync/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultDeps(cache *mock.ResultCache) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Profiles: &mock.ProfileService{
			FindProfileByNameFn: func(_ context.Context, name string) (*prodsync.Profile, error) {
				if name != "alpine-shop" {
					return nil, prodsync.Errorf(prodsync.ENOTFOUND, "profile %q not found", name)
				}
				return &prodsync.Profile{ID: "profile-1", Name: "alpine-shop"}, nil
			},
		},
		Results: cache,
	}, stdout, stderr
}

func TestResultCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the cached result", func(t *testing.T) {
		t.Parallel()

		cache := &mock.ResultCache{
			LastResultFn: func(_ context.Context, profileID string) (*prodsync.RunResult, error) {
				assert.Equal(t, "profile-1", profileID)
				return &prodsync.RunResult{
					ID:          "result-1",
					ProfileID:   profileID,
					PageURL:     "https://shop.example.com/p/helium",
					ContentHash: "abc123",
					Payload:     `{"upload":{"status":"created"}}`,
					CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				}, nil
			},
		}

		deps, stdout, _ := resultDeps(cache)
		err := (&main.ResultCmd{Profile: "alpine-shop"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://shop.example.com/p/helium")
		assert.Contains(t, stdout.String(), "abc123")
		assert.Contains(t, stdout.String(), `"created"`)
	})

	t.Run("prints the failure of a failed run", func(t *testing.T) {
		t.Parallel()

		cache := &mock.ResultCache{
			LastResultFn: func(_ context.Context, profileID string) (*prodsync.RunResult, error) {
				return &prodsync.RunResult{
					ProfileID: profileID,
					PageURL:   "https://shop.example.com/about",
					Error:     "not a product page",
					CreatedAt: time.Now(),
				}, nil
			},
		}

		deps, stdout, _ := resultDeps(cache)
		err := (&main.ResultCmd{Profile: "alpine-shop"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Failed: not a product page")
	})

	t.Run("reports missing cache entry", func(t *testing.T) {
		t.Parallel()

		cache := &mock.ResultCache{
			LastResultFn: func(_ context.Context, profileID string) (*prodsync.RunResult, error) {
				return nil, prodsync.Errorf(prodsync.ENOTFOUND, "no result for profile %q", profileID)
			},
		}

		deps, _, stderr := resultDeps(cache)
		err := (&main.ResultCmd{Profile: "alpine-shop"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no cached result")
	})

	t.Run("unknown profile fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := resultDeps(&mock.ResultCache{})
		err := (&main.ResultCmd{Profile: "ghost"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

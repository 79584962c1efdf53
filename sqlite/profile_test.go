package sqlite_test

import (
	"context"
	"testing"

	"github.com/prodsync/prodsync"
	"github.com/prodsync/prodsync/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testProfile(name string) *prodsync.Profile {
	return &prodsync.Profile{
		Name:        name,
		Storefront:  prodsync.StorefrontMagento,
		Endpoint:    "https://upload.example.com/products",
		ShopName:    "acme-shop",
		AccessToken: "shpat_test",
	}
}

func TestProfileService_CreateProfile(t *testing.T) {
	t.Parallel()

	t.Run("creates profile with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		profile := testProfile("alpine-shop")
		err := svc.CreateProfile(ctx, profile)
		require.NoError(t, err)

		assert.NotEmpty(t, profile.ID, "ID should be generated")
		assert.False(t, profile.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, profile.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid profile", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		profile := &prodsync.Profile{} // missing required fields

		err := svc.CreateProfile(ctx, profile)
		require.Error(t, err)
		assert.Equal(t, prodsync.EINVALID, prodsync.ErrorCode(err))
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateProfile(ctx, testProfile("dup")))

		err := svc.CreateProfile(ctx, testProfile("dup"))
		require.Error(t, err)
		assert.Equal(t, prodsync.EINVALID, prodsync.ErrorCode(err))
	})
}

func TestProfileService_FindProfileByName(t *testing.T) {
	t.Parallel()

	t.Run("returns profile when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		profile := testProfile("alpine-shop")
		profile.DefaultStock = 15
		profile.MaxVariants = 100
		require.NoError(t, svc.CreateProfile(ctx, profile))

		found, err := svc.FindProfileByName(ctx, "alpine-shop")
		require.NoError(t, err)
		assert.Equal(t, profile.ID, found.ID)
		assert.Equal(t, prodsync.StorefrontMagento, found.Storefront)
		assert.Equal(t, profile.Endpoint, found.Endpoint)
		assert.Equal(t, "acme-shop", found.ShopName)
		assert.Equal(t, 15, found.DefaultStock)
		assert.Equal(t, 100, found.MaxVariants)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		_, err := svc.FindProfileByName(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
	})
}

func TestProfileService_FindProfiles(t *testing.T) {
	t.Parallel()

	t.Run("returns all profiles with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, svc.CreateProfile(ctx, testProfile("shop-"+string(rune('a'+i)))))
		}

		profiles, err := svc.FindProfiles(ctx, prodsync.ProfileFilter{})
		require.NoError(t, err)
		assert.Len(t, profiles, 3)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateProfile(ctx, testProfile("alpha")))
		require.NoError(t, svc.CreateProfile(ctx, testProfile("beta")))

		name := "alpha"
		profiles, err := svc.FindProfiles(ctx, prodsync.ProfileFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "alpha", profiles[0].Name)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateProfile(ctx, testProfile("shop-"+string(rune('a'+i)))))
		}

		profiles, err := svc.FindProfiles(ctx, prodsync.ProfileFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("updates profile fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		profile := testProfile("alpine-shop")
		require.NoError(t, svc.CreateProfile(ctx, profile))
		originalUpdatedAt := profile.UpdatedAt

		newEndpoint := "https://upload.example.com/v2/products"
		newStorefront := prodsync.StorefrontShopify
		updated, err := svc.UpdateProfile(ctx, "alpine-shop", prodsync.ProfileUpdate{
			Endpoint:   &newEndpoint,
			Storefront: &newStorefront,
		})
		require.NoError(t, err)

		assert.Equal(t, newEndpoint, updated.Endpoint)
		assert.Equal(t, prodsync.StorefrontShopify, updated.Storefront)
		assert.True(t, updated.UpdatedAt.After(originalUpdatedAt) || updated.UpdatedAt.Equal(originalUpdatedAt))

		// Persisted
		found, err := svc.FindProfileByName(ctx, "alpine-shop")
		require.NoError(t, err)
		assert.Equal(t, newEndpoint, found.Endpoint)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		endpoint := "https://example.com"
		_, err := svc.UpdateProfile(ctx, "missing", prodsync.ProfileUpdate{Endpoint: &endpoint})
		require.Error(t, err)
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
	})
}

func TestProfileService_DeleteProfile(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing profile", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateProfile(ctx, testProfile("alpine-shop")))

		err := svc.DeleteProfile(ctx, "alpine-shop")
		require.NoError(t, err)

		_, err = svc.FindProfileByName(ctx, "alpine-shop")
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewProfileService(db)
		ctx := context.Background()

		err := svc.DeleteProfile(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, prodsync.ENOTFOUND, prodsync.ErrorCode(err))
	})
}

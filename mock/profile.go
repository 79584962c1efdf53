package mock

import (
	"context"

	"github.com/prodsync/prodsync"
)

var _ prodsync.ProfileService = (*ProfileService)(nil)

// ProfileService is a mock implementation of prodsync.ProfileService.
type ProfileService struct {
	CreateProfileFn     func(ctx context.Context, profile *prodsync.Profile) error
	FindProfileByNameFn func(ctx context.Context, name string) (*prodsync.Profile, error)
	FindProfilesFn      func(ctx context.Context, filter prodsync.ProfileFilter) ([]*prodsync.Profile, error)
	UpdateProfileFn     func(ctx context.Context, name string, upd prodsync.ProfileUpdate) (*prodsync.Profile, error)
	DeleteProfileFn     func(ctx context.Context, name string) error
}

func (s *ProfileService) CreateProfile(ctx context.Context, profile *prodsync.Profile) error {
	return s.CreateProfileFn(ctx, profile)
}

func (s *ProfileService) FindProfileByName(ctx context.Context, name string) (*prodsync.Profile, error) {
	return s.FindProfileByNameFn(ctx, name)
}

func (s *ProfileService) FindProfiles(ctx context.Context, filter prodsync.ProfileFilter) ([]*prodsync.Profile, error) {
	return s.FindProfilesFn(ctx, filter)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, name string, upd prodsync.ProfileUpdate) (*prodsync.Profile, error) {
	return s.UpdateProfileFn(ctx, name, upd)
}

func (s *ProfileService) DeleteProfile(ctx context.Context, name string) error {
	return s.DeleteProfileFn(ctx, name)
}

var _ prodsync.ResultCache = (*ResultCache)(nil)

// ResultCache is a mock implementation of prodsync.ResultCache.
type ResultCache struct {
	SetResultFn  func(ctx context.Context, result *prodsync.RunResult) error
	LastResultFn func(ctx context.Context, profileID string) (*prodsync.RunResult, error)
}

func (c *ResultCache) SetResult(ctx context.Context, result *prodsync.RunResult) error {
	return c.SetResultFn(ctx, result)
}

func (c *ResultCache) LastResult(ctx context.Context, profileID string) (*prodsync.RunResult, error) {
	return c.LastResultFn(ctx, profileID)
}

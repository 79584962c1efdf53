package prodsync

import (
	"context"
	"time"
)

// Profile is a named, persisted scrape configuration: which storefront
// schema to use, where to upload, and the shop identity to stamp on
// every record. Profiles replace the extension's per-site script
// bodies; the pipeline itself is compiled code selected by name.
type Profile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Storefront  Storefront `json:"storefront"`
	Endpoint    string     `json:"endpoint"`
	ShopName    string     `json:"shopName"`
	AccessToken string     `json:"accessToken"`

	// Vendor and ProductType are fallbacks for storefronts whose pages
	// don't carry them.
	Vendor      string `json:"vendor"`
	ProductType string `json:"productType"`

	// DefaultStock is the inventory assigned to available variants.
	// Zero means DefaultStock (the package constant).
	DefaultStock int `json:"defaultStock"`

	// MaxVariants caps variant expansion. Zero means uncapped.
	MaxVariants int `json:"maxVariants"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if p.Endpoint == "" {
		return Errorf(EINVALID, "profile endpoint required")
	}
	if p.Storefront == StorefrontUnknown {
		return Errorf(EINVALID, "profile storefront required")
	}
	return nil
}

// Stock returns the effective default inventory quantity.
func (p *Profile) Stock() int {
	if p.DefaultStock > 0 {
		return p.DefaultStock
	}
	return DefaultStock
}

// ProfileUpdate holds fields to update on a profile. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Endpoint    *string     `json:"endpoint"`
	ShopName    *string     `json:"shopName"`
	AccessToken *string     `json:"accessToken"`
	Storefront  *Storefront `json:"storefront"`
}

// ProfileFilter filters FindProfiles results.
type ProfileFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ProfileService manages stored profiles.
type ProfileService interface {
	// CreateProfile creates a new profile.
	CreateProfile(ctx context.Context, profile *Profile) error

	// FindProfileByName retrieves a profile by its unique name.
	// Returns ENOTFOUND if the profile does not exist.
	FindProfileByName(ctx context.Context, name string) (*Profile, error)

	// FindProfiles retrieves profiles matching the filter.
	FindProfiles(ctx context.Context, filter ProfileFilter) ([]*Profile, error)

	// UpdateProfile applies upd to the named profile.
	// Returns ENOTFOUND if the profile does not exist.
	UpdateProfile(ctx context.Context, name string, upd ProfileUpdate) (*Profile, error)

	// DeleteProfile permanently removes a profile and its cached
	// results. Returns ENOTFOUND if the profile does not exist.
	DeleteProfile(ctx context.Context, name string) error
}

// RunResult is the cached outcome of the most recent run for a
// profile. The cache exists so a UI can restore the last result; the
// pipeline itself never reads it.
type RunResult struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profileId"`
	PageURL     string    `json:"pageUrl"`
	ContentHash string    `json:"contentHash"`
	Payload     string    `json:"payload"` // terminal result as JSON
	Error       string    `json:"error"`   // terminal error message, if the run failed
	CreatedAt   time.Time `json:"createdAt"`
}

// ResultCache stores the last run result per profile.
type ResultCache interface {
	// SetResult replaces the cached result for the profile.
	SetResult(ctx context.Context, result *RunResult) error

	// LastResult returns the cached result for a profile.
	// Returns ENOTFOUND if no result has been cached.
	LastResult(ctx context.Context, profileID string) (*RunResult, error)
}

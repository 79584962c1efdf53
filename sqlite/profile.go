package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prodsync/prodsync"
)

// Compile-time interface verification.
var _ prodsync.ProfileService = (*ProfileService)(nil)

// ProfileService implements prodsync.ProfileService using SQLite.
type ProfileService struct {
	db *DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *DB) *ProfileService {
	return &ProfileService{db: db}
}

const profileColumns = `id, name, storefront, endpoint, shop_name, access_token,
	vendor, product_type, default_stock, max_variants, created_at, updated_at`

// CreateProfile creates a new profile.
func (s *ProfileService) CreateProfile(ctx context.Context, profile *prodsync.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	profile.ID = uuid.New().String()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, profile.ID, profile.Name, string(profile.Storefront), profile.Endpoint,
		profile.ShopName, profile.AccessToken, profile.Vendor, profile.ProductType,
		profile.DefaultStock, profile.MaxVariants,
		profile.CreatedAt.Format(time.RFC3339), profile.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return prodsync.Errorf(prodsync.EINVALID, "profile %q already exists", profile.Name)
	}
	return err
}

// FindProfileByName retrieves a profile by its unique name.
func (s *ProfileService) FindProfileByName(ctx context.Context, name string) (*prodsync.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE name = ?
	`, name)

	profile, err := scanProfile(row.Scan)
	if err == sql.ErrNoRows {
		return nil, prodsync.Errorf(prodsync.ENOTFOUND, "profile %q not found", name)
	}
	return profile, err
}

// FindProfiles retrieves profiles matching the filter.
func (s *ProfileService) FindProfiles(ctx context.Context, filter prodsync.ProfileFilter) ([]*prodsync.Profile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + profileColumns + " FROM profiles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*prodsync.Profile
	for rows.Next() {
		profile, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, rows.Err()
}

// UpdateProfile applies upd to the named profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, name string, upd prodsync.ProfileUpdate) (*prodsync.Profile, error) {
	profile, err := s.FindProfileByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if upd.Endpoint != nil {
		profile.Endpoint = *upd.Endpoint
	}
	if upd.ShopName != nil {
		profile.ShopName = *upd.ShopName
	}
	if upd.AccessToken != nil {
		profile.AccessToken = *upd.AccessToken
	}
	if upd.Storefront != nil {
		profile.Storefront = *upd.Storefront
	}

	// Validate before persisting
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	profile.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE profiles
		SET endpoint = ?, shop_name = ?, access_token = ?, storefront = ?, updated_at = ?
		WHERE name = ?
	`, profile.Endpoint, profile.ShopName, profile.AccessToken, string(profile.Storefront),
		profile.UpdatedAt.Format(time.RFC3339), name)

	if err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile permanently removes a profile. Cached run results are
// removed by the ON DELETE CASCADE constraint.
func (s *ProfileService) DeleteProfile(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE name = ?", name)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return prodsync.Errorf(prodsync.ENOTFOUND, "profile %q not found", name)
	}

	return nil
}

// scanProfile reads one profile row via the given scan function.
func scanProfile(scan func(dest ...any) error) (*prodsync.Profile, error) {
	var profile prodsync.Profile
	var storefront, createdAt, updatedAt string

	if err := scan(&profile.ID, &profile.Name, &storefront, &profile.Endpoint,
		&profile.ShopName, &profile.AccessToken, &profile.Vendor, &profile.ProductType,
		&profile.DefaultStock, &profile.MaxVariants, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	profile.Storefront = prodsync.Storefront(storefront)

	var err error
	if profile.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if profile.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &profile, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/prodsync/prodsync"
)

// Compile-time interface verification.
var _ prodsync.ResultCache = (*ResultCache)(nil)

// ResultCache implements prodsync.ResultCache using SQLite. Each
// profile holds at most one cached result; writing replaces the
// previous one.
type ResultCache struct {
	db *DB
}

// NewResultCache creates a new ResultCache.
func NewResultCache(db *DB) *ResultCache {
	return &ResultCache{db: db}
}

// SetResult replaces the cached result for the profile.
func (c *ResultCache) SetResult(ctx context.Context, result *prodsync.RunResult) error {
	if result.ProfileID == "" {
		return prodsync.Errorf(prodsync.EINVALID, "profile ID required")
	}

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO run_results (id, profile_id, page_url, content_hash, payload, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (profile_id) DO UPDATE SET
			id = excluded.id,
			page_url = excluded.page_url,
			content_hash = excluded.content_hash,
			payload = excluded.payload,
			error = excluded.error,
			created_at = excluded.created_at
	`, result.ID, result.ProfileID, result.PageURL, result.ContentHash,
		result.Payload, result.Error, result.CreatedAt.Format(time.RFC3339))

	return err
}

// LastResult returns the cached result for a profile.
func (c *ResultCache) LastResult(ctx context.Context, profileID string) (*prodsync.RunResult, error) {
	var result prodsync.RunResult
	var createdAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, profile_id, page_url, content_hash, payload, error, created_at
		FROM run_results
		WHERE profile_id = ?
	`, profileID).Scan(&result.ID, &result.ProfileID, &result.PageURL,
		&result.ContentHash, &result.Payload, &result.Error, &createdAt)

	if err == sql.ErrNoRows {
		return nil, prodsync.Errorf(prodsync.ENOTFOUND, "no cached result for profile")
	}
	if err != nil {
		return nil, err
	}

	if result.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &result, nil
}

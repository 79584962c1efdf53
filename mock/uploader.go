package mock

import (
	"context"

	"github.com/prodsync/prodsync"
)

var _ prodsync.Uploader = (*Uploader)(nil)

// Uploader is a mock implementation of prodsync.Uploader.
type Uploader struct {
	SubmitFn func(ctx context.Context, record *prodsync.ProductRecord) (*prodsync.UploadResult, error)
}

func (u *Uploader) Submit(ctx context.Context, record *prodsync.ProductRecord) (*prodsync.UploadResult, error) {
	return u.SubmitFn(ctx, record)
}

package prodsync

import "context"

// UploadResult is the decoded success response from the catalog
// endpoint.
type UploadResult struct {
	// Status is the endpoint's reported status, if any.
	Status string `json:"status,omitempty"`

	// ProductID is the identifier assigned by the endpoint, if any.
	ProductID string `json:"product_id,omitempty"`

	// Raw is the full decoded response body.
	Raw map[string]any `json:"-"`
}

// Uploader submits a product record to a remote catalog endpoint.
type Uploader interface {
	// Submit serializes record and performs exactly one upload
	// attempt: no retries, no backoff. A non-success response fails
	// with EUNAVAILABLE (status in the message), a transport failure
	// with EUNAVAILABLE, and an undecodable success body with
	// EPAYLOAD. The record must not be mutated.
	Submit(ctx context.Context, record *ProductRecord) (*UploadResult, error)
}

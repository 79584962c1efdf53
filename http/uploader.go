package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/prodsync/prodsync"
)

// DefaultUploadTimeout bounds a single upload attempt. Uploads carry
// full product payloads and get a longer budget than page fetches.
const DefaultUploadTimeout = 30 * time.Second

// Ensure Uploader implements prodsync.Uploader at compile time.
var _ prodsync.Uploader = (*Uploader)(nil)

// Uploader submits product records to a catalog endpoint with a single
// POST request. Retry policy belongs to the caller; Submit performs
// exactly one attempt.
type Uploader struct {
	endpoint string
	client   *http.Client
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithUploadTimeout sets the timeout for the upload request.
func WithUploadTimeout(d time.Duration) UploaderOption {
	return func(u *Uploader) {
		u.client.Timeout = d
	}
}

// NewUploader creates an Uploader posting to the given endpoint.
func NewUploader(endpoint string, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultUploadTimeout},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Submit serializes record and posts it to the endpoint. A transport
// failure or non-2xx response fails with EUNAVAILABLE; a success
// response whose body cannot be decoded fails with EPAYLOAD.
func (u *Uploader) Submit(ctx context.Context, record *prodsync.ProductRecord) (*prodsync.UploadResult, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "encoding product record: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EINVALID, "invalid endpoint %q: %v", u.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "upload to %s: %v", u.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "reading upload response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, prodsync.Errorf(prodsync.EUNAVAILABLE, "upload failed with HTTP %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, prodsync.Errorf(prodsync.EPAYLOAD, "undecodable upload response: %v", err)
	}

	result := &prodsync.UploadResult{Raw: raw}
	if s, ok := raw["status"].(string); ok {
		result.Status = s
	}
	switch id := raw["product_id"].(type) {
	case string:
		result.ProductID = id
	case float64:
		result.ProductID = jsonNumber(id)
	}

	return result, nil
}

// jsonNumber renders a JSON number as the endpoint sent it, without a
// trailing ".000000" for integral IDs.
func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

package mock

import "github.com/prodsync/prodsync"

var _ prodsync.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of prodsync.Sanitizer.
type Sanitizer struct {
	CleanFn func(rawMarkup string) (*prodsync.CleanedDocument, error)
}

func (s *Sanitizer) Clean(rawMarkup string) (*prodsync.CleanedDocument, error) {
	return s.CleanFn(rawMarkup)
}

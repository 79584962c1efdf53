package mock

import "github.com/prodsync/prodsync"

var _ prodsync.Converter = (*Converter)(nil)

// Converter is a mock implementation of prodsync.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

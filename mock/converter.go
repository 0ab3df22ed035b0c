package mock

import "github.com/fwojciec/mdclip"

var _ mdclip.Converter = (*Converter)(nil)

// Converter is a mock implementation of mdclip.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

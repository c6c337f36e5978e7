package rendering

import (
	"context"
	"errors"
)

// DisabledRenderer answers every render request with an error. It
// stands in for the headless browser when rendering is switched off in
// configuration.
type DisabledRenderer struct{}

// NewDisabledRenderer creates a renderer that always fails
func NewDisabledRenderer() *DisabledRenderer {
	return &DisabledRenderer{}
}

// RenderPDF always returns an error
func (r *DisabledRenderer) RenderPDF(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("pdf rendering is disabled")
}

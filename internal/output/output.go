// Package output renders a classification result and delivers it to one or
// more destinations.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/scanlog/internal/model"
)

// Output defines the interface for report destinations.
type Output interface {
	Write(ctx context.Context, rs model.ResultSet) error
	Close() error
}

// Renderer encodes a ResultSet onto a writer.
type Renderer interface {
	Render(w io.Writer, rs model.ResultSet) error
}

// Format names a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Options controls rendering.
type Options struct {
	Verbosity Verbosity
	Color     bool // text only
}

// NewRenderer returns the renderer for f.
func NewRenderer(f Format, opts Options) (Renderer, error) {
	switch f {
	case FormatText, "":
		return newTextRenderer(opts), nil
	case FormatJSON:
		return &jsonRenderer{verbosity: opts.Verbosity}, nil
	case FormatYAML:
		return &yamlRenderer{verbosity: opts.Verbosity}, nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", f)
	}
}

// Package stdout writes the rendered report to standard output.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/scanlog/internal/model"
	"github.com/crimson-sun/scanlog/internal/output"
)

// Option configures a stdout Output.
type Option func(*Output)

// WithWriter replaces os.Stdout as the destination.
func WithWriter(w io.Writer) Option {
	return func(o *Output) { o.w = w }
}

// Output renders each ResultSet to stdout.
type Output struct {
	w        io.Writer
	renderer output.Renderer
}

// New creates a stdout Output that uses r for encoding.
func New(r output.Renderer, opts ...Option) *Output {
	o := &Output{w: os.Stdout, renderer: r}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Output) Write(_ context.Context, rs model.ResultSet) error {
	if err := o.renderer.Render(o.w, rs); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}

// Package multi sends one report to several outputs, e.g. the console and
// a report file.
package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/scanlog/internal/model"
	"github.com/crimson-sun/scanlog/internal/output"
)

// Multi is an output.Output over an ordered list of outputs.
type Multi struct {
	outputs []output.Output
}

// New returns a Multi writing to outputs in the given order. Nil entries
// are dropped.
func New(outputs ...output.Output) *Multi {
	m := &Multi{}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Write hands rs to every output, even after one fails. Failures are
// joined and tagged with the output's position.
func (m *Multi) Write(ctx context.Context, rs model.ResultSet) error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Write(ctx, rs); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every output and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for i, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

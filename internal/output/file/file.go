// Package file writes the rendered report to a file.
package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/crimson-sun/scanlog/internal/model"
	"github.com/crimson-sun/scanlog/internal/output"
)

const bufSize = 64 * 1024

// Output writes reports to a file with buffered I/O. The file is created
// (or truncated) by the first Write, so a run that never produces a report
// leaves an existing file untouched.
type Output struct {
	mu       sync.Mutex
	path     string
	renderer output.Renderer
	f        *os.File
	w        *bufio.Writer
}

// New returns an Output for path. It fails early when the parent directory
// does not exist, but does not touch path itself.
func New(path string, r output.Renderer) (*Output, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("file output: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("file output: %s is not a directory", dir)
	}
	return &Output{path: path, renderer: r}, nil
}

// Write renders rs into the buffer, opening the file on first use.
func (o *Output) Write(_ context.Context, rs model.ResultSet) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.f == nil {
		f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("file output: open %s: %w", o.path, err)
		}
		o.f = f
		o.w = bufio.NewWriterSize(f, bufSize)
	}

	if err := o.renderer.Render(o.w, rs); err != nil {
		return fmt.Errorf("file output: %s: %w", o.path, err)
	}
	return nil
}

// Close flushes the buffer and closes the file. It is a no-op when nothing
// was written.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.f == nil {
		return nil
	}
	f := o.f
	o.f = nil
	if err := o.w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return f.Close()
}

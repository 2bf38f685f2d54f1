// Package dir loads log lines from the files of a single directory.
package dir

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/scanlog/internal/connector"
	"github.com/crimson-sun/scanlog/internal/model"
)

// DefaultExtension selects plain-text log files.
const DefaultExtension = ".txt"

func init() {
	connector.Register("dir", func() connector.Connector {
		return &Connector{}
	})
}

// Connector reads every file in a directory (non-recursive) whose name
// ends with the configured extension. Files are taken in lexical order and
// their lines concatenated in that order, whatever order the reads finish in.
type Connector struct{}

// Load implements connector.Connector.
func (c *Connector) Load(ctx context.Context, cfg connector.Config) (connector.Batch, error) {
	paths, err := listFiles(cfg.Path, cfg.Extension)
	if err != nil {
		return connector.Batch{}, fmt.Errorf("dir connector: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("log files discovered", "dir", cfg.Path, "files", len(paths))

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	contents := make([][]string, len(paths))
	failures := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := readLines(path)
			if err != nil {
				serr := &model.SourceError{Path: path, Err: err}
				if cfg.SkipUnreadable {
					failures[i] = serr
					return nil
				}
				return serr
			}
			contents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return connector.Batch{}, fmt.Errorf("dir connector: %w", err)
	}

	var batch connector.Batch
	for i, path := range paths {
		if failures[i] != nil {
			logger.Warn("skipping unreadable log file", "path", path, "error", failures[i])
			batch.Skipped = append(batch.Skipped, path)
			continue
		}
		batch.Files = append(batch.Files, path)
		for _, text := range contents[i] {
			batch.Lines = append(batch.Lines, model.LogLine{
				Text:       text,
				SourcePath: path,
				Seq:        len(batch.Lines),
			})
		}
	}

	logger.Info("corpus loaded", "dir", cfg.Path, "files", len(batch.Files), "skipped", len(batch.Skipped), "lines", len(batch.Lines))
	return batch, nil
}

// listFiles returns the matching entries of dir in lexical order.
func listFiles(dir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// readLines splits a file after every '\n', keeping the terminator. A last
// line without a terminator is returned as-is.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

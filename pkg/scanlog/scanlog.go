package scanlog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/crimson-sun/scanlog/internal/connector"
	"github.com/crimson-sun/scanlog/internal/connector/dir"
	"github.com/crimson-sun/scanlog/internal/engine"
	"github.com/crimson-sun/scanlog/internal/engine/classifier"
	"github.com/crimson-sun/scanlog/internal/model"
)

// Errors returned by Scan and Classify. Match them with errors.Is.
var (
	ErrEmptyCorpus      = model.ErrEmptyCorpus
	ErrInsufficientData = model.ErrInsufficientData
)

// Scanner classifies log corpora.
type Scanner struct {
	mu             sync.Mutex
	engine         *engine.Engine
	extension      string
	skipUnreadable bool
	logger         *slog.Logger
}

// New creates a Scanner.
func New(opts ...Option) (*Scanner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c, err := classifier.ParseContamination(o.contamination)
	if err != nil {
		return nil, fmt.Errorf("scanlog: %w", err)
	}
	o.settings.Contamination = c

	eng, err := engine.Build(o.settings)
	if err != nil {
		return nil, fmt.Errorf("scanlog: %w", err)
	}
	return &Scanner{
		engine:         eng,
		extension:      o.extension,
		skipUnreadable: o.skipUnreadable,
		logger:         o.settings.Logger,
	}, nil
}

// Scan reads every matching file in dir (non-recursive, lexical order) and
// classifies all of their lines as one corpus.
func (s *Scanner) Scan(ctx context.Context, path string) (Result, error) {
	batch, err := (&dir.Connector{}).Load(ctx, connector.Config{
		Provider:       "dir",
		Path:           path,
		Extension:      s.extension,
		SkipUnreadable: s.skipUnreadable,
		Logger:         s.logger,
	})
	if err != nil {
		return Result{}, fmt.Errorf("scanlog: %w", err)
	}
	return s.classify(ctx, batch.Lines)
}

// Classify labels lines as one corpus. Seq in the result is the index of
// the line in lines.
func (s *Scanner) Classify(ctx context.Context, lines []Line) (Result, error) {
	ml := make([]model.LogLine, len(lines))
	for i, l := range lines {
		ml[i] = model.LogLine{Text: l.Text, SourcePath: l.Path, Seq: i}
	}
	return s.classify(ctx, ml)
}

func (s *Scanner) classify(ctx context.Context, lines []model.LogLine) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, err := s.engine.Classify(ctx, lines)
	if err != nil {
		return Result{}, fmt.Errorf("scanlog: %w", err)
	}
	return resultFromModel(rs), nil
}

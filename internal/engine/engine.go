// Package engine runs the classification core: vectorize, detect, match
// keywords, merge.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/engine/aggregate"
	"github.com/crimson-sun/scanlog/internal/engine/rules"
	"github.com/crimson-sun/scanlog/internal/model"
)

// OutlierModel fits on a batch of lines and returns one outlier verdict per
// line, in order. Alternative vectorizers or detectors plug in here.
type OutlierModel interface {
	FitAndScore(ctx context.Context, texts []string) ([]bool, error)
}

// Policy decides what happens when the corpus is too small for the
// statistical model.
type Policy string

const (
	// PolicyAbort returns the insufficient-data error to the caller.
	PolicyAbort Policy = "abort"
	// PolicyKeywords classifies with keyword rules only.
	PolicyKeywords Policy = "keywords"
)

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the insufficient-data policy. Default: PolicyAbort.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine combines an OutlierModel and a keyword Matcher.
type Engine struct {
	model   OutlierModel
	matcher *rules.Matcher
	policy  Policy
	logger  *slog.Logger
}

// New creates an Engine with the provided components.
func New(m OutlierModel, matcher *rules.Matcher, opts ...Option) *Engine {
	e := &Engine{
		model:   m,
		matcher: matcher,
		policy:  PolicyAbort,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify labels every line as anomalous or normal. Returns
// model.ErrEmptyCorpus for an empty or term-less corpus and, under
// PolicyAbort, model.ErrInsufficientData when the corpus is too small.
func (e *Engine) Classify(ctx context.Context, lines []model.LogLine) (model.ResultSet, error) {
	if len(lines) == 0 {
		return model.ResultSet{}, fmt.Errorf("engine: %w", model.ErrEmptyCorpus)
	}

	texts := model.Texts(lines)
	fallback := false

	outliers, err := e.model.FitAndScore(ctx, texts)
	switch {
	case err == nil:
		if len(outliers) != len(lines) {
			return model.ResultSet{}, fmt.Errorf("engine: outlier model returned %d verdicts for %d lines", len(outliers), len(lines))
		}
	case errors.Is(err, model.ErrInsufficientData) && e.policy == PolicyKeywords:
		e.logger.Warn("statistical detector skipped, classifying with keywords only", "lines", len(lines), "error", err)
		outliers = make([]bool, len(lines))
		fallback = true
	default:
		return model.ResultSet{}, fmt.Errorf("engine: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return model.ResultSet{}, err
	}

	verdicts := make([]model.Verdict, len(lines))
	for i, text := range texts {
		kw, hit := e.matcher.Match(text)
		verdicts[i] = model.Verdict{
			StatisticalOutlier: outliers[i],
			KeywordFlagged:     hit,
			Keyword:            kw,
		}
	}

	rs, err := aggregate.Merge(lines, verdicts)
	if err != nil {
		return model.ResultSet{}, fmt.Errorf("engine: %w", err)
	}
	rs.Fallback = fallback

	e.logger.Info("classified corpus",
		"lines", rs.Stats.Total,
		"anomalies", rs.Stats.Anomalies,
		"normals", rs.Stats.Normals,
		"statistical_only", rs.Stats.StatisticalOnly,
		"keyword_only", rs.Stats.KeywordOnly,
		"both", rs.Stats.Both,
	)
	return rs, nil
}

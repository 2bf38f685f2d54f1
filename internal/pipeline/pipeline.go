// Package pipeline runs one scan: load the corpus, classify it, write the
// report and record metrics.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crimson-sun/scanlog/internal/connector"
	"github.com/crimson-sun/scanlog/internal/metrics"
	"github.com/crimson-sun/scanlog/internal/model"
	"github.com/crimson-sun/scanlog/internal/output"
)

// Classifier labels a whole corpus. *engine.Engine implements it.
type Classifier interface {
	Classify(ctx context.Context, lines []model.LogLine) (model.ResultSet, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records every run on rec and, when path is non-empty, writes
// the textfile there after a successful run.
func WithMetrics(rec *metrics.Recorder, path string) Option {
	return func(p *Pipeline) {
		p.metrics = rec
		p.metricsFile = path
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// Pipeline connects a connector, classifier, and output.
type Pipeline struct {
	connector   connector.Connector
	classifier  Classifier
	output      output.Output
	metrics     *metrics.Recorder
	metricsFile string
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a Pipeline from the given components.
func New(conn connector.Connector, cls Classifier, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		connector:  conn,
		classifier: cls,
		output:     out,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one scan of the source described by cfg and returns the
// result that was written.
func (p *Pipeline) Run(ctx context.Context, cfg connector.Config) (model.ResultSet, error) {
	start := p.now()

	batch, err := p.connector.Load(ctx, cfg)
	if err != nil {
		return model.ResultSet{}, fmt.Errorf("pipeline load: %w", err)
	}

	rs, err := p.classifier.Classify(ctx, batch.Lines)
	if err != nil {
		return model.ResultSet{}, fmt.Errorf("pipeline classify: %w", err)
	}

	if err := p.output.Write(ctx, rs); err != nil {
		return model.ResultSet{}, fmt.Errorf("pipeline output: %w", err)
	}

	finished := p.now()
	p.logger.Info("report written",
		"anomalies", rs.Stats.Anomalies,
		"normals", rs.Stats.Normals,
		"duration", finished.Sub(start),
	)

	if p.metrics != nil {
		p.metrics.Observe(metrics.Run{
			Files:    len(batch.Files),
			Skipped:  len(batch.Skipped),
			Stats:    rs.Stats,
			Fallback: rs.Fallback,
			Duration: finished.Sub(start),
			Finished: finished,
		})
		if p.metricsFile != "" {
			if err := p.metrics.WriteTextfile(p.metricsFile); err != nil {
				return rs, fmt.Errorf("pipeline metrics: %w", err)
			}
			p.logger.Debug("metrics written", "path", p.metricsFile)
		}
	}
	return rs, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}

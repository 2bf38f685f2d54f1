package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/engine/classifier"
	"github.com/crimson-sun/scanlog/internal/engine/detector"
	"github.com/crimson-sun/scanlog/internal/engine/vectorizer"
	"github.com/crimson-sun/scanlog/internal/model"
)

// Statistical is the default OutlierModel: vectorize the batch, fit the
// detector on it, score the same rows and threshold the scores.
type Statistical struct {
	vectorizer vectorizer.Vectorizer
	detector   detector.Detector
	classifier *classifier.Classifier
	logger     *slog.Logger
}

// NewStatistical wires a vectorizer, detector and classifier together.
// A nil logger means slog.Default().
func NewStatistical(v vectorizer.Vectorizer, d detector.Detector, c *classifier.Classifier, logger *slog.Logger) *Statistical {
	if logger == nil {
		logger = slog.Default()
	}
	return &Statistical{vectorizer: v, detector: d, classifier: c, logger: logger}
}

// FitAndScore implements OutlierModel. A non-empty batch smaller than the
// detector's minimum fails with a *model.InsufficientDataError before it is
// vectorized, whatever its vocabulary.
func (s *Statistical) FitAndScore(ctx context.Context, texts []string) ([]bool, error) {
	if n, need := len(texts), s.detector.MinSamples(); n > 0 && n < need {
		return nil, &model.InsufficientDataError{Rows: n, Min: need}
	}

	m, err := s.vectorizer.Vectorize(texts)
	if err != nil {
		return nil, err
	}
	if m.NumRows() != len(texts) {
		return nil, fmt.Errorf("vectorizer returned %d rows for %d lines", m.NumRows(), len(texts))
	}
	s.logger.Debug("vectorized corpus", "rows", m.NumRows(), "columns", m.Cols)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.detector.Fit(m); err != nil {
		return nil, err
	}
	scores, err := s.detector.Score(m)
	if err != nil {
		return nil, err
	}

	threshold := s.classifier.Threshold(scores)
	s.logger.Debug("detector fitted",
		"sample_size", s.detector.SampleSize(),
		"contamination", s.classifier.Contamination.String(),
		"threshold", threshold,
	)
	return s.classifier.Classify(scores), nil
}

package engine

import (
	"fmt"
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/engine/classifier"
	"github.com/crimson-sun/scanlog/internal/engine/detector"
	"github.com/crimson-sun/scanlog/internal/engine/rules"
	"github.com/crimson-sun/scanlog/internal/engine/vectorizer"
)

// Settings describes a complete engine: vectorizer, isolation forest,
// contamination, keyword rules and the small-corpus policy.
type Settings struct {
	Vectorizer      vectorizer.Kind
	StripAccents    bool
	HashingFeatures int
	Detector        detector.Config
	Contamination   classifier.Contamination
	Keywords        []string
	Policy          Policy
	Logger          *slog.Logger
}

// DefaultSettings mirrors the CLI defaults.
func DefaultSettings() Settings {
	return Settings{
		Vectorizer:      vectorizer.KindTFIDF,
		HashingFeatures: vectorizer.DefaultHashingFeatures,
		Detector:        detector.DefaultConfig(),
		Keywords:        rules.DefaultKeywords(),
		Policy:          PolicyAbort,
	}
}

// Build assembles an Engine backed by the Statistical model.
func Build(s Settings) (*Engine, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	v, err := vectorizer.New(s.Vectorizer, vectorizer.Options{
		StripAccents:    s.StripAccents,
		HashingFeatures: s.HashingFeatures,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	if s.Detector.MaxSamples == 1 {
		return nil, fmt.Errorf("engine: max samples 1: each tree needs at least 2 rows")
	}

	switch s.Policy {
	case PolicyAbort, PolicyKeywords:
	case "":
		s.Policy = PolicyAbort
	default:
		return nil, fmt.Errorf("engine: unknown insufficient-data policy %q", s.Policy)
	}

	matcher := rules.New(s.Keywords)
	if len(matcher.Keywords()) == 0 {
		return nil, fmt.Errorf("engine: no usable keywords")
	}

	stat := NewStatistical(v, detector.NewIsolationForest(s.Detector), classifier.New(s.Contamination), logger)
	return New(stat, matcher, WithPolicy(s.Policy), WithLogger(logger)), nil
}

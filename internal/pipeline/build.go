package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/config"
	"github.com/crimson-sun/scanlog/internal/connector"
	"github.com/crimson-sun/scanlog/internal/engine"
	"github.com/crimson-sun/scanlog/internal/engine/classifier"
	"github.com/crimson-sun/scanlog/internal/engine/detector"
	"github.com/crimson-sun/scanlog/internal/engine/vectorizer"
	"github.com/crimson-sun/scanlog/internal/metrics"
	"github.com/crimson-sun/scanlog/internal/output"
	"github.com/crimson-sun/scanlog/internal/output/file"
	"github.com/crimson-sun/scanlog/internal/output/multi"
	"github.com/crimson-sun/scanlog/internal/output/stdout"

	// Register connector implementations.
	_ "github.com/crimson-sun/scanlog/internal/connector/dir"
)

// Provider is the connector used for log folders.
const Provider = "dir"

// FromConfig wires every component described by cfg. The report goes to
// stdout, plus cfg.Output.Path when set.
func FromConfig(cfg config.Config, stdoutW io.Writer, logger *slog.Logger) (*Pipeline, connector.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	contamination, err := classifier.ParseContamination(cfg.Contamination)
	if err != nil {
		return nil, connector.Config{}, err
	}
	eng, err := engine.Build(engine.Settings{
		Vectorizer:      vectorizer.Kind(cfg.Vectorizer),
		StripAccents:    cfg.StripAccents,
		HashingFeatures: cfg.HashingFeatures,
		Detector: detector.Config{
			NumTrees:   cfg.Detector.NEstimators,
			MaxSamples: cfg.Detector.MaxSamples,
			MinSamples: cfg.Detector.MinSamples,
			Seed:       cfg.RandomSeed,
		},
		Contamination: contamination,
		Keywords:      cfg.Keywords,
		Policy:        engine.Policy(cfg.OnInsufficientData),
		Logger:        logger,
	})
	if err != nil {
		return nil, connector.Config{}, err
	}

	out, err := buildOutput(cfg.Output, stdoutW)
	if err != nil {
		return nil, connector.Config{}, err
	}

	ctor, err := connector.Get(Provider)
	if err != nil {
		out.Close()
		return nil, connector.Config{}, err
	}

	opts := []Option{WithLogger(logger)}
	if cfg.MetricsFile != "" {
		opts = append(opts, WithMetrics(metrics.New(), cfg.MetricsFile))
	}

	connCfg := connector.Config{
		Provider:       Provider,
		Path:           cfg.LogFolder,
		Extension:      cfg.Extension,
		SkipUnreadable: cfg.SkipUnreadable,
		Logger:         logger,
	}
	return New(ctor(), eng, out, opts...), connCfg, nil
}

func buildOutput(cfg config.OutputConfig, stdoutW io.Writer) (output.Output, error) {
	verbosity, err := output.ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return nil, err
	}
	r, err := output.NewRenderer(output.Format(cfg.Format), output.Options{Verbosity: verbosity, Color: cfg.Color})
	if err != nil {
		return nil, err
	}
	console := stdout.New(r, stdout.WithWriter(stdoutW))
	if cfg.Path == "" {
		return console, nil
	}

	// The file copy never carries terminal colors.
	fr, err := output.NewRenderer(output.Format(cfg.Format), output.Options{Verbosity: verbosity})
	if err != nil {
		return nil, err
	}
	f, err := file.New(cfg.Path, fr)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return multi.New(console, f), nil
}

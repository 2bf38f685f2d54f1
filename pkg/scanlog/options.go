package scanlog

import (
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/engine"
	"github.com/crimson-sun/scanlog/internal/engine/vectorizer"
)

type options struct {
	settings       engine.Settings
	contamination  string
	extension      string
	skipUnreadable bool
}

// Option configures a Scanner.
type Option func(*options)

// WithKeywords replaces the keyword set. Default: error, fail, exception,
// critical.
func WithKeywords(keywords ...string) Option {
	return func(o *options) {
		o.settings.Keywords = keywords
	}
}

// WithSeed sets the detector's random seed. Default: 42.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.settings.Detector.Seed = seed
	}
}

// WithContamination sets the expected share of outliers: "auto" or a
// fraction in (0, 0.5]. Default: "auto". Invalid values make New fail.
func WithContamination(c string) Option {
	return func(o *options) {
		o.contamination = c
	}
}

// WithVectorizer selects "tfidf" (default) or "hashing".
func WithVectorizer(kind string) Option {
	return func(o *options) {
		o.settings.Vectorizer = vectorizer.Kind(kind)
	}
}

// WithStripAccents folds accented letters to their base form before
// tokenizing.
func WithStripAccents(strip bool) Option {
	return func(o *options) {
		o.settings.StripAccents = strip
	}
}

// WithHashingFeatures sets the bucket count of the hashing vectorizer.
func WithHashingFeatures(n int) Option {
	return func(o *options) {
		o.settings.HashingFeatures = n
	}
}

// WithTrees sets the number of isolation trees. Default: 100.
func WithTrees(n int) Option {
	return func(o *options) {
		o.settings.Detector.NumTrees = n
	}
}

// WithMaxSamples sets how many lines each tree is built from. Default: 256.
func WithMaxSamples(n int) Option {
	return func(o *options) {
		o.settings.Detector.MaxSamples = n
	}
}

// WithMinSamples sets the smallest corpus the detector fits. Default: 2.
func WithMinSamples(n int) Option {
	return func(o *options) {
		o.settings.Detector.MinSamples = n
	}
}

// WithKeywordFallback classifies corpora that are too small for the
// detector with keyword rules alone instead of returning
// ErrInsufficientData.
func WithKeywordFallback(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.settings.Policy = engine.PolicyKeywords
		} else {
			o.settings.Policy = engine.PolicyAbort
		}
	}
}

// WithExtension sets the file suffix Scan reads. Default: ".txt".
func WithExtension(ext string) Option {
	return func(o *options) {
		o.extension = ext
	}
}

// WithSkipUnreadable makes Scan skip files it cannot read instead of
// failing.
func WithSkipUnreadable(skip bool) Option {
	return func(o *options) {
		o.skipUnreadable = skip
	}
}

// WithLogger sets the logger for diagnostics. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.settings.Logger = l
	}
}

func defaultOptions() options {
	return options{
		settings:      engine.DefaultSettings(),
		contamination: "auto",
		extension:     ".txt",
	}
}

package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"extension":            "extension",
	"keywords":             "keywords",
	"seed":                 "random_seed",
	"contamination":        "contamination",
	"vectorizer":           "vectorizer",
	"strip-accents":        "strip_accents",
	"hashing-features":     "hashing_features",
	"n-estimators":         "detector.n_estimators",
	"max-samples":          "detector.max_samples",
	"min-samples":          "detector.min_samples",
	"on-insufficient-data": "on_insufficient_data",
	"skip-unreadable":      "skip_unreadable",
	"format":               "output.format",
	"output":               "output.path",
	"verbosity":            "output.verbosity",
	"color":                "output.color",
	"log-level":            "log.level",
	"log-format":           "log.format",
	"metrics-file":         "metrics_file",
}

// RegisterFlags adds one flag per configurable key to fs. Flag defaults
// mirror Default() for help output only; precedence is decided in Load.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("extension", d.Extension, "log file name suffix")
	fs.StringSlice("keywords", d.Keywords, "keywords that mark a line anomalous (case-insensitive)")
	fs.Int64("seed", d.RandomSeed, "random seed for the outlier detector")
	fs.String("contamination", d.Contamination, `expected share of outliers: "auto" or a fraction in (0, 0.5]`)
	fs.String("vectorizer", d.Vectorizer, "text vectorizer: tfidf or hashing")
	fs.Bool("strip-accents", d.StripAccents, "strip accents before tokenizing")
	fs.Int("hashing-features", d.HashingFeatures, "bucket count for the hashing vectorizer")
	fs.Int("n-estimators", d.Detector.NEstimators, "number of isolation trees")
	fs.Int("max-samples", d.Detector.MaxSamples, "rows sampled per tree")
	fs.Int("min-samples", d.Detector.MinSamples, "smallest corpus the detector fits")
	fs.String("on-insufficient-data", d.OnInsufficientData, "abort or keywords")
	fs.Bool("skip-unreadable", d.SkipUnreadable, "warn and skip unreadable files instead of failing")
	fs.StringP("format", "f", d.Output.Format, "report format: text, json or yaml")
	fs.StringP("output", "o", d.Output.Path, "also write the report to this file")
	fs.String("verbosity", d.Output.Verbosity, "minimal, standard or full")
	fs.Bool("color", d.Output.Color, "color the text report")
	fs.String("log-level", d.Log.Level, "debug, info, warn or error")
	fs.String("log-format", d.Log.Format, "text or json")
	fs.String("metrics-file", d.MetricsFile, "write Prometheus metrics to this textfile")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

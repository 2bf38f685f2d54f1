// Package config resolves scanlog settings from defaults, an optional YAML
// file, SCANLOG_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/crimson-sun/scanlog/internal/engine/classifier"
)

// EnvPrefix is prepended to every environment variable, e.g.
// SCANLOG_DETECTOR_N_ESTIMATORS.
const EnvPrefix = "SCANLOG"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Version is the build version, set via -ldflags at release time.
var Version = "dev"

// Config holds all scanlog configuration.
type Config struct {
	LogFolder          string         `mapstructure:"log_folder" validate:"required"`
	Extension          string         `mapstructure:"extension" validate:"required"`
	Keywords           []string       `mapstructure:"keywords" validate:"min=1,dive,required"`
	RandomSeed         int64          `mapstructure:"random_seed"`
	Contamination      string         `mapstructure:"contamination" validate:"contamination"`
	Vectorizer         string         `mapstructure:"vectorizer" validate:"oneof=tfidf hashing"`
	StripAccents       bool           `mapstructure:"strip_accents"`
	HashingFeatures    int            `mapstructure:"hashing_features" validate:"gt=0,lte=2147483647"`
	Detector           DetectorConfig `mapstructure:"detector"`
	OnInsufficientData string         `mapstructure:"on_insufficient_data" validate:"oneof=abort keywords"`
	SkipUnreadable     bool           `mapstructure:"skip_unreadable"`
	Output             OutputConfig   `mapstructure:"output"`
	Log                LogConfig      `mapstructure:"log"`
	MetricsFile        string         `mapstructure:"metrics_file"`
}

// DetectorConfig holds isolation forest settings.
type DetectorConfig struct {
	NEstimators int `mapstructure:"n_estimators" validate:"gte=1"`
	MaxSamples  int `mapstructure:"max_samples" validate:"gte=2"`
	MinSamples  int `mapstructure:"min_samples" validate:"gte=2"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format    string `mapstructure:"format" validate:"oneof=text json yaml"`
	Path      string `mapstructure:"path"`
	Verbosity string `mapstructure:"verbosity" validate:"oneof=minimal standard full"`
	Color     bool   `mapstructure:"color"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Extension:          ".txt",
		Keywords:           []string{"error", "fail", "exception", "critical"},
		RandomSeed:         42,
		Contamination:      "auto",
		Vectorizer:         "tfidf",
		HashingFeatures:    1 << 18,
		OnInsufficientData: "abort",
		Detector: DetectorConfig{
			NEstimators: 100,
			MaxSamples:  256,
			MinSamples:  2,
		},
		Output: OutputConfig{
			Format:    "text",
			Verbosity: "standard",
			Color:     true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadOptions selects the sources Load reads besides defaults and the
// environment.
type LoadOptions struct {
	File      string         // optional YAML file; must exist when set
	Flags     *pflag.FlagSet // flags registered with RegisterFlags
	LogFolder string         // positional argument; overrides every other source
}

// Load resolves and validates the configuration.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	if opts.LogFolder != "" {
		v.Set("log_folder", opts.LogFolder)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_folder", d.LogFolder)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("keywords", d.Keywords)
	v.SetDefault("random_seed", d.RandomSeed)
	v.SetDefault("contamination", d.Contamination)
	v.SetDefault("vectorizer", d.Vectorizer)
	v.SetDefault("strip_accents", d.StripAccents)
	v.SetDefault("hashing_features", d.HashingFeatures)
	v.SetDefault("detector.n_estimators", d.Detector.NEstimators)
	v.SetDefault("detector.max_samples", d.Detector.MaxSamples)
	v.SetDefault("detector.min_samples", d.Detector.MinSamples)
	v.SetDefault("on_insufficient_data", d.OnInsufficientData)
	v.SetDefault("skip_unreadable", d.SkipUnreadable)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.verbosity", d.Output.Verbosity)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics_file", d.MetricsFile)
}

// Validate checks every field and reports all failures at once.
func (c Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(c, fe))
	}
	return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(msgs, "\n  - "))
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("contamination", func(fl validator.FieldLevel) bool {
		_, err := classifier.ParseContamination(fl.Field().String())
		return err == nil
	})
	return v
}

// describe renders a field error with its dotted config key.
func describe(c Config, fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		if key == "log_folder" {
			return "log_folder is required (pass a directory argument or set SCANLOG_LOG_FOLDER)"
		}
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "contamination":
		_, err := classifier.ParseContamination(c.Contamination)
		return err.Error()
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", key, fe.Tag(), fe.Param(), fe.Value())
	}
}

// Exists reports whether path names a readable regular file. Used for the
// implicit ./scanlog.yaml lookup.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("scanlog", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{LogFolder: "logs", Flags: newFlags(t)})
	require.NoError(t, err)

	want := Default()
	want.LogFolder = "logs"
	assert.Equal(t, want, cfg)
}

func TestLoad_RequiresLogFolder(t *testing.T) {
	_, err := Load(LoadOptions{})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "log_folder is required")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SCANLOG_LOG_FOLDER", "/var/log/app")
	t.Setenv("SCANLOG_KEYWORDS", "panic,oom")
	t.Setenv("SCANLOG_DETECTOR_N_ESTIMATORS", "50")
	t.Setenv("SCANLOG_OUTPUT_FORMAT", "json")
	t.Setenv("SCANLOG_SKIP_UNREADABLE", "true")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/var/log/app", cfg.LogFolder)
	assert.Equal(t, []string{"panic", "oom"}, cfg.Keywords)
	assert.Equal(t, 50, cfg.Detector.NEstimators)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.SkipUnreadable)
}

func TestLoad_File(t *testing.T) {
	path := writeYAML(t, `
log_folder: ./logs
contamination: "0.1"
vectorizer: hashing
hashing_features: 1024
detector:
  max_samples: 64
output:
  verbosity: full
  color: false
`)

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)

	assert.Equal(t, "./logs", cfg.LogFolder)
	assert.Equal(t, "0.1", cfg.Contamination)
	assert.Equal(t, "hashing", cfg.Vectorizer)
	assert.Equal(t, 1024, cfg.HashingFeatures)
	assert.Equal(t, 64, cfg.Detector.MaxSamples)
	assert.Equal(t, 100, cfg.Detector.NEstimators)
	assert.Equal(t, "full", cfg.Output.Verbosity)
	assert.False(t, cfg.Output.Color)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml"), LogFolder: "logs"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeYAML(t, "log_folder: from-file\nrandom_seed: 1\nextension: .log\nvectorizer: hashing\n")
	t.Setenv("SCANLOG_RANDOM_SEED", "2")
	t.Setenv("SCANLOG_EXTENSION", ".out")

	cfg, err := Load(LoadOptions{
		File:      path,
		Flags:     newFlags(t, "--seed=3", "--keywords=panic,oom", "-f", "yaml"),
		LogFolder: "from-arg",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-arg", cfg.LogFolder)
	assert.EqualValues(t, 3, cfg.RandomSeed)
	assert.Equal(t, ".out", cfg.Extension)
	assert.Equal(t, "hashing", cfg.Vectorizer)
	assert.Equal(t, []string{"panic", "oom"}, cfg.Keywords)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"bad contamination", func(c *Config) { c.Contamination = "0.7" }, "must be in (0, 0.5]"},
		{"contamination not a number", func(c *Config) { c.Contamination = "lots" }, "want \"auto\" or a number"},
		{"bad vectorizer", func(c *Config) { c.Vectorizer = "bert" }, "vectorizer must be one of"},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "output.format must be one of"},
		{"bad verbosity", func(c *Config) { c.Output.Verbosity = "loud" }, "output.verbosity must be one of"},
		{"bad policy", func(c *Config) { c.OnInsufficientData = "guess" }, "on_insufficient_data must be one of"},
		{"no keywords", func(c *Config) { c.Keywords = nil }, "keywords needs at least 1 entries"},
		{"empty keyword", func(c *Config) { c.Keywords = []string{"error", ""} }, "keywords[1] is required"},
		{"min samples", func(c *Config) { c.Detector.MinSamples = 1 }, "detector.min_samples failed gte=2"},
		{"single-row trees", func(c *Config) { c.Detector.MaxSamples = 1 }, "detector.max_samples failed gte=2"},
		{"too many hash buckets", func(c *Config) { c.HashingFeatures = math.MaxInt32 + 1 }, "hashing_features failed lte=2147483647"},
		{"zero trees", func(c *Config) { c.Detector.NEstimators = 0 }, "detector.n_estimators failed gte=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.LogFolder = "logs"
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Vectorizer = "bert"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "log_folder is required")
	assert.Contains(t, err.Error(), "vectorizer must be one of")
	assert.Contains(t, err.Error(), "log.level must be one of")
}

func TestValidate_AcceptsFractions(t *testing.T) {
	for _, c := range []string{"auto", "0.05", "0.5", "AUTO"} {
		cfg := Default()
		cfg.LogFolder = "logs"
		cfg.Contamination = c
		assert.NoError(t, cfg.Validate(), c)
	}
}

func TestExists(t *testing.T) {
	path := writeYAML(t, "extension: .txt\n")
	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Dir(path)))
	assert.False(t, Exists(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestVersion_IsSet(t *testing.T) {
	assert.NotEmpty(t, Version)
}

package connector

import (
	"context"
	"log/slog"

	"github.com/crimson-sun/scanlog/internal/model"
)

// Connector defines the interface all log sources must implement.
type Connector interface {
	// Load reads every line of the source in a single deterministic order
	// and assigns sequence indices over that order.
	Load(ctx context.Context, cfg Config) (Batch, error)
}

// Config holds source settings.
type Config struct {
	Provider       string
	Path           string       // directory to scan
	Extension      string       // file name suffix, e.g. ".txt"
	SkipUnreadable bool         // warn and continue instead of aborting on a bad file
	Concurrency    int          // parallel file reads; 0 means GOMAXPROCS
	Logger         *slog.Logger // nil means slog.Default()
}

// Batch is the corpus loaded by a Connector.
type Batch struct {
	Lines   []model.LogLine
	Files   []string // files read, in load order
	Skipped []string // files that could not be read
}

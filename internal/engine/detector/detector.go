// Package detector scores rows of a feature matrix by how easily they are
// isolated from the rest of the batch.
package detector

import "github.com/crimson-sun/scanlog/internal/model"

// Detector fits an unsupervised model on a matrix and scores its rows.
// Scores are in [0, 1]; higher means more anomalous.
type Detector interface {
	Fit(m model.FeatureMatrix) error
	Score(m model.FeatureMatrix) ([]float64, error)
	// MinSamples is the smallest row count Fit accepts.
	MinSamples() int
	// SampleSize is the number of rows each estimator saw in the last Fit.
	SampleSize() int
}

// Config controls the isolation forest.
type Config struct {
	NumTrees   int   // number of trees in the ensemble
	MaxSamples int   // rows drawn per tree, capped at the corpus size
	MinSamples int   // smallest corpus Fit accepts, at least 2
	Seed       int64 // random source seed
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		NumTrees:   100,
		MaxSamples: 256,
		MinSamples: 2,
		Seed:       42,
	}
}

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCorpus is returned when there is nothing to build a vocabulary from.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrInsufficientData is returned when the corpus is too small to fit
	// the statistical detector.
	ErrInsufficientData = errors.New("insufficient data")
)

// InsufficientDataError reports how many rows were available and how many
// the detector needs.
type InsufficientDataError struct {
	Rows int
	Min  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d rows, detector needs at least %d", e.Rows, e.Min)
}

// Is makes errors.Is(err, ErrInsufficientData) match.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// SourceError wraps a failure to read one log file.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

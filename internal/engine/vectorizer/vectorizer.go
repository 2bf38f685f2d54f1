// Package vectorizer turns raw log lines into a sparse numeric feature
// matrix. Vocabularies are built from the batch being vectorized; nothing is
// pretrained or carried between runs.
package vectorizer

import (
	"fmt"
	"math"

	"github.com/crimson-sun/scanlog/internal/model"
)

// Vectorizer produces one feature row per input text, in input order.
type Vectorizer interface {
	Vectorize(texts []string) (model.FeatureMatrix, error)
}

// Kind names a vectorizer implementation.
type Kind string

const (
	KindTFIDF   Kind = "tfidf"
	KindHashing Kind = "hashing"
)

// Options configures New.
type Options struct {
	StripAccents    bool
	HashingFeatures int // bucket count for KindHashing; 0 means DefaultHashingFeatures
}

// New returns the vectorizer registered under kind.
func New(kind Kind, opts Options) (Vectorizer, error) {
	switch kind {
	case KindTFIDF, "":
		return NewTFIDF(opts.StripAccents), nil
	case KindHashing:
		return NewHashing(opts.HashingFeatures, opts.StripAccents), nil
	default:
		return nil, fmt.Errorf("vectorizer: unknown kind %q", kind)
	}
}

// normalizeL2 scales v to unit Euclidean length in place. Zero vectors are
// left untouched.
func normalizeL2(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

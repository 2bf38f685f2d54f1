package vectorizer

import (
	"fmt"
	"hash/fnv"

	"github.com/crimson-sun/scanlog/internal/model"
)

// DefaultHashingFeatures is the bucket count used when none is configured.
const DefaultHashingFeatures = 1 << 18

// Hashing maps terms to a fixed number of columns with FNV-1a, so no
// vocabulary is kept. Rows are L2-normalized term counts.
type Hashing struct {
	tok      tokenizer
	features int
}

// NewHashing creates a hashing vectorizer with the given bucket count.
func NewHashing(features int, stripAccents bool) *Hashing {
	if features <= 0 {
		features = DefaultHashingFeatures
	}
	return &Hashing{tok: tokenizer{stripAccents: stripAccents}, features: features}
}

// Vectorize returns one hashed row per text. Returns model.ErrEmptyCorpus
// when texts is empty or yields no terms.
func (h *Hashing) Vectorize(texts []string) (model.FeatureMatrix, error) {
	if len(texts) == 0 {
		return model.FeatureMatrix{}, fmt.Errorf("hashing: %w", model.ErrEmptyCorpus)
	}

	m := model.FeatureMatrix{Rows: make([]model.SparseVector, len(texts)), Cols: h.features}
	terms := 0
	for i, text := range texts {
		tokens := h.tok.tokenize(text)
		terms += len(tokens)
		counts := make(map[int]float64, len(tokens))
		for _, term := range tokens {
			counts[h.bucket(term)]++
		}
		m.Rows[i] = sparseRow(counts, nil)
	}
	if terms == 0 {
		return model.FeatureMatrix{}, fmt.Errorf("hashing: %w: no terms in %d lines", model.ErrEmptyCorpus, len(texts))
	}
	return m, nil
}

func (h *Hashing) bucket(term string) int {
	f := fnv.New32a()
	f.Write([]byte(term))
	return int(uint64(f.Sum32()) % uint64(h.features))
}

package vectorizer

import (
	"fmt"
	"math"
	"sort"

	"github.com/crimson-sun/scanlog/internal/model"
)

// TFIDF weights raw term counts by smoothed inverse document frequency,
// idf(t) = ln((1+n)/(1+df(t))) + 1, and L2-normalizes each row.
// The vocabulary is rebuilt on every call, so m.Cols of the result is the
// vocabulary size.
type TFIDF struct {
	tok tokenizer
}

// NewTFIDF creates a TF-IDF vectorizer.
func NewTFIDF(stripAccents bool) *TFIDF {
	return &TFIDF{tok: tokenizer{stripAccents: stripAccents}}
}

// Vectorize builds a vocabulary from texts and returns their TF-IDF rows.
// Returns model.ErrEmptyCorpus when texts is empty or yields no terms.
func (v *TFIDF) Vectorize(texts []string) (model.FeatureMatrix, error) {
	if len(texts) == 0 {
		return model.FeatureMatrix{}, fmt.Errorf("tfidf: %w", model.ErrEmptyCorpus)
	}

	docs := make([][]string, len(texts))
	for i, text := range texts {
		docs[i] = v.tok.tokenize(text)
	}

	voc := buildVocab(docs)
	if voc.size() == 0 {
		return model.FeatureMatrix{}, fmt.Errorf("tfidf: %w: no terms in %d lines", model.ErrEmptyCorpus, len(texts))
	}

	n := float64(len(texts))
	idf := make([]float64, voc.size())
	for j, df := range voc.df {
		idf[j] = math.Log((1+n)/(1+float64(df))) + 1
	}

	m := model.FeatureMatrix{Rows: make([]model.SparseVector, len(docs)), Cols: voc.size()}
	for i, doc := range docs {
		counts := make(map[int]float64, len(doc))
		for _, term := range doc {
			counts[voc.termToID[term]]++
		}
		m.Rows[i] = sparseRow(counts, idf)
	}
	return m, nil
}

// sparseRow turns column counts into a sorted, weighted, L2-normalized row.
// A nil weights slice leaves counts unweighted.
func sparseRow(counts map[int]float64, weights []float64) model.SparseVector {
	idx := make([]int, 0, len(counts))
	for j := range counts {
		idx = append(idx, j)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	for k, j := range idx {
		vals[k] = counts[j]
		if weights != nil {
			vals[k] *= weights[j]
		}
	}
	normalizeL2(vals)
	return model.SparseVector{Indices: idx, Values: vals}
}

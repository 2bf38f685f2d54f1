package model

import "sort"

// SparseVector is a row of a FeatureMatrix. Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// At returns the value at column j, or 0 when j is not stored.
func (v SparseVector) At(j int) float64 {
	k := sort.SearchInts(v.Indices, j)
	if k < len(v.Indices) && v.Indices[k] == j {
		return v.Values[k]
	}
	return 0
}

// FeatureMatrix has exactly one row per input line, in input order.
type FeatureMatrix struct {
	Rows []SparseVector
	Cols int
}

// NumRows returns the number of rows.
func (m FeatureMatrix) NumRows() int { return len(m.Rows) }

// Dense builds a FeatureMatrix from dense rows, dropping zeros. All rows
// must have the same length.
func Dense(rows [][]float64) FeatureMatrix {
	m := FeatureMatrix{Rows: make([]SparseVector, len(rows))}
	for i, r := range rows {
		if len(r) > m.Cols {
			m.Cols = len(r)
		}
		var v SparseVector
		for j, x := range r {
			if x != 0 {
				v.Indices = append(v.Indices, j)
				v.Values = append(v.Values, x)
			}
		}
		m.Rows[i] = v
	}
	return m
}

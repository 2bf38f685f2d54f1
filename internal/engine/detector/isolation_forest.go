package detector

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/crimson-sun/scanlog/internal/model"
)

const eulerGamma = 0.5772156649

// node is one node of an isolation tree.
type node struct {
	feature int
	split   float64
	left    *node
	right   *node
	size    int
	isLeaf  bool
}

// IsolationForest is an ensemble of randomly split trees. A row that needs
// few splits to be separated from the others gets a high score.
//
// Fit and Score are deterministic for a given Config.Seed: the random
// source is reset on every Fit and trees are built one after another.
type IsolationForest struct {
	cfg        Config
	trees      []*node
	sampleSize int
	maxDepth   int
	rng        *rand.Rand
}

// NewIsolationForest creates an unfitted forest.
func NewIsolationForest(cfg Config) *IsolationForest {
	def := DefaultConfig()
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = def.NumTrees
	}
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = def.MaxSamples
	}
	if cfg.MinSamples < 2 {
		cfg.MinSamples = 2
	}
	return &IsolationForest{cfg: cfg}
}

// Fit builds the ensemble on every row of m. Returns a
// *model.InsufficientDataError when m has fewer than Config.MinSamples rows.
//
// A tree needs at least two rows: with one, c(1) is 0 and every score would
// be NaN.
func (f *IsolationForest) Fit(m model.FeatureMatrix) error {
	if f.cfg.MaxSamples < 2 {
		return fmt.Errorf("isolation forest: max samples %d: need at least 2", f.cfg.MaxSamples)
	}
	n := m.NumRows()
	if n < f.cfg.MinSamples {
		return &model.InsufficientDataError{Rows: n, Min: f.cfg.MinSamples}
	}

	f.rng = rand.New(rand.NewSource(f.cfg.Seed))
	f.sampleSize = min(f.cfg.MaxSamples, n)
	f.maxDepth = int(math.Ceil(math.Log2(float64(f.sampleSize))))
	f.trees = make([]*node, 0, f.cfg.NumTrees)

	for i := 0; i < f.cfg.NumTrees; i++ {
		sample := f.sampleRows(n)
		f.trees = append(f.trees, f.buildTree(m.Rows, sample, 0))
	}
	return nil
}

// Score returns s(x) = 2^(-E[h(x)] / c(sampleSize)) for every row of m.
func (f *IsolationForest) Score(m model.FeatureMatrix) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, errors.New("isolation forest: not fitted")
	}

	c := averagePathLength(f.sampleSize)
	scores := make([]float64, m.NumRows())
	for i, row := range m.Rows {
		total := 0.0
		for _, tree := range f.trees {
			total += pathLength(tree, row)
		}
		avg := total / float64(len(f.trees))
		scores[i] = math.Pow(2, -avg/c)
	}
	return scores, nil
}

// MinSamples implements Detector.
func (f *IsolationForest) MinSamples() int {
	return f.cfg.MinSamples
}

// SampleSize returns the number of rows each tree was built on.
func (f *IsolationForest) SampleSize() int {
	return f.sampleSize
}

// sampleRows draws sampleSize distinct row indices with a partial
// Fisher-Yates shuffle.
func (f *IsolationForest) sampleRows(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < f.sampleSize; i++ {
		j := i + f.rng.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:f.sampleSize]
}

// buildTree recursively splits the rows in idx.
func (f *IsolationForest) buildTree(rows []model.SparseVector, idx []int, depth int) *node {
	if len(idx) <= 1 || depth >= f.maxDepth {
		return &node{size: len(idx), isLeaf: true}
	}

	// Only features that vary within this node can split it. Identical
	// rows end up here with no candidates.
	features, spans := varyingFeatures(rows, idx)
	if len(features) == 0 {
		return &node{size: len(idx), isLeaf: true}
	}

	feature := features[f.rng.Intn(len(features))]
	s := spans[feature]
	split := s.min + f.rng.Float64()*(s.max-s.min)

	left, right := splitRows(rows, idx, feature, split)
	if len(left) == 0 || len(right) == 0 {
		return &node{size: len(idx), isLeaf: true}
	}

	return &node{
		feature: feature,
		split:   split,
		left:    f.buildTree(rows, left, depth+1),
		right:   f.buildTree(rows, right, depth+1),
		size:    len(idx),
	}
}

type span struct {
	min, max float64
	nnz      int
}

// varyingFeatures returns, in ascending order, the columns whose value is
// not constant over idx, along with each column's range. Columns missing
// from a sparse row count as zero.
func varyingFeatures(rows []model.SparseVector, idx []int) ([]int, map[int]*span) {
	spans := make(map[int]*span)
	for _, i := range idx {
		row := rows[i]
		for k, j := range row.Indices {
			v := row.Values[k]
			s, ok := spans[j]
			if !ok {
				spans[j] = &span{min: v, max: v, nnz: 1}
				continue
			}
			s.min = math.Min(s.min, v)
			s.max = math.Max(s.max, v)
			s.nnz++
		}
	}

	features := make([]int, 0, len(spans))
	for j, s := range spans {
		if s.nnz < len(idx) {
			s.min = math.Min(s.min, 0)
			s.max = math.Max(s.max, 0)
		}
		if s.max > s.min {
			features = append(features, j)
		}
	}
	sort.Ints(features)
	return features, spans
}

// splitRows sends rows with value <= split left and the rest right.
func splitRows(rows []model.SparseVector, idx []int, feature int, split float64) (left, right []int) {
	for _, i := range idx {
		if rows[i].At(feature) <= split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

// pathLength is the depth at which row lands, plus the expected depth of
// the unresolved subtree below a leaf that still holds several rows.
func pathLength(n *node, row model.SparseVector) float64 {
	depth := 0
	for !n.isLeaf {
		if row.At(n.feature) <= n.split {
			n = n.left
		} else {
			n = n.right
		}
		depth++
	}
	return float64(depth) + averagePathLength(n.size)
}

// averagePathLength is c(n), the average path length of an unsuccessful
// search in a binary search tree of n nodes.
func averagePathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	return 2*(math.Log(float64(n-1))+eulerGamma) - 2*float64(n-1)/float64(n)
}

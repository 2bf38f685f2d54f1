// Package classifier turns detector scores into outlier verdicts.
package classifier

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// AutoThreshold is the score above which a row is an outlier when the
// contamination is "auto".
const AutoThreshold = 0.5

// Contamination is the expected share of outliers in a batch. The zero
// value means "auto".
type Contamination struct {
	Fraction float64 // 0 means auto
}

// Auto reports whether the contamination is left to the fixed score offset.
func (c Contamination) Auto() bool { return c.Fraction == 0 }

func (c Contamination) String() string {
	if c.Auto() {
		return "auto"
	}
	return strconv.FormatFloat(c.Fraction, 'g', -1, 64)
}

// ParseContamination accepts "auto" or a fraction in (0, 0.5].
func ParseContamination(s string) (Contamination, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "auto" {
		return Contamination{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Contamination{}, fmt.Errorf("contamination %q: want \"auto\" or a number", s)
	}
	if f <= 0 || f > 0.5 || math.IsNaN(f) {
		return Contamination{}, fmt.Errorf("contamination %v: must be in (0, 0.5]", f)
	}
	return Contamination{Fraction: f}, nil
}

// Classifier flags scores above a threshold derived from the contamination.
type Classifier struct {
	Contamination Contamination
}

// New creates a Classifier with the given contamination.
func New(c Contamination) *Classifier {
	return &Classifier{Contamination: c}
}

// Threshold returns the cut-off for scores. With a fraction c it is the
// (1-c) quantile of scores, linearly interpolated.
func (c *Classifier) Threshold(scores []float64) float64 {
	if c.Contamination.Auto() || len(scores) == 0 {
		return AutoThreshold
	}
	return quantile(scores, 1-c.Contamination.Fraction)
}

// Classify returns true for every score strictly above the threshold.
func (c *Classifier) Classify(scores []float64) []bool {
	t := c.Threshold(scores)
	out := make([]bool, len(scores))
	for i, s := range scores {
		out[i] = s > t
	}
	return out
}

func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// Package rules flags log lines that contain any configured keyword.
// Matching is case-insensitive substring containment: "errorcode" matches
// "error".
package rules

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// DefaultKeywords returns the keyword set used when none is configured.
func DefaultKeywords() []string {
	return []string{"error", "fail", "exception", "critical"}
}

// casers hands out Unicode case folders; a cases.Caser is not safe for
// concurrent use.
var casers = sync.Pool{
	New: func() any { return cases.Fold() },
}

func fold(s string) string {
	c := casers.Get().(cases.Caser)
	out := c.String(s)
	c.Reset()
	casers.Put(c)
	return out
}

// Matcher holds a keyword set. It has no other state and is safe for
// concurrent use.
type Matcher struct {
	keywords []string
	folded   []string
}

// New creates a Matcher. Empty keywords are ignored; duplicates after case
// folding are kept once, first occurrence wins.
func New(keywords []string) *Matcher {
	m := &Matcher{}
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		f := fold(kw)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		m.keywords = append(m.keywords, kw)
		m.folded = append(m.folded, f)
	}
	return m
}

// Keywords returns the effective keyword set in configured order.
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}

// Match reports whether line contains any keyword, and which one matched
// first in configured order.
func (m *Matcher) Match(line string) (string, bool) {
	if len(m.folded) == 0 {
		return "", false
	}
	text := fold(line)
	for i, kw := range m.folded {
		if strings.Contains(text, kw) {
			return m.keywords[i], true
		}
	}
	return "", false
}

package output

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/crimson-sun/scanlog/internal/model"
)

// Verbosity controls how much of a ResultSet is reported.
type Verbosity int

const (
	Minimal  Verbosity = iota // counts and anomalies only
	Standard                  // adds normals and patterns, long cells truncated
	Full                      // everything, nothing truncated
)

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(s) {
	case "minimal":
		return Minimal, nil
	case "standard", "":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("output: unknown verbosity %q", s)
	}
}

// cellWidth is the widest table cell per verbosity; 0 disables truncation.
func (v Verbosity) cellWidth() int {
	switch v {
	case Minimal:
		return 40
	case Standard:
		return 80
	default:
		return 0
	}
}

// FormatResult returns a copy of rs stripped according to verbosity.
// At Minimal, normals and patterns are dropped; stats are kept.
func FormatResult(rs model.ResultSet, v Verbosity) model.ResultSet {
	if v == Minimal {
		rs.Normals = nil
		rs.AnomalyPatterns = nil
		rs.NormalPatterns = nil
	}
	return rs
}

// Truncate shortens s to at most width runes, marking the cut with "...".
// width <= 0 returns s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// Escape renders s on a single line, escaping the terminator and any
// control characters the way a Go string literal would.
func Escape(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// Cell escapes a log line for one report cell and truncates it to width
// runes. The escaped line terminator is kept past the cut, so lines that
// differ only in their terminator stay distinguishable.
func Cell(s string, width int) string {
	body, term := s, ""
	switch {
	case strings.HasSuffix(s, "\r\n"):
		body, term = s[:len(s)-2], s[len(s)-2:]
	case strings.HasSuffix(s, "\n"):
		body, term = s[:len(s)-1], s[len(s)-1:]
	}
	et := Escape(term)
	if width <= 0 {
		return Escape(body) + et
	}
	return Truncate(Escape(body), max(width-len(et), 1)) + et
}

// Reason describes which signals flagged a line.
func Reason(v model.Verdict) string {
	switch {
	case v.StatisticalOutlier && v.KeywordFlagged:
		return "statistical+keyword:" + v.Keyword
	case v.KeywordFlagged:
		return "keyword:" + v.Keyword
	case v.StatisticalOutlier:
		return "statistical"
	default:
		return ""
	}
}

// Package aggregate merges the statistical and keyword signals into one
// ResultSet.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/scanlog/internal/model"
)

// Merge classifies each line as anomalous when either signal fired,
// collapses anomalies flagged by both signals to a single entry, and sorts
// both partitions by (SourcePath, Seq).
//
// verdicts[i] belongs to lines[i].
func Merge(lines []model.LogLine, verdicts []model.Verdict) (model.ResultSet, error) {
	if len(lines) != len(verdicts) {
		return model.ResultSet{}, fmt.Errorf("aggregate: %d lines but %d verdicts", len(lines), len(verdicts))
	}

	// Statistical outliers first, then keyword hits: a line flagged by both
	// is a candidate twice.
	candidates := make([]model.ClassifiedLine, 0)
	for i, l := range lines {
		if verdicts[i].StatisticalOutlier {
			candidates = append(candidates, model.ClassifiedLine{LogLine: l, Verdict: verdicts[i]})
		}
	}
	for i, l := range lines {
		if verdicts[i].KeywordFlagged {
			candidates = append(candidates, model.ClassifiedLine{LogLine: l, Verdict: verdicts[i]})
		}
	}

	anomalies := Dedup(candidates)
	flagged := make(map[model.Key]struct{}, len(anomalies))
	for _, a := range anomalies {
		flagged[a.Key()] = struct{}{}
	}

	normals := make([]model.ClassifiedLine, 0, len(lines)-len(anomalies))
	for i, l := range lines {
		if _, ok := flagged[l.Key()]; ok {
			continue
		}
		normals = append(normals, model.ClassifiedLine{LogLine: l, Verdict: verdicts[i]})
	}

	Sort(anomalies)
	Sort(normals)

	rs := model.ResultSet{
		Anomalies:       anomalies,
		Normals:         normals,
		AnomalyPatterns: Patterns(anomalies),
		NormalPatterns:  Patterns(normals),
	}
	rs.Stats = computeStats(rs)
	return rs, nil
}

// Dedup drops entries whose (Text, SourcePath, Seq) identity was already
// seen, keeping first-occurrence order. Dedup(Dedup(x)) == Dedup(x).
func Dedup(lines []model.ClassifiedLine) []model.ClassifiedLine {
	if len(lines) == 0 {
		return []model.ClassifiedLine{}
	}

	seen := make(map[model.Key]struct{}, len(lines))
	out := make([]model.ClassifiedLine, 0, len(lines))
	for _, l := range lines {
		k := l.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Sort orders lines by SourcePath, then Seq.
func Sort(lines []model.ClassifiedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].SourcePath != lines[j].SourcePath {
			return lines[i].SourcePath < lines[j].SourcePath
		}
		return lines[i].Seq < lines[j].Seq
	})
}

// Patterns returns the distinct raw texts of lines, sorted. Texts that
// differ only by their terminator stay distinct.
func Patterns(lines []model.ClassifiedLine) []string {
	set := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		set[l.Text] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for text := range set {
		out = append(out, text)
	}
	sort.Strings(out)
	return out
}

func computeStats(rs model.ResultSet) model.Stats {
	s := model.Stats{
		Total:     len(rs.Anomalies) + len(rs.Normals),
		Normals:   len(rs.Normals),
		Anomalies: len(rs.Anomalies),
	}
	for _, a := range rs.Anomalies {
		switch {
		case a.StatisticalOutlier && a.KeywordFlagged:
			s.Both++
		case a.StatisticalOutlier:
			s.StatisticalOnly++
		default:
			s.KeywordOnly++
		}
	}
	return s
}

package scanlog

import "github.com/crimson-sun/scanlog/internal/model"

// Line is one log line handed to Classify.
type Line struct {
	Text string // kept byte-exact, including any line terminator
	Path string // origin of the line; may be empty
}

// Entry is a classified line.
type Entry struct {
	Text               string `json:"text"`
	Path               string `json:"source_path"`
	Seq                int    `json:"sequence_index"` // position in the corpus
	StatisticalOutlier bool   `json:"statistical_outlier"`
	KeywordFlagged     bool   `json:"keyword_flagged"`
	Keyword            string `json:"keyword,omitempty"` // first configured keyword that matched
}

// Stats summarises a Result.
type Stats struct {
	Total           int `json:"total"`
	Normals         int `json:"normals"`
	Anomalies       int `json:"anomalies"`
	StatisticalOnly int `json:"statistical_only"`
	KeywordOnly     int `json:"keyword_only"`
	Both            int `json:"both"`
}

// Result partitions a corpus into anomalies and normals, each sorted by
// (Path, Seq).
type Result struct {
	Anomalies       []Entry  `json:"anomalies"`
	Normals         []Entry  `json:"normals"`
	AnomalyPatterns []string `json:"anomaly_patterns"` // distinct anomalous texts, sorted
	NormalPatterns  []string `json:"normal_patterns"`  // distinct normal texts, sorted
	Stats           Stats    `json:"stats"`
	Fallback        bool     `json:"fallback,omitempty"` // keyword rules only; corpus too small
}

func resultFromModel(rs model.ResultSet) Result {
	return Result{
		Anomalies:       entries(rs.Anomalies),
		Normals:         entries(rs.Normals),
		AnomalyPatterns: rs.AnomalyPatterns,
		NormalPatterns:  rs.NormalPatterns,
		Stats:           Stats(rs.Stats),
		Fallback:        rs.Fallback,
	}
}

func entries(lines []model.ClassifiedLine) []Entry {
	if lines == nil {
		return nil
	}
	out := make([]Entry, len(lines))
	for i, l := range lines {
		out[i] = Entry{
			Text:               l.Text,
			Path:               l.SourcePath,
			Seq:                l.Seq,
			StatisticalOutlier: l.StatisticalOutlier,
			KeywordFlagged:     l.KeywordFlagged,
			Keyword:            l.Keyword,
		}
	}
	return out
}

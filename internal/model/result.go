package model

// Verdict holds the two independent anomaly signals for one line.
type Verdict struct {
	StatisticalOutlier bool   `json:"statistical_outlier" yaml:"statistical_outlier"`
	KeywordFlagged     bool   `json:"keyword_flagged" yaml:"keyword_flagged"`
	Keyword            string `json:"keyword,omitempty" yaml:"keyword,omitempty"` // first configured keyword that matched
}

// IsAnomaly is the union of both signals.
func (v Verdict) IsAnomaly() bool {
	return v.StatisticalOutlier || v.KeywordFlagged
}

// ClassifiedLine is a LogLine annotated with its Verdict.
type ClassifiedLine struct {
	LogLine `yaml:",inline"`
	Verdict `yaml:",inline"`
}

// Stats summarises a ResultSet.
type Stats struct {
	Total           int `json:"total" yaml:"total"`
	Normals         int `json:"normals" yaml:"normals"`
	Anomalies       int `json:"anomalies" yaml:"anomalies"`
	StatisticalOnly int `json:"statistical_only" yaml:"statistical_only"`
	KeywordOnly     int `json:"keyword_only" yaml:"keyword_only"`
	Both            int `json:"both" yaml:"both"`
}

// ResultSet is the output of one classification run. Anomalies and Normals
// are disjoint, together cover every input line, and are each sorted by
// (SourcePath, Seq).
type ResultSet struct {
	Anomalies       []ClassifiedLine `json:"anomalies" yaml:"anomalies"`
	Normals         []ClassifiedLine `json:"normals,omitempty" yaml:"normals,omitempty"`
	AnomalyPatterns []string         `json:"anomaly_patterns,omitempty" yaml:"anomaly_patterns,omitempty"`
	NormalPatterns  []string         `json:"normal_patterns,omitempty" yaml:"normal_patterns,omitempty"`
	Stats           Stats            `json:"stats" yaml:"stats"`

	// Fallback is set when the statistical detector was skipped and only
	// keyword rules classified the corpus.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

package model

// LogLine is a single line read from a log source. Text keeps the line
// terminator exactly as read; the last line of a file may have none.
type LogLine struct {
	Text       string `json:"text" yaml:"text"`
	SourcePath string `json:"source_path" yaml:"source_path"`
	Seq        int    `json:"sequence_index" yaml:"sequence_index"`
}

// Key identifies a line for deduplication.
type Key struct {
	Text       string
	SourcePath string
	Seq        int
}

// Key returns the identity of the line.
func (l LogLine) Key() Key {
	return Key{Text: l.Text, SourcePath: l.SourcePath, Seq: l.Seq}
}

// Texts returns the raw text of every line, in order.
func Texts(lines []LogLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

package output

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/scanlog/internal/model"
)

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		want    Verbosity
		wantErr bool
	}{
		{"minimal", Minimal, false},
		{"STANDARD", Standard, false},
		{"", Standard, false},
		{"full", Full, false},
		{"loud", Standard, true},
	}
	for _, tt := range tests {
		got, err := ParseVerbosity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "minimal", Minimal.String())
	assert.Equal(t, "standard", Standard.String())
	assert.Equal(t, "full", Full.String())
}

func TestFormatResultMinimal(t *testing.T) {
	rs := FormatResult(sampleResult(), Minimal)

	assert.Len(t, rs.Anomalies, 3)
	assert.Nil(t, rs.Normals)
	assert.Nil(t, rs.AnomalyPatterns)
	assert.Nil(t, rs.NormalPatterns)
	assert.Equal(t, 2, rs.Stats.Normals)
}

func TestFormatResultStandardKeepsEverything(t *testing.T) {
	assert.Equal(t, sampleResult(), FormatResult(sampleResult(), Standard))
	assert.Equal(t, sampleResult(), FormatResult(sampleResult(), Full))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ünï...", Truncate("ünïcödé", 6))
	assert.Equal(t, "..", Truncate("abcdef", 2))
	assert.Equal(t, "unlimited", Truncate("unlimited", 0))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `error SIG11\n`, Escape("error SIG11\n"))
	assert.Equal(t, `windows\r\n`, Escape("windows\r\n"))
	assert.Equal(t, `say "hi"`, Escape(`say "hi"`))
	assert.Equal(t, "naïve", Escape("naïve"))
}

func TestCell(t *testing.T) {
	long := strings.Repeat("x", 50)
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "error SIG11\n", 40, `error SIG11\n`},
		{"no terminator", "error SIG11", 40, `error SIG11`},
		{"cut keeps newline", long + "\n", 20, strings.Repeat("x", 15) + `...\n`},
		{"cut keeps crlf", long + "\r\n", 20, strings.Repeat("x", 13) + `...\r\n`},
		{"cut without terminator", long, 20, strings.Repeat("x", 17) + "..."},
		{"unlimited", long + "\n", 0, long + `\n`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cell(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			if tt.width > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.width)
			}
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, "statistical", Reason(model.Verdict{StatisticalOutlier: true}))
	assert.Equal(t, "keyword:fail", Reason(model.Verdict{KeywordFlagged: true, Keyword: "fail"}))
	assert.Equal(t, "statistical+keyword:error", Reason(model.Verdict{StatisticalOutlier: true, KeywordFlagged: true, Keyword: "error"}))
	assert.Empty(t, Reason(model.Verdict{}))
}

package vectorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		strip bool
		want  []string
	}{
		{"lowercases", "ERROR Duplicated User\n", false, []string{"error", "duplicated", "user"}},
		{"drops single chars", "a bb c dd", false, []string{"bb", "dd"}},
		{"splits on punctuation", "error:SIG11,0xffdd46", false, []string{"error", "sig11", "0xffdd46"}},
		{"keeps underscores", "__ snake_case", false, []string{"__", "snake_case"}},
		{"unicode letters", "café naïve", false, []string{"café", "naïve"}},
		{"strip accents", "café naïve", true, []string{"cafe", "naive"}},
		{"strip splits ligatures", "ﬁle Ångström", true, []string{"file", "angstrom"}},
		{"empty", "", false, nil},
		{"only terminator", "\n", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer{stripAccents: tt.strip}.tokenize(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeIgnoresTerminator(t *testing.T) {
	tok := tokenizer{}
	assert.Equal(t, tok.tokenize("error SIG11"), tok.tokenize("error SIG11\n"))
	assert.Equal(t, tok.tokenize("error SIG11"), tok.tokenize("error SIG11\r\n"))
}

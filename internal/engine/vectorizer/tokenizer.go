package vectorizer

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenizer splits text into terms: lowercase, optionally strip accents,
// then keep every run of two or more word characters. A word character is
// a letter, a number or an underscore.
type tokenizer struct {
	stripAccents bool
}

func (t tokenizer) tokenize(text string) []string {
	text = strings.ToLower(text)
	if t.stripAccents {
		text = stripAccents(text)
	}

	var tokens []string
	start, runes := -1, 0
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start, runes = i, 0
			}
			runes++
			continue
		}
		if start >= 0 && runes >= 2 {
			tokens = append(tokens, text[start:i])
		}
		start = -1
	}
	if start >= 0 && runes >= 2 {
		tokens = append(tokens, text[start:])
	}
	return tokens
}

// accentStrippers hold NFKD + drop-combining-marks chains. A
// transform.Transformer carries state and must not be shared.
var accentStrippers = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	},
}

// stripAccents decomposes text (compatibility form, so ligatures split too)
// and removes the combining marks.
func stripAccents(text string) string {
	t := accentStrippers.Get().(transform.Transformer)
	defer accentStrippers.Put(t)
	t.Reset()
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

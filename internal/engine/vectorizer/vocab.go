package vectorizer

import "sort"

// vocab maps terms to column indices. Terms are sorted so that column
// order does not depend on input order.
type vocab struct {
	termToID map[string]int
	df       []int // document frequency per column
}

// buildVocab collects every term of the tokenized corpus and counts in how
// many documents each appears.
func buildVocab(docs [][]string) *vocab {
	seen := make(map[string]int)
	for _, doc := range docs {
		inDoc := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := inDoc[term]; ok {
				continue
			}
			inDoc[term] = struct{}{}
			seen[term]++
		}
	}

	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &vocab{
		termToID: make(map[string]int, len(terms)),
		df:       make([]int, len(terms)),
	}
	for i, term := range terms {
		v.termToID[term] = i
		v.df[i] = seen[term]
	}
	return v
}

func (v *vocab) size() int {
	return len(v.df)
}

// Package match disambiguates among multiple search candidates for one
// input row by averaging Jaro-Winkler similarity across the fields the
// row's fingerprint and the candidate both carry.
package match

import (
	"github.com/rotisserie/eris"
	"github.com/xrash/smetrics"
	"golang.org/x/text/unicode/norm"

	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/pkg/preseries"
)

// Select picks the candidate most similar to the fingerprint. Candidates
// are required to be non-empty. Each candidate's score is the arithmetic
// mean of per-field Jaro-Winkler similarities over the fingerprint fields
// the candidate carries with a non-empty value; candidates with no
// comparable field are skipped rather than scored over zero fields. Ties
// keep the earliest candidate in server order.
func Select(fp query.Fingerprint, candidates []preseries.Company) (preseries.Company, error) {
	if len(candidates) == 0 {
		return preseries.Company{}, eris.New("match: no candidates")
	}

	best := -1
	bestScore := -1.0
	for i, candidate := range candidates {
		score, comparable := score(fp, candidate)
		if !comparable {
			continue
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		// No candidate shared a field with the fingerprint; server order
		// is the only signal left.
		return candidates[0], nil
	}
	return candidates[best], nil
}

// score averages the per-field similarities. It reports false when the
// candidate carries none of the fingerprint's fields.
func score(fp query.Fingerprint, candidate preseries.Company) (float64, bool) {
	sum := 0.0
	n := 0
	for field, want := range fp.Fields {
		have, ok := candidate.Field(field)
		if !ok {
			continue
		}
		sum += Similarity(want, have)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Similarity is the Jaro-Winkler similarity of two strings in [0,1],
// case-sensitive, after NFC normalization so composed and decomposed
// UTF-8 forms compare equal.
func Similarity(a, b string) float64 {
	return smetrics.JaroWinkler(norm.NFC.String(a), norm.NFC.String(b), 0.7, 4)
}

// Package country maps free-text country input to ISO 3166-1 alpha-3 codes.
//
// The table of (name, alpha-2, alpha-3) triples is embedded at build time
// and immutable for the process lifetime. Lookup tries exact matches first
// (alpha-3, then alpha-2, then full name, all case-insensitive) and falls
// back to Jaro-Winkler similarity against every known country name.
package country

import (
	_ "embed"
	"strings"

	"github.com/xrash/smetrics"
)

//go:embed countries.tsv
var countriesTSV string

// Entry is one row of the ISO 3166-1 table.
type Entry struct {
	Name   string
	Alpha2 string
	Alpha3 string
}

// Resolver resolves free-text country input to an alpha-3 code.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	entries  []Entry
	byAlpha3 map[string]int
	byAlpha2 map[string]int
	byName   map[string]int
}

// NewResolver builds a Resolver from the embedded country table.
func NewResolver() *Resolver {
	r := &Resolver{
		byAlpha3: make(map[string]int),
		byAlpha2: make(map[string]int),
		byName:   make(map[string]int),
	}

	for _, line := range strings.Split(countriesTSV, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 3 {
			continue
		}
		e := Entry{
			Name:   strings.ToLower(parts[0]),
			Alpha2: strings.ToLower(parts[1]),
			Alpha3: strings.ToLower(parts[2]),
		}
		idx := len(r.entries)
		r.entries = append(r.entries, e)

		// First occurrence wins; found means present, entry 0 included.
		if _, ok := r.byAlpha3[e.Alpha3]; !ok {
			r.byAlpha3[e.Alpha3] = idx
		}
		if _, ok := r.byAlpha2[e.Alpha2]; !ok {
			r.byAlpha2[e.Alpha2] = idx
		}
		if _, ok := r.byName[e.Name]; !ok {
			r.byName[e.Name] = idx
		}
	}

	return r
}

// Entries returns the table in load order.
func (r *Resolver) Entries() []Entry {
	return r.entries
}

// Resolve maps countryText to an ISO 3166-1 alpha-3 code. It never fails:
// input that matches no code or name exactly falls back to the alpha-3 of
// the most similar country name, ties broken by table order.
func (r *Resolver) Resolve(countryText string) string {
	text := strings.ToLower(strings.TrimSpace(countryText))

	if _, ok := r.byAlpha3[text]; ok {
		return strings.ToUpper(text)
	}
	if idx, ok := r.byAlpha2[text]; ok {
		return strings.ToUpper(r.entries[idx].Alpha3)
	}
	if idx, ok := r.byName[text]; ok {
		return strings.ToUpper(r.entries[idx].Alpha3)
	}

	best := 0
	bestScore := -1.0
	for i, e := range r.entries {
		score := smetrics.JaroWinkler(e.Name, text, 0.7, 4)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	return strings.ToUpper(r.entries[best].Alpha3)
}

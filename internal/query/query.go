// Package query converts spreadsheet rows describing companies into search
// queries for the PreSeries company_search endpoint, plus the fingerprint of
// resolved field values used later for client-side disambiguation.
package query

import (
	"net/url"
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/preseries/api-examples/internal/country"
)

// domainRe captures the host portion of an arbitrary URL-like string:
// optional scheme, optional leading "www.", everything up to the first "/".
var domainRe = regexp.MustCompile(`^(.*://)?(?:www\.)?(.[^/]+).*$`)

// Row is one input spreadsheet row after header rows are skipped.
// All fields except Index are optional.
type Row struct {
	Index   int    // original row number in the source sheet
	ID      string // known PreSeries company id, authoritative when present
	Name    string
	Country string // free-text country name or code
	Domain  string // URL-like text, normalized before use
}

// Fingerprint carries the resolved field values of a row. The fields are
// used only for disambiguating among multiple search candidates; Row is
// never a similarity field.
type Fingerprint struct {
	Row    int
	Fields map[string]string
}

// Builder turns rows into search queries. Country text is resolved through
// the ISO table; domain text is normalized to a bare hostname and recorded
// in the fingerprint only, never in the query.
type Builder struct {
	countries *country.Resolver
}

// NewBuilder creates a Builder backed by the given country resolver.
func NewBuilder(countries *country.Resolver) *Builder {
	return &Builder{countries: countries}
}

// Build converts a row into query parameters and its fingerprint.
// A known id excludes every other filter: the query is id=<id> alone.
// Otherwise the query accumulates name__icontains and country_code, while
// the domain only ever lands in the fingerprint.
func (b *Builder) Build(row Row) (url.Values, Fingerprint) {
	fp := Fingerprint{Row: row.Index, Fields: make(map[string]string)}

	if row.ID != "" {
		fp.Fields["id"] = row.ID
		return url.Values{"id": {row.ID}}, fp
	}

	q := url.Values{}

	if row.Name != "" {
		q.Set("name__icontains", row.Name)
		fp.Fields["name"] = row.Name
	}

	if domain, ok := NormalizeDomain(row.Domain); ok {
		fp.Fields["domain"] = domain
	}

	if row.Country != "" {
		code := b.countries.Resolve(row.Country)
		q.Set("country_code", code)
		fp.Fields["country_code"] = code
	}

	return q, fp
}

// NormalizeDomain extracts a bare hostname from a URL-like string, stripping
// the scheme, a leading "www.", and anything from the first "/" on. It
// reports false for empty or unparseable input.
func NormalizeDomain(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	m := domainRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// ColumnIndex converts a spreadsheet-style column letter to a zero-based
// index: A=0, Z=25, AA=26. Lowercase letters are accepted.
func ColumnIndex(name string) (int, error) {
	if name == "" {
		return 0, eris.New("query: empty column name")
	}

	idx := 0
	for _, c := range name {
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a') + 1
		default:
			return 0, eris.Errorf("query: invalid column name %q", name)
		}
	}

	return idx - 1, nil
}

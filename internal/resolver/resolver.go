// Package resolver orchestrates company identity resolution: each input
// row becomes one search call, multi-candidate responses are disambiguated
// by field similarity, and every row lands in exactly one of the matched or
// unmatched partitions, in input order.
package resolver

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/preseries/api-examples/internal/match"
	"github.com/preseries/api-examples/internal/query"
	"github.com/preseries/api-examples/pkg/preseries"
)

// searchLimit caps how many candidates one search call may return.
const searchLimit = 100

// Searcher is the slice of the API client the resolver needs.
type Searcher interface {
	SearchCompanies(ctx context.Context, filters url.Values) (*preseries.SearchResponse, error)
}

// Match is a resolved company annotated with its originating row.
type Match struct {
	Row     int
	Company preseries.Company
}

// Resolver resolves input rows against the company directory.
type Resolver struct {
	api     Searcher
	builder *query.Builder
}

// New creates a Resolver.
func New(api Searcher, builder *query.Builder) *Resolver {
	return &Resolver{api: api, builder: builder}
}

// ResolveAll processes rows strictly sequentially in input order and
// partitions them into matched companies and unmatched fingerprints. The
// partitions are disjoint and cover every row exactly once. A row whose
// search fails outright (retries exhausted, definitive error) is recorded
// as unmatched and processing continues.
func (r *Resolver) ResolveAll(ctx context.Context, rows []query.Row) ([]Match, []query.Fingerprint) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("resolving rows", zap.Int("count", len(rows)))

	var matched []Match
	var unmatched []query.Fingerprint

	for _, row := range rows {
		filters, fp := r.builder.Build(row)
		filters.Set("limit", strconv.Itoa(searchLimit))

		resp, err := r.api.SearchCompanies(ctx, filters)
		if err != nil {
			log.Warn("search failed, row recorded as unmatched",
				zap.Int("row", row.Index),
				zap.Error(err),
			)
			unmatched = append(unmatched, fp)
			continue
		}

		switch {
		case resp.Meta.TotalCount == 0 || len(resp.Objects) == 0:
			log.Warn("unknown company", zap.Int("row", row.Index), zap.Any("fingerprint", fp.Fields))
			unmatched = append(unmatched, fp)

		case resp.Meta.TotalCount == 1:
			matched = append(matched, Match{Row: row.Index, Company: resp.Objects[0]})

		default:
			best, err := match.Select(fp, resp.Objects)
			if err != nil {
				unmatched = append(unmatched, fp)
				continue
			}
			log.Warn("more than one match, best candidate selected",
				zap.Int("row", row.Index),
				zap.Int("candidates", len(resp.Objects)),
				zap.String("selected", best.ID),
			)
			matched = append(matched, Match{Row: row.Index, Company: best})
		}
	}

	log.Info("resolution finished",
		zap.Int("matched", len(matched)),
		zap.Int("unmatched", len(unmatched)),
	)
	return matched, unmatched
}

// MatchedIDs returns the company ids of the matched partition, preserving
// order and skipping records the server returned without an id.
func MatchedIDs(matched []Match) []string {
	ids := make([]string, 0, len(matched))
	for _, m := range matched {
		if m.Company.ID != "" {
			ids = append(ids, m.Company.ID)
		}
	}
	return ids
}

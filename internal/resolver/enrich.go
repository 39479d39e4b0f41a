package resolver

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/preseries/api-examples/pkg/preseries"
)

// Lister is the slice of the API client the enricher needs.
type Lister interface {
	ListCompanyData(ctx context.Context, filters url.Values) (*preseries.ListResponse, error)
	ListCompetitors(ctx context.Context, filters url.Values) (*preseries.ListResponse, error)
	ListSimilar(ctx context.Context, filters url.Values) (*preseries.ListResponse, error)
}

// detailsAddOns lists the nested sections requested with each detailed record.
const detailsAddOns = "stages,company,founders,board_members,score_evolution"

// Enricher fetches secondary datasets for resolved company ids in
// bounded-size batches.
type Enricher struct {
	api       Lister
	batchSize int
}

// NewEnricher creates an Enricher. batchSize <= 0 selects the default.
func NewEnricher(api Lister, batchSize int) *Enricher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Enricher{api: api, batchSize: batchSize}
}

// CompanyDetails retrieves the detailed record of every id, flattened in
// batch order.
func (e *Enricher) CompanyDetails(ctx context.Context, ids []string) ([]preseries.Company, error) {
	out, err := FetchInBatches(ids, e.batchSize, func(batch []string) ([]preseries.Company, error) {
		filters := url.Values{
			"only_last_snapshot": {"true"},
			"company_id__in":     {strings.Join(batch, ",")},
			"add_details":        {detailsAddOns},
		}
		resp, err := e.api.ListCompanyData(ctx, filters)
		if err != nil {
			return nil, err
		}
		return resp.Resources, nil
	})
	if err != nil {
		return out, eris.Wrap(err, "enrich: company details")
	}
	return out, nil
}

// Competitors retrieves competitor records for every id, grouped by the
// company they belong to.
func (e *Enricher) Competitors(ctx context.Context, ids []string) (map[string][]preseries.Company, error) {
	groups, err := e.listGrouped(ctx, ids, e.api.ListCompetitors)
	if err != nil {
		return groups, eris.Wrap(err, "enrich: competitors")
	}
	return groups, nil
}

// Similar retrieves similar-company records for every id, grouped by the
// company they belong to.
func (e *Enricher) Similar(ctx context.Context, ids []string) (map[string][]preseries.Company, error) {
	groups, err := e.listGrouped(ctx, ids, e.api.ListSimilar)
	if err != nil {
		return groups, eris.Wrap(err, "enrich: similar companies")
	}
	return groups, nil
}

type listFn func(ctx context.Context, filters url.Values) (*preseries.ListResponse, error)

func (e *Enricher) listGrouped(ctx context.Context, ids []string, list listFn) (map[string][]preseries.Company, error) {
	byCompany := make(map[string][]preseries.Company)

	_, err := FetchInBatches(ids, e.batchSize, func(batch []string) ([]preseries.Company, error) {
		filters := url.Values{
			// Each company may carry several related records; give the
			// server room for all of them.
			"limit":          {strconv.Itoa(len(batch) * DefaultBatchSize)},
			"company_id__in": {strings.Join(batch, ",")},
		}
		resp, err := list(ctx, filters)
		if err != nil {
			return nil, err
		}
		for _, rec := range resp.Resources {
			companyID, ok := rec.Field("company_id")
			if !ok {
				continue
			}
			byCompany[companyID] = append(byCompany[companyID], rec)
		}
		return resp.Resources, nil
	})

	return byCompany, err
}

package resolver

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preseries/api-examples/pkg/preseries"
)

// mockLister records filters and serves per-call responses.
type mockLister struct {
	detailCalls     []url.Values
	competitorCalls []url.Values
	similarCalls    []url.Values
}

func relatedRecord(companyID, relatedName string) preseries.Company {
	return preseries.Company{Raw: map[string]any{
		"company_id":              companyID,
		"competitor_company_name": relatedName,
	}}
}

func (m *mockLister) ListCompanyData(ctx context.Context, filters url.Values) (*preseries.ListResponse, error) {
	m.detailCalls = append(m.detailCalls, filters)
	batch := strings.Split(filters.Get("company_id__in"), ",")
	out := make([]preseries.Company, 0, len(batch))
	for _, id := range batch {
		out = append(out, preseries.Company{Raw: map[string]any{"company_id": id}})
	}
	return &preseries.ListResponse{Resources: out}, nil
}

func (m *mockLister) ListCompetitors(ctx context.Context, filters url.Values) (*preseries.ListResponse, error) {
	m.competitorCalls = append(m.competitorCalls, filters)
	batch := strings.Split(filters.Get("company_id__in"), ",")
	var out []preseries.Company
	for _, id := range batch {
		// Two competitors per company.
		out = append(out, relatedRecord(id, id+"-rival-1"), relatedRecord(id, id+"-rival-2"))
	}
	return &preseries.ListResponse{Resources: out}, nil
}

func (m *mockLister) ListSimilar(ctx context.Context, filters url.Values) (*preseries.ListResponse, error) {
	m.similarCalls = append(m.similarCalls, filters)
	return &preseries.ListResponse{}, nil
}

func TestCompanyDetails_BatchesAndFlattens(t *testing.T) {
	t.Parallel()

	api := &mockLister{}
	e := NewEnricher(api, 10)

	got, err := e.CompanyDetails(context.Background(), idFixture(23))

	require.NoError(t, err)
	assert.Len(t, got, 23)
	require.Len(t, api.detailCalls, 3)

	first := api.detailCalls[0]
	assert.Equal(t, "true", first.Get("only_last_snapshot"))
	assert.Equal(t, detailsAddOns, first.Get("add_details"))
	assert.Len(t, strings.Split(first.Get("company_id__in"), ","), 10)
	assert.Len(t, strings.Split(api.detailCalls[2].Get("company_id__in"), ","), 3)

	// Flattened order follows the id order.
	got0, _ := got[0].Field("company_id")
	assert.Equal(t, "id00", got0)
	got22, _ := got[22].Field("company_id")
	assert.Equal(t, "id22", got22)
}

func TestCompetitors_GroupsByCompany(t *testing.T) {
	t.Parallel()

	api := &mockLister{}
	e := NewEnricher(api, 10)

	ids := idFixture(12)
	got, err := e.Competitors(context.Background(), ids)

	require.NoError(t, err)
	require.Len(t, api.competitorCalls, 2)
	assert.Equal(t, "100", api.competitorCalls[0].Get("limit"))

	assert.Len(t, got, 12)
	for _, id := range ids {
		require.Len(t, got[id], 2, "company %s", id)
		name, _ := got[id][0].Field("competitor_company_name")
		assert.Equal(t, id+"-rival-1", name)
	}
}

func TestSimilar_EmptyResults(t *testing.T) {
	t.Parallel()

	api := &mockLister{}
	e := NewEnricher(api, 0) // default batch size

	got, err := e.Similar(context.Background(), idFixture(5))

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, api.similarCalls, 1)
}

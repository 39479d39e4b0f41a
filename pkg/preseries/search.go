package preseries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
)

// SearchCompanies queries the company_search endpoint. Definitive 4xx
// responses come back as *APIError; transport failures and server errors
// surface only after the retry budget is spent.
func (c *httpClient) SearchCompanies(ctx context.Context, filters url.Values) (*SearchResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, companySearchPath, filters, nil)
	if err != nil {
		return nil, eris.Wrap(err, "preseries: search companies")
	}

	if resp.status != http.StatusOK {
		return nil, apiError(resp)
	}

	var out SearchResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, eris.Wrap(err, "preseries: unmarshal search response")
	}
	return &out, nil
}

// ListCompanyData retrieves detailed company records matching the filters.
func (c *httpClient) ListCompanyData(ctx context.Context, filters url.Values) (*ListResponse, error) {
	return c.list(ctx, companyDataPath, filters)
}

// ListCompetitors retrieves competitor records for the filtered companies.
func (c *httpClient) ListCompetitors(ctx context.Context, filters url.Values) (*ListResponse, error) {
	return c.list(ctx, companyCompetitorPath, filters)
}

// ListSimilar retrieves similar-company records for the filtered companies.
func (c *httpClient) ListSimilar(ctx context.Context, filters url.Values) (*ListResponse, error) {
	return c.list(ctx, companySimilarPath, filters)
}

// GetPortfolios lists the caller's portfolios.
func (c *httpClient) GetPortfolios(ctx context.Context, filters url.Values) (*ListResponse, error) {
	return c.list(ctx, portfolioPath, filters)
}

// list retrieves a collection endpoint. A body with a meta/objects envelope
// yields Meta plus Resources; a bare single resource yields a one-element
// Resources slice.
func (c *httpClient) list(ctx context.Context, path string, filters url.Values) (*ListResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, filters, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "preseries: list %s", path)
	}

	if resp.status != http.StatusOK {
		return nil, apiError(resp)
	}

	var envelope struct {
		Meta    *Meta     `json:"meta"`
		Objects []Company `json:"objects"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err == nil && envelope.Meta != nil {
		return &ListResponse{Meta: envelope.Meta, Resources: envelope.Objects}, nil
	}

	var single Company
	if err := json.Unmarshal(resp.body, &single); err != nil {
		return nil, eris.Wrapf(err, "preseries: unmarshal %s response", path)
	}
	return &ListResponse{Resources: []Company{single}}, nil
}

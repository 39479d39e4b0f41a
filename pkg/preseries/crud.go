package preseries

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rotisserie/eris"
)

// GetPortfolio retrieves a single portfolio by id.
func (c *httpClient) GetPortfolio(ctx context.Context, id string) (*Resource, error) {
	return c.get(ctx, portfolioPath+"/"+id)
}

// CreatePortfolio creates a portfolio, optionally seeded with company ids.
func (c *httpClient) CreatePortfolio(ctx context.Context, name string, companyIDs []string) (*Resource, error) {
	body := map[string]any{"name": name}
	if len(companyIDs) > 0 {
		body["companies"] = companyIDs
	}
	return c.create(ctx, portfolioPath, body)
}

// UpdatePortfolio applies changes to an existing portfolio.
func (c *httpClient) UpdatePortfolio(ctx context.Context, id string, changes map[string]any) (*Resource, error) {
	return c.update(ctx, portfolioPath+"/"+id, changes)
}

// DeletePortfolio removes a portfolio.
func (c *httpClient) DeletePortfolio(ctx context.Context, id string) error {
	return c.delete(ctx, portfolioPath+"/"+id)
}

// AddPortfolioCompany adds a company to a portfolio.
func (c *httpClient) AddPortfolioCompany(ctx context.Context, portfolioID, companyID string) (*Resource, error) {
	return c.create(ctx, portfolioPath+"/"+portfolioID+"/companies/add/"+companyID, map[string]any{})
}

// RemovePortfolioCompany removes a company from a portfolio.
func (c *httpClient) RemovePortfolioCompany(ctx context.Context, portfolioID, companyID string) error {
	return c.delete(ctx, portfolioPath+"/"+portfolioID+"/companies/delete/"+companyID)
}

// CreateStarred stars a company.
func (c *httpClient) CreateStarred(ctx context.Context, companyID, companyName string) (*Resource, error) {
	return c.create(ctx, starredPath, map[string]any{
		"company_id":   companyID,
		"company_name": companyName,
	})
}

// DeleteStarred removes a starred company.
func (c *httpClient) DeleteStarred(ctx context.Context, id string) error {
	return c.delete(ctx, starredPath+"/"+id)
}

// CreateFollowed follows a company.
func (c *httpClient) CreateFollowed(ctx context.Context, companyID, companyName string) (*Resource, error) {
	return c.create(ctx, followedPath, map[string]any{
		"company_id":   companyID,
		"company_name": companyName,
	})
}

// DeleteFollowed unfollows a company.
func (c *httpClient) DeleteFollowed(ctx context.Context, id string) error {
	return c.delete(ctx, followedPath+"/"+id)
}

func (c *httpClient) get(ctx context.Context, path string) (*Resource, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "preseries: get %s", path)
	}

	if resp.status != http.StatusOK {
		return nil, apiError(resp)
	}

	return decodeResource(resp, path)
}

func (c *httpClient) create(ctx context.Context, path string, body map[string]any) (*Resource, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, eris.Wrapf(err, "preseries: create %s", path)
	}

	switch resp.status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return decodeResource(resp, path)
	default:
		return nil, apiError(resp)
	}
}

func (c *httpClient) update(ctx context.Context, path string, changes map[string]any) (*Resource, error) {
	resp, err := c.do(ctx, http.MethodPut, path, nil, changes)
	if err != nil {
		return nil, eris.Wrapf(err, "preseries: update %s", path)
	}

	switch resp.status {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return decodeResource(resp, path)
	default:
		return nil, apiError(resp)
	}
}

func (c *httpClient) delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return eris.Wrapf(err, "preseries: delete %s", path)
	}

	switch resp.status {
	case http.StatusNoContent, http.StatusOK:
		return nil
	default:
		return apiError(resp)
	}
}

// decodeResource parses a resource body, resolving the assigned id from the
// body or the Location header.
func decodeResource(resp *response, path string) (*Resource, error) {
	location := resp.header.Get("Location")

	body := map[string]any{}
	if len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, &body); err != nil {
			return nil, eris.Wrapf(err, "preseries: unmarshal %s resource", path)
		}
	}

	return &Resource{
		ID:       resourceID(body, location),
		Location: location,
		Body:     body,
	}, nil
}

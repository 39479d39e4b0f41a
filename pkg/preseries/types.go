package preseries

import (
	"encoding/json"
	"fmt"
)

// Meta is the pagination envelope returned by list endpoints.
type Meta struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	TotalCount int    `json:"total_count"`
	Next       string `json:"next,omitempty"`
	Previous   string `json:"previous,omitempty"`
}

// Company is a company record as returned by the PreSeries API. The fields
// the resolver cares about are typed; everything else passes through in Raw
// so exports can reach arbitrary fields without the client enumerating them.
type Company struct {
	ID          string
	Name        string
	Domain      string
	CountryCode string
	Raw         map[string]any
}

// UnmarshalJSON keeps the full payload in Raw while lifting the known fields.
func (c *Company) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	c.Raw = m
	c.ID = stringField(m, "id")
	c.Name = stringField(m, "name")
	c.Domain = stringField(m, "domain")
	c.CountryCode = stringField(m, "country_code")
	return nil
}

// MarshalJSON emits the raw payload when present so round-trips are lossless.
func (c Company) MarshalJSON() ([]byte, error) {
	if c.Raw != nil {
		return json.Marshal(c.Raw)
	}
	m := map[string]any{}
	if c.ID != "" {
		m["id"] = c.ID
	}
	if c.Name != "" {
		m["name"] = c.Name
	}
	if c.Domain != "" {
		m["domain"] = c.Domain
	}
	if c.CountryCode != "" {
		m["country_code"] = c.CountryCode
	}
	return json.Marshal(m)
}

// Field returns the string value of a raw field. It reports false when the
// field is absent, empty, or not a string.
func (c Company) Field(name string) (string, bool) {
	v := stringField(c.Raw, name)
	return v, v != ""
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// SearchResponse is the company_search envelope.
type SearchResponse struct {
	Meta    Meta      `json:"meta"`
	Objects []Company `json:"objects"`
}

// ListResponse is the envelope of the company_data, company_competitor and
// company_similar list endpoints. Endpoints that answer with a single
// resource instead of a meta/objects envelope produce a one-element
// Resources slice and a nil Meta.
type ListResponse struct {
	Meta      *Meta
	Resources []Company
}

// Resource is the outcome of a get/create/update call. ID comes from the
// response body when present, otherwise from the tail of a location-style
// redirect target.
type Resource struct {
	ID       string
	Location string
	Body     map[string]any
}

// APIError is the structured error payload of a definitive 4xx response.
// It is never retried.
type APIError struct {
	StatusCode int
	Payload    map[string]any
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("preseries: status %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("preseries: status %d", e.StatusCode)
}

// Message digs the human-readable message out of the error payload, which
// the API nests as {"status": {"code": ..., "message": ...}}.
func (e *APIError) Message() string {
	status, ok := e.Payload["status"].(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := status["message"].(string)
	return msg
}

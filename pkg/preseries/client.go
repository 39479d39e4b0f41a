// Package preseries provides a client for the PreSeries REST API: company
// search, company enrichment datasets, and the portfolio/starred/followed
// bookkeeping endpoints.
//
// Every request carries the static username/api_key credential pair as
// query parameters. Transport failures and 5xx responses are retried with
// linear backoff; definitive 4xx responses surface their structured error
// payload and are never retried.
package preseries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/preseries/api-examples/internal/resilience"
)

// API endpoint paths, relative to the versioned base URL.
const (
	companySearchPath     = "company_search"
	companyDataPath       = "company_data"
	companyCompetitorPath = "company_competitor"
	companySimilarPath    = "company_similar"
	portfolioPath         = "portfolio"
	starredPath           = "starred"
	followedPath          = "following_company"
)

// Defaults matching the service's documented client behavior.
const (
	DefaultTimeout     = 180 * time.Second
	DefaultMaxRetries  = 5
	DefaultBackoffBase = 3 * time.Second
)

// Config holds connection settings and the required credential pair.
type Config struct {
	Protocol string `mapstructure:"protocol"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Version  string `mapstructure:"version"`

	Username string `mapstructure:"username"`
	APIKey   string `mapstructure:"api_key"`

	TimeoutSecs int `mapstructure:"timeout_secs"`
	MaxRetries  int `mapstructure:"max_retries"`

	// RequestsPerSec caps outgoing request rate when > 0.
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
}

// BaseURL assembles the versioned service root from the config.
func (c Config) BaseURL() string {
	protocol := c.Protocol
	if protocol == "" {
		protocol = "https"
	}
	host := c.Host
	if host == "" {
		host = "preseries.io"
	}
	version := c.Version
	if version == "" {
		version = "zion"
	}
	if c.Port > 0 {
		return fmt.Sprintf("%s://%s:%d/%s", protocol, host, c.Port, version)
	}
	return fmt.Sprintf("%s://%s/%s", protocol, host, version)
}

// Client defines the PreSeries API operations.
type Client interface {
	// SearchCompanies queries company_search with the given filters.
	SearchCompanies(ctx context.Context, filters url.Values) (*SearchResponse, error)

	// ListCompanyData retrieves detailed company records.
	ListCompanyData(ctx context.Context, filters url.Values) (*ListResponse, error)
	// ListCompetitors retrieves competitor records for the filtered companies.
	ListCompetitors(ctx context.Context, filters url.Values) (*ListResponse, error)
	// ListSimilar retrieves similar-company records for the filtered companies.
	ListSimilar(ctx context.Context, filters url.Values) (*ListResponse, error)

	GetPortfolios(ctx context.Context, filters url.Values) (*ListResponse, error)
	GetPortfolio(ctx context.Context, id string) (*Resource, error)
	CreatePortfolio(ctx context.Context, name string, companyIDs []string) (*Resource, error)
	UpdatePortfolio(ctx context.Context, id string, changes map[string]any) (*Resource, error)
	DeletePortfolio(ctx context.Context, id string) error
	AddPortfolioCompany(ctx context.Context, portfolioID, companyID string) (*Resource, error)
	RemovePortfolioCompany(ctx context.Context, portfolioID, companyID string) error

	CreateStarred(ctx context.Context, companyID, companyName string) (*Resource, error)
	DeleteStarred(ctx context.Context, id string) error
	CreateFollowed(ctx context.Context, companyID, companyName string) (*Resource, error)
	DeleteFollowed(ctx context.Context, id string) error
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the assembled base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRetryConfig replaces the default retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

// WithLimiter sets a client-side rate limiter applied before every attempt.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	baseURL  string
	username string
	apiKey   string
	http     *http.Client
	retry    resilience.RetryConfig
	limiter  *rate.Limiter
}

// NewClient creates a PreSeries API client. Missing credentials are a
// configuration error: the process must refuse to start without them.
func NewClient(cfg Config, opts ...Option) (Client, error) {
	if cfg.Username == "" {
		return nil, eris.New("preseries: username is required")
	}
	if cfg.APIKey == "" {
		return nil, eris.New("preseries: api_key is required")
	}

	timeout := DefaultTimeout
	if cfg.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	maxRetries := DefaultMaxRetries
	if cfg.MaxRetries > 0 {
		maxRetries = cfg.MaxRetries
	}

	c := &httpClient{
		baseURL:  cfg.BaseURL(),
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry: resilience.RetryConfig{
			MaxAttempts: maxRetries + 1,
			Backoff:     resilience.LinearBackoff(DefaultBackoffBase),
			OnRetry:     resilience.RetryLogger("preseries", "request"),
		},
	}
	if cfg.RequestsPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// response is the raw outcome of one request after retries settled.
type response struct {
	status int
	body   []byte
	header http.Header
}

// endpointURL builds the full request URL with auth and filters attached.
func (c *httpClient) endpointURL(path string, filters url.Values) string {
	q := url.Values{}
	q.Set("username", c.username)
	q.Set("api_key", c.apiKey)
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return c.baseURL + "/" + path + "?" + q.Encode()
}

// do performs one API call with the retry policy. Transport errors and
// 5xx/unexpected statuses are retried; success codes and definitive 4xx
// responses are returned to the caller for classification.
func (c *httpClient) do(ctx context.Context, method, path string, filters url.Values, body any) (*response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, eris.Wrap(err, "preseries: marshal request body")
		}
	}

	reqURL := c.endpointURL(path, filters)

	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "preseries: rate limiter wait")
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return nil, eris.Wrap(err, "preseries: create request")
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "preseries: %s %s", method, path)
		}

		raw, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resilience.NewTransientError(
				eris.Wrap(readErr, "preseries: read response body"), resp.StatusCode)
		}

		zap.L().Debug("preseries response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)

		if !definitiveStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(
				eris.Errorf("preseries: %s %s: status %d", method, path, resp.StatusCode),
				resp.StatusCode)
		}

		return &response{status: resp.StatusCode, body: raw, header: resp.Header}, nil
	})
}

// definitiveStatus reports whether a status code settles the request.
// Anything else (5xx included) is worth another attempt.
func definitiveStatus(code int) bool {
	switch code {
	case http.StatusOK,
		http.StatusCreated,
		http.StatusAccepted,
		http.StatusNoContent,
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusPaymentRequired,
		http.StatusNotFound,
		http.StatusMethodNotAllowed:
		return true
	default:
		return false
	}
}

// apiError decodes the structured error payload of a 4xx response.
func apiError(resp *response) *APIError {
	payload := map[string]any{}
	_ = json.Unmarshal(resp.body, &payload)
	return &APIError{StatusCode: resp.status, Payload: payload}
}

// resourceID pulls the assigned id from a response body, falling back to
// the tail of a location-style redirect target.
func resourceID(body map[string]any, location string) string {
	if id := stringField(body, "id"); id != "" {
		return id
	}
	if location == "" {
		return ""
	}
	trimmed := strings.TrimRight(location, "/")
	return trimmed[strings.LastIndex(trimmed, "/")+1:]
}

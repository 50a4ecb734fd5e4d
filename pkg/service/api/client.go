package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/faultline/pkg/domain/model"
	"github.com/secmon-lab/faultline/pkg/domain/types"
)

// Error tags for categorization
var (
	ErrTagAccessDenied = goerr.NewTag("access_denied")
	ErrTagNotFound     = goerr.NewTag("not_found")
)

const defaultTimeout = 30 * time.Second

// Client talks to the Faultline REST API. Pagination cursors are opaque:
// the client stores and replays them, never parses them.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (mainly for tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new API client
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchIssuesPage fetches one page of issues for one target
func (c *Client) FetchIssuesPage(ctx context.Context, org types.OrgSlug, project types.ProjectSlug, opts model.PageOptions) (*model.IssuePage, error) {
	endpoint := fmt.Sprintf("%s/api/v1/orgs/%s/projects/%s/issues",
		c.baseURL, url.PathEscape(org.String()), url.PathEscape(project.String()))

	params := url.Values{}
	if opts.Query != "" {
		params.Set("query", opts.Query)
	}
	if opts.Sort != "" {
		params.Set("sort", opts.Sort.String())
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		params.Set("cursor", opts.Cursor)
	}

	var page model.IssuePage
	if err := c.getJSON(ctx, endpoint, params, &page); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch issues page",
			goerr.V("org", org),
			goerr.V("project", project))
	}
	return &page, nil
}

// ListProjects lists the project slugs of an organization
func (c *Client) ListProjects(ctx context.Context, org types.OrgSlug) ([]types.ProjectSlug, error) {
	return c.fetchProjects(ctx, org, "")
}

// SearchProjects lists the project slugs of an organization matching a
// search term
func (c *Client) SearchProjects(ctx context.Context, org types.OrgSlug, query string) ([]types.ProjectSlug, error) {
	return c.fetchProjects(ctx, org, query)
}

func (c *Client) fetchProjects(ctx context.Context, org types.OrgSlug, query string) ([]types.ProjectSlug, error) {
	endpoint := fmt.Sprintf("%s/api/v1/orgs/%s/projects", c.baseURL, url.PathEscape(org.String()))

	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	var resp struct {
		Projects []struct {
			Slug types.ProjectSlug `json:"slug"`
		} `json:"projects"`
	}
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to list projects", goerr.V("org", org))
	}

	slugs := make([]types.ProjectSlug, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		slugs = append(slugs, p.Slug)
	}
	return slugs, nil
}

// getJSON performs an authenticated GET request and decodes the JSON body
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return goerr.New("access denied",
			goerr.V("status", resp.StatusCode),
			goerr.T(ErrTagAccessDenied))
	case http.StatusNotFound:
		return goerr.New("not found",
			goerr.V("status", resp.StatusCode),
			goerr.T(ErrTagNotFound))
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New("unexpected response",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode response body")
	}
	return nil
}

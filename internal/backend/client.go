package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is matched by any 401 StatusError
var ErrUnauthorized = errors.New("not authenticated")

// StatusError is returned when the backend answers with a non-2xx status
type StatusError struct {
	Op         string // static failure text, e.g. "Failed to fetch overall score"
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Op, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client talks to the Leadlift backend over HTTP
type Client struct {
	client     *resty.Client
	cookieName string
}

// Ensure Client implements API
var _ API = (*Client)(nil)

// NewClient creates a new backend client
func NewClient(baseURL, cookieName string, timeout time.Duration) *Client {
	return &Client{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("User-Agent", "Leadlift-Web/1.0").
			SetHeader("Accept", "application/json").
			SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
				// logout answers with a redirect meant for the browser
				return http.ErrUseLastResponse
			})),
		cookieName: cookieName,
	}
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if token != "" {
		req.SetCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}
	return req
}

// SearchBusinesses runs a free-text business search
func (c *Client) SearchBusinesses(ctx context.Context, token, query string) (*models.SearchResponse, error) {
	resp, err := c.request(ctx, token).
		SetQueryParam("query", query).
		Get("/businesses")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var out models.SearchResponse
	if err := decode(resp, "Failed to fetch businesses", &out); err != nil {
		return nil, err
	}
	if out.Businesses == nil {
		out.Businesses = []models.SearchResult{}
	}

	logrus.Debugf("Search %q returned %d businesses", query, len(out.Businesses))
	return &out, nil
}

// GetBusiness fetches the detail view of a business
func (c *Client) GetBusiness(ctx context.Context, token, id string) (*models.Business, error) {
	resp, err := c.request(ctx, token).
		SetPathParam("id", id).
		Get("/businesses/{id}")
	if err != nil {
		return nil, fmt.Errorf("business request failed: %w", err)
	}

	var out models.Business
	if err := decode(resp, "Failed to load business data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSEOScore fetches the overall score of a business
func (c *Client) GetSEOScore(ctx context.Context, token, id string) (*models.SEOScore, error) {
	resp, err := c.request(ctx, token).
		SetPathParam("id", id).
		Get("/businesses/score/{id}")
	if err != nil {
		return nil, fmt.Errorf("score request failed: %w", err)
	}

	var out models.SEOScore
	if err := decode(resp, "Failed to fetch overall score", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSummary fetches the AI analysis of a business
func (c *Client) GetSummary(ctx context.Context, token, id string) (*models.AISummary, error) {
	resp, err := c.request(ctx, token).
		SetPathParam("id", id).
		Get("/businesses/summary/{id}")
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}

	var out models.AISummary
	if err := decode(resp, "Failed to fetch AI analysis", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrends fetches search trends keyed by business name
func (c *Client) GetTrends(ctx context.Context, token, name string) (*models.TrendsData, error) {
	resp, err := c.request(ctx, token).
		SetPathParam("name", name).
		Get("/businesses/trends/{name}")
	if err != nil {
		return nil, fmt.Errorf("trends request failed: %w", err)
	}

	var out models.TrendsData
	if err := decode(resp, "Failed to fetch trends data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWebsiteAudit fetches the website analytics of a business
func (c *Client) GetWebsiteAudit(ctx context.Context, token, id string) (*models.WebsiteAudit, error) {
	resp, err := c.request(ctx, token).
		SetPathParam("id", id).
		Get("/businesses/web-analytics/{id}")
	if err != nil {
		return nil, fmt.Errorf("website audit request failed: %w", err)
	}

	var out models.WebsiteAudit
	if err := decode(resp, "Failed to fetch website audit data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser resolves the identity behind a session token
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	resp, err := c.request(ctx, token).Get("/auth/me")
	if err != nil {
		return nil, fmt.Errorf("current user request failed: %w", err)
	}

	var out models.User
	if err := decode(resp, "Failed to fetch current user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the backend session. The backend answers with a redirect,
// so any status below 400 counts as success.
func (c *Client) Logout(ctx context.Context, token string) error {
	resp, err := c.request(ctx, token).Post("/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}

	if resp.StatusCode() >= 400 {
		return &StatusError{Op: "Failed to log out", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// Ping checks that the backend answers on its root endpoint
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.request(ctx, "").Get("/")
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	if !resp.IsSuccess() {
		return &StatusError{Op: "Backend unavailable", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// decode checks the status and unmarshals the body into out. The backend
// reports some misses as a 200 with a [code, "message"] tuple; those are
// turned into a StatusError as well.
func decode(resp *resty.Response, op string, out interface{}) error {
	if !resp.IsSuccess() {
		return &StatusError{Op: op, StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		var tuple []json.RawMessage
		if err := json.Unmarshal(body, &tuple); err == nil && len(tuple) == 2 {
			var code int
			var msg string
			if json.Unmarshal(tuple[0], &code) == nil && json.Unmarshal(tuple[1], &msg) == nil && code >= 400 {
				return &StatusError{Op: op, StatusCode: code, Body: msg}
			}
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: invalid response: %w", op, err)
	}
	return nil
}

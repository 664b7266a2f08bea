// Package analytics proxies read-only Google Analytics queries on behalf of
// an authenticated user. Responses are relayed verbatim as JSON; every
// operation issues exactly one outbound call and is never retried.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
	"golang.org/x/oauth2"
)

const (
	defaultAdminBaseURL = "https://analyticsadmin.googleapis.com/v1beta"
	defaultDataBaseURL  = "https://analyticsdata.googleapis.com/v1beta"

	defaultTimeout = 15 * time.Second

	maxDetailLength = 512
)

// Service is the provider capability consumed by the HTTP handlers: list
// accounts, list properties, run the dashboard report.
type Service interface {
	ListAccounts(ctx context.Context) (json.RawMessage, error)
	ListProperties(ctx context.Context) (json.RawMessage, error)
	RunReport(ctx context.Context, propertyID string) (json.RawMessage, error)
}

// Factory builds a Service bound to a single request's credential.
type Factory func(cred Credential) Service

// NewFactory returns a Factory applying the same options to every client.
func NewFactory(opts ...Option) Factory {
	return func(cred Credential) Service {
		return NewClient(cred, opts...)
	}
}

// Client calls the Analytics Admin and Data REST APIs with one credential.
type Client struct {
	httpClient   *http.Client
	adminBaseURL string
	dataBaseURL  string
	timeout      time.Duration
}

var _ Service = (*Client)(nil)

type Option func(*Client)

// WithBaseURLs points the client at alternate API hosts, used by tests.
func WithBaseURLs(adminBaseURL, dataBaseURL string) Option {
	return func(c *Client) {
		c.adminBaseURL = adminBaseURL
		c.dataBaseURL = dataBaseURL
	}
}

// WithTimeout bounds each outbound call, replacing the 15s default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a client authorized by cred. The underlying transport
// injects the bearer token; the credential itself is never stored beyond the
// client's lifetime, which matches the request that derived it.
func NewClient(cred Credential, opts ...Option) *Client {
	c := &Client{
		adminBaseURL: defaultAdminBaseURL,
		dataBaseURL:  defaultDataBaseURL,
		timeout:      defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = oauth2.NewClient(context.Background(), cred.tokenSource())
	c.httpClient.Timeout = c.timeout
	return c
}

// ListAccounts relays the Admin API account listing.
func (c *Client) ListAccounts(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.adminBaseURL+"/accounts", "accounts listing")
}

// ListProperties relays the Admin API property listing.
func (c *Client) ListProperties(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, c.adminBaseURL+"/properties", "properties listing")
}

func (c *Client) get(ctx context.Context, url, operation string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", operation, err)
	}
	return c.do(req, operation)
}

func (c *Client) do(req *http.Request, operation string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrExternalService, "%s request failed: %v", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrExternalService, "%s: reading provider response: %v", operation, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errs.Wrapf(errs.ErrExternalService, "%s: provider responded %d: %s", operation, resp.StatusCode, upstreamDetail(body))
	}
	return json.RawMessage(body), nil
}

// upstreamDetail extracts the message from a Google API error body, falling
// back to the truncated raw body when it does not parse.
func upstreamDetail(body []byte) string {
	var googleErr struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &googleErr); err == nil && googleErr.Error.Message != "" {
		if googleErr.Error.Status != "" {
			return fmt.Sprintf("%s (%s)", googleErr.Error.Message, googleErr.Error.Status)
		}
		return googleErr.Error.Message
	}

	detail := string(bytes.TrimSpace(body))
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength]
	}
	if detail == "" {
		detail = "no response body"
	}
	return detail
}

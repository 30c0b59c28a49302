// Package msgraph is a thin Microsoft Graph REST client used by the search
// provider adapters. Token acquisition and storage live with the identity
// subsystem; this client only needs an http.Client that attaches credentials.
package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kontorly/worksearch/internal/domain"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultBaseURL is the global-cloud Graph endpoint. National clouds use a
// different host, so it stays configurable.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Config holds the application credentials for app-only Graph access.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// Client issues authenticated requests against the Graph API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a Graph client using the client-credentials flow. The
// returned client refreshes its token transparently.
func NewClient(ctx context.Context, cfg Config) *Client {
	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		httpClient: conf.Client(ctx),
		baseURL:    strings.TrimRight(base, "/"),
	}
}

// NewClientWithHTTP creates a client over a pre-built http.Client. Used by
// tests and by deployments that bring their own token transport.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Get performs a GET against the given Graph path and decodes the JSON
// response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	return c.do(req, out)
}

// Post performs a POST with a JSON body against the given Graph path and
// decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode graph request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamUnavailable, "graph request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamAuth, "graph rejected credentials", graphError(resp))
	case resp.StatusCode >= 400:
		return domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamUnavailable,
			fmt.Sprintf("graph returned status %d", resp.StatusCode), graphError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamUnavailable, "malformed graph response", err)
	}
	return nil
}

// graphError extracts the error payload Graph returns on failures.
func graphError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error.Code != "" {
		return fmt.Errorf("%s: %s", payload.Error.Code, payload.Error.Message)
	}
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

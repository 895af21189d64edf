package imdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://www.imdb.com"
	defaultUserAgent   = "Mozilla/5.0"
	defaultHTTPTimeout = 10 * time.Second
)

// Review is one user review scraped from a title's reviews page.
type Review struct {
	Text         string
	HelpfulVotes int
}

// Client fetches reviews from the IMDb website.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option customizes the IMDb client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default site base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with requests.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		agent = strings.TrimSpace(agent)
		if agent != "" {
			c.userAgent = agent
		}
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient constructs an IMDb review client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// FetchReviews downloads and parses the reviews page for a catalog id.
// Reviews come back in page order with their helpful-vote counts.
func (c *Client) FetchReviews(ctx context.Context, catalogID string) ([]Review, error) {
	catalogID = strings.TrimSpace(catalogID)
	if catalogID == "" {
		return nil, errors.New("imdb reviews: catalog id required")
	}
	endpoint, err := url.JoinPath(c.baseURL, "title", catalogID, "reviews")
	if err != nil {
		return nil, fmt.Errorf("imdb reviews: build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("imdb reviews: request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imdb reviews: request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imdb reviews: http %d for %s", resp.StatusCode, catalogID)
	}
	reviews, err := parseReviews(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imdb reviews: parse page: %w", err)
	}
	return reviews, nil
}

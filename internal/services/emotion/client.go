package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "http://127.0.0.1:8807"
	defaultHTTPTimeout = 30 * time.Second

	// LikeThreshold is the polarity at or above which a review reads as
	// positive.
	LikeThreshold = 0.1
)

// Score is one emotion label with its confidence.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client calls the text-analytics HTTP service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the analytics client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default service base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
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

// NewClient constructs a text-analytics client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Emotions scores one text for emotion labels.
func (c *Client) Emotions(ctx context.Context, text string) ([]Score, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("emotion analyze: text required")
	}
	var response struct {
		Emotions []Score `json:"emotions"`
	}
	if err := c.post(ctx, "/emotions", text, &response); err != nil {
		return nil, err
	}
	return response.Emotions, nil
}

// Polarity scores one text for sentiment polarity in [-1, 1].
func (c *Client) Polarity(ctx context.Context, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, errors.New("emotion polarity: text required")
	}
	var response struct {
		Polarity float64 `json:"polarity"`
	}
	if err := c.post(ctx, "/sentiment", text, &response); err != nil {
		return 0, err
	}
	return response.Polarity, nil
}

// TopEmotions scores each text, tallies label confidences case-folded,
// and returns up to limit labels ordered by total score. Ties keep the
// label that was seen first. Blank texts are skipped without a call.
func (c *Client) TopEmotions(ctx context.Context, texts []string, limit int) ([]string, error) {
	totals := make(map[string]float64)
	var order []string
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		scores, err := c.Emotions(ctx, text)
		if err != nil {
			return nil, err
		}
		for _, score := range scores {
			label := strings.ToLower(strings.TrimSpace(score.Label))
			if label == "" {
				continue
			}
			if _, seen := totals[label]; !seen {
				order = append(order, label)
			}
			totals[label] += score.Score
		}
	}
	return topLabels(totals, order, limit), nil
}

// topLabels sorts labels by descending total, breaking ties by first
// appearance.
func topLabels(totals map[string]float64, order []string, limit int) []string {
	rank := make(map[string]int, len(order))
	for i, label := range order {
		rank[label] = i
	}
	labels := append([]string(nil), order...)
	sort.SliceStable(labels, func(i, j int) bool {
		if totals[labels[i]] != totals[labels[j]] {
			return totals[labels[i]] > totals[labels[j]]
		}
		return rank[labels[i]] < rank[labels[j]]
	})
	if limit > 0 && len(labels) > limit {
		labels = labels[:limit]
	}
	return labels
}

func (c *Client) post(ctx context.Context, path, text string, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("emotion service: build url: %w", err)
	}
	encoded, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("emotion service: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("emotion service: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("emotion service: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("emotion service: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("emotion service: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("emotion service: decode response: %w", err)
	}
	return nil
}

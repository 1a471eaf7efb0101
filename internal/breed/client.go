// Package breed looks cat breeds up in TheCatAPI catalogue.
package breed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://api.thecatapi.com/v1"

// Client queries the breed search endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Client. apiKey may be empty; the search endpoint works
// without one at a lower rate limit.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type searchResult struct {
	Name string `json:"name"`
}

// IsValidBreed reports whether the catalogue lists a breed named exactly
// breed. Any non-200 answer is a rejection. Transport and decoding failures
// are returned as errors so the caller can fail closed without blaming the
// client's input.
func (c *Client) IsValidBreed(ctx context.Context, breed string) (bool, error) {
	endpoint := c.baseURL + "/breeds/search?q=" + url.QueryEscape(breed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build breed lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("breed lookup failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("breed lookup rejected",
			zap.String("breed", breed),
			zap.Int("status", resp.StatusCode),
		)
		return false, nil
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return false, fmt.Errorf("failed to decode breed lookup response: %w", err)
	}
	for _, r := range results {
		if r.Name == breed {
			return true, nil
		}
	}
	return false, nil
}

package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL    = "https://api.tavily.com"
	defaultMaxResults = 10
	contentType       = "application/json"
)

// Config defines web search client settings.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	MaxResults int
}

// Client queries the Tavily search API for job postings.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxResults int
	logger     *zap.Logger
}

// Result is one search hit in source order.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// New instantiates a search client. The API key is required; "no client" is
// how the pipeline represents an unconfigured search backend.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("websearch: api key is required")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxResults: maxResults,
		logger:     logger,
	}, nil
}

// Search runs the query, optionally biased toward a location, and returns
// hits in source order.
func (c *Client) Search(ctx context.Context, query, location string) ([]Result, error) {
	if c == nil {
		return nil, errors.New("websearch: client is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("websearch: query is required")
	}
	if location = strings.TrimSpace(location); location != "" {
		query = query + " in " + location
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("websearch: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("websearch: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("websearch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("websearch: bad status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("websearch: decode response: %w", err)
	}

	c.logger.Debug("web search completed",
		zap.String("query", query),
		zap.Int("results", len(decoded.Results)),
	)

	return decoded.Results, nil
}

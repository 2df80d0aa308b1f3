package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tuannho0802/Movies-Musics-Suggestion-App/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Discover/1.0"
)

// RemoteConfig is the payload of the backend /config endpoint
type RemoteConfig struct {
	TMDBAPIKey string `json:"TMDB_API_KEY"`
}

// Suggestions groups autocomplete results by media kind
type Suggestions struct {
	Movies []domain.MediaItem
	Music  []domain.MediaItem
}

// Client talks to the discovery backend (/config, /search, /trending,
// /autocomplete, /preview)
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new discovery backend client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET against the backend and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("backend request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("backend request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// FetchConfig retrieves remote configuration (third-party API keys)
func (c *Client) FetchConfig(ctx context.Context) (*RemoteConfig, error) {
	body, err := c.doRequest(ctx, "/config", nil)
	if err != nil {
		return nil, err
	}

	var cfg RemoteConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Search returns one page of search results for a query.
// kind filters results server-side; pass "all" for both media types.
func (c *Client) Search(ctx context.Context, query, kind string, page int) ([]domain.MediaItem, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", kind)
	q.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/search", q)
	if err != nil {
		return nil, err
	}
	return parseResults(body)
}

// Trending returns one page of trending items
func (c *Client) Trending(ctx context.Context, kind string, limit, page int) ([]domain.MediaItem, error) {
	q := url.Values{}
	q.Set("type", kind)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, "/trending", q)
	if err != nil {
		return nil, err
	}
	return parseResults(body)
}

// Autocomplete returns suggestion groups for a partial query
func (c *Client) Autocomplete(ctx context.Context, query string) (*Suggestions, error) {
	q := url.Values{}
	q.Set("q", query)

	body, err := c.doRequest(ctx, "/autocomplete", q)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Movies []resultItem `json:"movies"`
		Music  []resultItem `json:"music"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	return &Suggestions{
		Movies: mapItems(resp.Movies),
		Music:  mapItems(resp.Music),
	}, nil
}

// Preview resolves an audio preview URL for a track.
// Returns domain.ErrNoPreview when the backend has none.
func (c *Client) Preview(ctx context.Context, title, artist string) (string, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("artist", artist)

	body, err := c.doRequest(ctx, "/preview", q)
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse preview response: %w", err)
	}
	if resp.URL == "" {
		return "", domain.ErrNoPreview
	}
	return resp.URL, nil
}

// parseResults parses a {results: [...]} payload into domain items
func parseResults(body []byte) ([]domain.MediaItem, error) {
	var resp struct {
		Results []resultItem `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return mapItems(resp.Results), nil
}

package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	tmdbSearchURL = "https://api.themoviedb.org/3/search/movie"
	tmdbImageBase = "https://image.tmdb.org/t/p/"
	tmdbImageSize = "w500"
)

// TMDbClient looks up movie posters via the TMDB search API.
// Requests require an API key supplied by remote configuration.
type TMDbClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDbClient creates a rate-limited TMDB client
func NewTMDbClient(apiKey string, rps float64, burst int) *TMDbClient {
	return &TMDbClient{
		apiKey:  apiKey,
		baseURL: tmdbSearchURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// HasKey reports whether a usable API key is configured
func (c *TMDbClient) HasKey() bool {
	return c.apiKey != ""
}

type tmdbSearchResponse struct {
	Results []struct {
		Title      string `json:"title"`
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// PosterURL searches TMDB by title and returns a full-size poster URL
// for the first hit. Returns an empty string when nothing matched.
func (c *TMDbClient) PosterURL(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("TMDb API returned status %d", resp.StatusCode)
	}

	var search tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(search.Results) == 0 || search.Results[0].PosterPath == "" {
		return "", nil
	}

	return tmdbImageBase + tmdbImageSize + search.Results[0].PosterPath, nil
}

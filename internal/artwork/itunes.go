package artwork

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const itunesSearchURL = "https://itunes.apple.com/search"

// ITunesClient looks up song artwork via the iTunes catalog search API.
// The API needs no key.
type ITunesClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewITunesClient creates a rate-limited iTunes client
func NewITunesClient(rps float64, burst int) *ITunesClient {
	return &ITunesClient{
		baseURL: itunesSearchURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type itunesSearchResponse struct {
	Results []struct {
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

// ArtworkURL searches the catalog by title and returns the artwork URL of
// the first hit, upgraded from the 100x100 thumbnail to the 600x600
// variant. Returns an empty string when nothing matched.
func (c *ITunesClient) ArtworkURL(ctx context.Context, title string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("term", title)
	params.Set("entity", "song")
	params.Set("limit", "1")

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
		return "", fmt.Errorf("iTunes API returned status %d", resp.StatusCode)
	}

	var search itunesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(search.Results) == 0 || search.Results[0].ArtworkURL100 == "" {
		return "", nil
	}

	// High-resolution conversion
	return strings.Replace(search.Results[0].ArtworkURL100, "100x100bb", "600x600bb", 1), nil
}

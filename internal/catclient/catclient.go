// Package catclient proxies the third-party cat fact and cat image
// services. Any failure, network, status, or decode, degrades to a
// hardcoded fallback value; the front end always gets something to show.
package catclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Fallback values returned whenever the upstream services misbehave.
const (
	FallbackFact     = "Cats have been domesticated for over 4,000 years!"
	FallbackImageURL = "https://placekitten.com/400/300"
)

const (
	defaultFactURL  = "https://catfact.ninja/fact"
	defaultImageURL = "https://api.thecatapi.com/v1/images/search"
)

// Client fetches cat facts and images. The zero value is not usable; use New.
type Client struct {
	httpClient *http.Client
	factURL    string
	imageURL   string
}

// Option overrides client defaults, mainly for tests.
type Option func(*Client)

// WithBaseURLs points the client at alternative endpoints.
func WithBaseURLs(factURL, imageURL string) Option {
	return func(c *Client) {
		c.factURL = factURL
		c.imageURL = imageURL
	}
}

// New creates a client with a bounded request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		factURL:    defaultFactURL,
		imageURL:   defaultImageURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fact returns a cat fact, or FallbackFact when the upstream fails.
func (c *Client) Fact(ctx context.Context) string {
	var payload struct {
		Fact string `json:"fact"`
	}
	if err := c.getJSON(ctx, c.factURL, &payload); err != nil || payload.Fact == "" {
		return FallbackFact
	}
	return payload.Fact
}

// ImageURL returns a cat image URL, or FallbackImageURL when the upstream
// fails.
func (c *Client) ImageURL(ctx context.Context) string {
	var payload []struct {
		URL string `json:"url"`
	}
	if err := c.getJSON(ctx, c.imageURL, &payload); err != nil || len(payload) == 0 || payload[0].URL == "" {
		return FallbackImageURL
	}
	return payload[0].URL
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %q: %w", url, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %q: unexpected status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %q response: %w", url, err)
	}
	return nil
}

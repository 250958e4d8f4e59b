package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Object discriminator values used by the catalog payloads.
const (
	ObjectCard = "card"
	ObjectList = "list"
)

// ImageURIs holds the artwork variants of a printing. Only the normal
// resolution is consumed here.
type ImageURIs struct {
	Normal string `json:"normal"`
}

// CardFace describes one face of a multi-faced printing.
type CardFace struct {
	Name      string     `json:"name"`
	ImageURIs *ImageURIs `json:"image_uris"`
}

// Card is a single catalog printing.
type Card struct {
	Object          string     `json:"object"`
	Name            string     `json:"name"`
	SetCode         string     `json:"set"`
	SetName         string     `json:"set_name"`
	CollectorNumber string     `json:"collector_number"`
	ReleasedAt      string     `json:"released_at"`
	ScryfallURI     string     `json:"scryfall_uri"`
	CardmarketID    int64      `json:"cardmarket_id"`
	ImageURIs       *ImageURIs `json:"image_uris"`
	CardFaces       []CardFace `json:"card_faces"`
}

// ImageURL returns the normal-resolution artwork for a printing: the
// top-level image when present, otherwise the first face's image for
// double-faced cards. Blank when neither exists.
func (c Card) ImageURL() string {
	if c.ImageURIs != nil {
		if uri := strings.TrimSpace(c.ImageURIs.Normal); uri != "" {
			return uri
		}
	}
	if len(c.CardFaces) > 0 && c.CardFaces[0].ImageURIs != nil {
		return strings.TrimSpace(c.CardFaces[0].ImageURIs.Normal)
	}
	return ""
}

// List is the paginated search payload.
type List struct {
	Object     string `json:"object"`
	TotalCards int    `json:"total_cards"`
	Data       []Card `json:"data"`
}

// Searcher defines the catalog operations the resolver needs.
type Searcher interface {
	CardBySetNumber(ctx context.Context, setCode, collectorNumber string) (*Card, error)
	SearchPrints(ctx context.Context, query string) (*List, error)
}

// Client provides access to the Scryfall API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout replaces the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a Scryfall client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("scryfall base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CardBySetNumber fetches a single printing by set code and collector
// number. Both are case-insensitive by catalog convention; callers pass
// them pre-normalized.
func (c *Client) CardBySetNumber(ctx context.Context, setCode, collectorNumber string) (*Card, error) {
	setCode = strings.TrimSpace(setCode)
	collectorNumber = strings.TrimSpace(collectorNumber)
	if setCode == "" || collectorNumber == "" {
		return nil, errors.New("set code and collector number must not be empty")
	}
	endpoint := fmt.Sprintf("%s/cards/%s/%s", c.baseURL, url.PathEscape(setCode), url.PathEscape(collectorNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall card lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Card
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode card response: %w", err)
	}
	return &payload, nil
}

// SearchPrints performs a full-text search requesting de-duplicated
// printings.
func (c *Client) SearchPrints(ctx context.Context, query string) (*List, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/cards/search")
	if err != nil {
		return nil, fmt.Errorf("parse scryfall url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("unique", "prints")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scryfall search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload List
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &payload, nil
}

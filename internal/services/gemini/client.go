package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cardscan/internal/services"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-flash-lite-latest"
	defaultHTTPTimeout = 20 * time.Second

	jpegMIMEType = "image/jpeg"
)

// Client wraps the generative-language generateContent API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithModel overrides the default model identifier.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
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

// NewClient constructs a generative-language API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Recognize sends the card photo plus the fixed instruction prompt and
// returns the raw text of the first candidate. A single attempt is made;
// retry policy, if any, belongs to the caller.
func (c *Client) Recognize(ctx context.Context, imageBytes []byte) (string, error) {
	if len(imageBytes) == 0 {
		return "", services.Wrap(services.ErrEmptyResponse, "gemini", "recognize", "image is empty", nil)
	}
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "gemini", "recognize", "api key required", nil)
	}

	request := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: cardPrompt},
				{InlineData: &inlineData{
					MIMEType: jpegMIMEType,
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "gemini", "recognize", "encode request", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "gemini", "recognize", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "gemini", "recognize", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransport, "gemini", "recognize", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return "", services.Wrap(services.ErrTransport, "gemini", "recognize", detail, nil)
	}

	var payload generateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", services.Wrap(services.ErrEmptyResponse, "gemini", "recognize", "decode response", err)
	}

	text, err := firstCandidateText(payload)
	if err != nil {
		return "", services.Wrap(services.ErrEmptyResponse, "gemini", "recognize", "", err)
	}
	return text, nil
}

func firstCandidateText(payload generateResponse) (string, error) {
	if len(payload.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	parts := payload.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", errors.New("first candidate has no parts")
	}
	text := strings.TrimSpace(parts[0].Text)
	if text == "" {
		return "", errors.New("first part has no text")
	}
	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

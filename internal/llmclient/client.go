// Package llmclient is an HTTP client for the optional language-model
// sidecar used for tagging and outreach reply drafting.
package llmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// ErrUnavailable indicates the language-model service is unreachable or
// returned an unusable response. Tagging callers fail closed on it.
var ErrUnavailable = errors.New("llm service unavailable")

// ErrGenerationUnavailable indicates reply drafting specifically failed.
// Unlike tagging there is no fallback text; callers surface this to the
// operator instead of inventing a reply.
var ErrGenerationUnavailable = errors.New("reply generation unavailable")

// Reply drafts aim for 110 to 140 words and must never exceed 150.
const (
	MinReplyWords = 110
	MaxReplyWords = 150
)

// Client talks to the sidecar. All calls share one bounded http.Client and
// an optional rate limiter so batch runs cannot flood the service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClassifyRequest is the body for POST /classify.
type ClassifyRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ClassifyResponse is the response from /classify. Tag is validated against
// the taxonomy by the caller, never trusted as-is.
type ClassifyResponse struct {
	Tag              string  `json:"tag"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	ModelVersion     string  `json:"model_version"`
}

// GenerateReplyRequest is the body for POST /generate-reply.
type GenerateReplyRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"lead_tag"`
}

// GenerateReplyResponse is the response from /generate-reply.
type GenerateReplyResponse struct {
	ReplyText    string `json:"reply_text"`
	WordCount    int    `json:"word_count"`
	ModelVersion string `json:"model_version"`
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing calls at rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the default bounded http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the sidecar at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Classify asks the sidecar for a taxonomy tag.
func (c *Client) Classify(ctx context.Context, title, body string) (*ClassifyResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req := &ClassifyRequest{Title: title, Body: body}
	var result ClassifyResponse
	if err := doJSON(ctx, c.httpClient, c.baseURL, "/classify", req, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &result, nil
}

// GenerateReply asks the sidecar to draft a plain-text outreach reply for a
// classified lead.
func (c *Client) GenerateReply(ctx context.Context, title, body, tag string) (*GenerateReplyResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}
	req := &GenerateReplyRequest{Title: title, Body: body, Tag: tag}
	var result GenerateReplyResponse
	if err := doJSON(ctx, c.httpClient, c.baseURL, "/generate-reply", req, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
	}
	if result.ReplyText == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrGenerationUnavailable)
	}
	return &result, nil
}

// Health checks the sidecar and returns its advertised model version.
func (c *Client) Health(ctx context.Context) (string, error) {
	reachable, _, modelVersion, err := doHealth(ctx, c.httpClient, c.baseURL)
	if err != nil {
		if !reachable {
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return "", err
	}
	return modelVersion, nil
}

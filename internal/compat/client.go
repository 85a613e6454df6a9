package compat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	applog "github.com/cupidlink/cupid-api/internal/platform/logging"
)

const (
	defaultBaseURL = "https://compat.cupidlink.app"
	userAgent      = "cupid-api"
)

// Client implements Provider against the compatibility scoring HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithToken sets the Bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new compatibility provider client. A nil httpClient
// gets a timeout-bounded default.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type scoreRequest struct {
	ViewerID string `json:"viewer_id"`
	TargetID string `json:"target_id"`
}

type scoreResponse struct {
	Score   float64    `json:"score"`
	Details RawDetails `json:"details"`
}

// Score requests a compatibility evaluation for a profile pair.
func (c *Client) Score(ctx context.Context, viewerID, targetID string) (float64, RawDetails, error) {
	body, err := json.Marshal(scoreRequest{ViewerID: viewerID, TargetID: targetID})
	if err != nil {
		return 0, RawDetails{}, err
	}

	url := c.baseURL + "/v1/compatibility"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, RawDetails{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, RawDetails{}, &UpstreamError{Kind: UpstreamErrorKindUpstream, cause: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, RawDetails{}, upstreamErrorFromResponse(ctx, resp, viewerID, targetID)
	}

	var sr scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, RawDetails{}, &UpstreamError{
			Kind:   UpstreamErrorKindUpstream,
			Status: resp.StatusCode,
			cause:  fmt.Errorf("decoding score response: %w", err),
		}
	}
	return sr.Score, sr.Details, nil
}

func upstreamErrorFromResponse(ctx context.Context, resp *http.Response, viewerID, targetID string) error {
	applog.LogWarn(ctx, "compatibility provider returned error status",
		zap.Int("status", resp.StatusCode),
		zap.String("viewer_id", viewerID),
		zap.String("target_id", targetID),
	)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &UpstreamError{Kind: UpstreamErrorKindNotFound, Status: resp.StatusCode, cause: ErrNotFound}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &UpstreamError{
			Kind:       UpstreamErrorKindRateLimited,
			Status:     resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
			cause:      ErrRateLimited,
		}
	default:
		return &UpstreamError{Kind: UpstreamErrorKindUpstream, Status: resp.StatusCode, cause: ErrUpstream}
	}
}

// Compile-time interface check
var _ Provider = (*Client)(nil)

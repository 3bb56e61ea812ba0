// Package readwise implements the ReaderClient port against the Readwise
// Reader HTTP API.
package readwise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
	"github.com/custodia-labs/reader-bridge/internal/core/ports/driven"
)

// DefaultBaseURL is the production Reader API root.
const DefaultBaseURL = "https://readwise.io/api/v3"

const maxErrorBody = 4096

// Ensure Client implements ReaderClient
var _ driven.ReaderClient = (*Client)(nil)

// Client talks to the Reader API. A 429 response is retried after the
// server-supplied Retry-After delay with no attempt cap; cancelling the
// context is the only way to bound a persistently rate-limited request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger

	// wait is replaced in tests to avoid real sleeps
	wait func(ctx context.Context, d time.Duration) error
}

// Config holds client configuration. Token is required.
type Config struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a Reader API client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      cfg.Token,
		logger:     logger,
		wait:       waitContext,
	}
}

// List fetches a single page of documents for the query.
func (c *Client) List(ctx context.Context, query domain.ListQuery) (*domain.ListPage, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("location", string(query.Location))
	if query.Category != "" {
		params.Set("category", string(query.Category))
	}
	if query.UpdatedAfter != "" {
		params.Set("updatedAfter", query.UpdatedAfter)
	}
	params.Set("withHtmlContent", strconv.FormatBool(query.WithHTMLContent))
	if query.PageCursor != "" {
		params.Set("pageCursor", query.PageCursor)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/list?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page domain.ListPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decode list response: %v", domain.ErrInvalidInput, err)
	}
	return &page, nil
}

// Save stores a URL in Reader. existed reports whether the document was
// already present: the API answers 200 for a known URL and 201 for a new
// one, and that status pair is the only idempotency signal it offers.
func (c *Client) Save(ctx context.Context, req domain.SaveRequest) (bool, *domain.SaveResult, error) {
	if err := req.Validate(); err != nil {
		return false, nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return false, nil, fmt.Errorf("encode save request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/save", body)
	if err != nil {
		return false, nil, err
	}
	defer resp.Body.Close()

	var result domain.SaveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, nil, fmt.Errorf("%w: decode save response: %v", domain.ErrInvalidInput, err)
	}
	return resp.StatusCode == http.StatusOK, &result, nil
}

// doRequest performs an authenticated request, re-issuing it after a 429
// until the server stops rate limiting or the context is cancelled.
// body is a byte slice rather than a reader so each attempt replays the
// full payload.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Token "+c.token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := retryAfter(resp.Header)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.logger.Warn("rate limited by reader API",
				"method", method,
				"retry_after_seconds", delay.Seconds(),
			)
			if err := c.wait(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()
			return nil, &domain.RemoteError{Status: resp.StatusCode, Body: string(b)}
		}
		return resp, nil
	}
}

// retryAfter reads the Retry-After header as integer seconds, falling
// back to one second when the header is missing or malformed.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs < 0 {
		return time.Second
	}
	return time.Duration(secs) * time.Second
}

func waitContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const clickupBaseURL = "https://api.clickup.com/api/v2"

// defaultRetryAfter is the pause applied to a 429 response that carries no
// Retry-After header.
const defaultRetryAfter = 5 * time.Second

// defaultMaxRetries caps how many times a rate-limited request is retried
// before giving up with a RateLimitError.
const defaultMaxRetries = 3

// errRateLimited marks a 429 response inside the retry loop.
var errRateLimited = errors.New("clickup rate limited")

// APIError is a non-2xx ClickUp response (429 excluded, which is retried).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clickup api error (%d): %s", e.Status, e.Message)
}

// RateLimitError reports that the bounded 429 retry budget was exhausted.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("clickup rate limit exceeded after %d attempts", e.Attempts)
}

// Client is the single chokepoint for ClickUp API calls. Every request goes
// through Call, which is what keeps the rate-limit policy uniform.
type Client struct {
	BaseURL    string
	Token      string
	HTTP       *http.Client
	MaxRetries uint64
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL:    clickupBaseURL,
		Token:      token,
		HTTP:       &http.Client{Timeout: 20 * time.Second},
		MaxRetries: defaultMaxRetries,
	}
}

// retryAfterBackOff replays the delay demanded by the last 429 response.
type retryAfterBackOff struct {
	next time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration { return b.next }
func (b *retryAfterBackOff) Reset()                     {}

// Call issues one authenticated request and returns the raw response body.
// The body is JSON-encoded on POST/PUT/PATCH. A 429 response is retried with
// the server's Retry-After delay up to MaxRetries times; other non-2xx
// statuses become an APIError.
func (c *Client) Call(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}

	bo := &retryAfterBackOff{next: defaultRetryAfter}
	var out []byte
	op := func() error {
		data, retryAfter, err := c.do(ctx, method, path, payload)
		if err != nil {
			if errors.Is(err, errRateLimited) {
				bo.next = retryAfter
				slog.Warn("clickup rate limited, backing off",
					"method", method, "path", path, "retry_after", retryAfter)
				return err
			}
			return backoff.Permanent(err)
		}
		out = data
		return nil
	}
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.MaxRetries), ctx))
	if err != nil {
		if errors.Is(err, errRateLimited) {
			return nil, &RateLimitError{Attempts: int(c.MaxRetries) + 1}
		}
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, time.Duration, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", c.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		slog.Error("clickup request failed", "method", method, "path", path, "err", err)
		return nil, 0, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	if res.StatusCode == http.StatusTooManyRequests {
		return nil, retryAfterDelay(res.Header.Get("Retry-After")), errRateLimited
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, 0, &APIError{Status: res.StatusCode, Message: string(data)}
	}
	return data, 0, nil
}

// retryAfterDelay parses a Retry-After header value in seconds, falling back
// to the default when the header is absent or malformed.
func retryAfterDelay(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// FriendlyError remaps well-known ClickUp error markers to friendlier
// messages while preserving the underlying detail text.
func FriendlyError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "NOT_FOUND"):
		return fmt.Errorf("resource not found: %s", msg)
	case strings.Contains(msg, "MISSING_PARAMETER"):
		return fmt.Errorf("missing parameter: %s", msg)
	case strings.Contains(msg, "UNAUTHORIZED"):
		return errors.New("unauthorized: please check your ClickUp API token")
	}
	return err
}

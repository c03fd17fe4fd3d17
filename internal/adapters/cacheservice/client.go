package cacheservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"indexdeck/internal/logging"
	"indexdeck/internal/ports"
)

// ClearPath is the cache-clear endpoint relative to the server URL
const ClearPath = "/api/settings/cache/clear"

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 1 << 20

// HTTPDoer describes the HTTP client used by the cache service
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.CacheService over HTTP
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
	logger  *slog.Logger
}

// Ensure Client implements CacheService
var _ ports.CacheService = (*Client)(nil)

// NewClient creates a cache service client for the server at baseURL.
// A nil client gets an http.Client with the given timeout.
func NewClient(baseURL, token string, client HTTPDoer, timeout time.Duration, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		client:  client,
		logger:  logging.Default(logger).With("component", "cacheservice"),
	}
}

type clearResponse struct {
	Deleted json.RawMessage `json:"deleted"`
}

// Clear posts a clear request and returns the number of deleted entries.
// Any non-2xx status, transport error or malformed body is an error.
func (c *Client) Clear(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ClearPath, nil)
	if err != nil {
		return 0, fmt.Errorf("build cache clear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("read cache clear response: %w", err)
	}
	c.logger.Debug("cache clear response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("cache clear returned %d: %s", resp.StatusCode, snippet(body))
	}

	return parseDeleted(body)
}

// parseDeleted reads the "deleted" count from a clear response body.
// A body without the field counts as zero deletions.
func parseDeleted(body []byte) (int, error) {
	var payload clearResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("decode cache clear response: %w", err)
	}
	raw := string(payload.Deleted)
	if raw == "" || raw == "null" {
		return 0, nil
	}
	if raw[0] == '"' || raw[0] == '{' || raw[0] == '[' || raw == "true" || raw == "false" {
		return 0, fmt.Errorf("decode cache clear response: deleted is not a number: %s", snippet(payload.Deleted))
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Whole numbers may still arrive in float form, e.g. 12.0 or 1e3
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || f < 0 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("invalid deleted count %s", raw)
		}
		n = int64(f)
	}
	if n < 0 || n > math.MaxInt {
		return 0, fmt.Errorf("invalid deleted count %s", raw)
	}
	return int(n), nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

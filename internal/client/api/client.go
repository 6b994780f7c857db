// Package api is the REST client for the conference backends. It fetches
// JSON payloads and reports transport and decode failures separately so
// callers can abort a sync cycle without touching the local cache.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/logging"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	retries uint64
	backoff time.Duration
	log     logging.Logger
}

type Option func(*Client)

// WithRetries enables constant-backoff retries for transport errors.
// The default is zero retries, matching the original single-attempt behavior.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = uint64(n)
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func NewClient(baseURL string, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		backoff: 2 * time.Second,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchJSON issues a GET against the endpoint and returns the decoded JSON
// value (object or array) unmodified. No entity-shape validation happens
// here; that is the mapper's job.
//
// Transport failures (including non-2xx statuses) wrap common.ErrTransport
// and are retried when retries are configured. Malformed bodies wrap
// common.ErrDecode and are never retried.
func (c *Client) FetchJSON(ctx context.Context, ep Endpoint) (any, error) {
	u := c.baseURL + ep.Path
	if len(ep.Query) > 0 {
		u += "?" + ep.Query.Encode()
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrDecode, ep.Path, err)
	}
	return v, nil
}

// FetchBytes issues a GET against an absolute URL and returns the raw body.
// Used for guest photos, which are plain image resources.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var body []byte

	b := retry.WithMaxRetries(c.retries, retry.NewConstant(c.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrTransport, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", common.ErrTransport, err))
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return retry.RetryableError(fmt.Errorf("%w: %s returned %d", common.ErrTransport, u, resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: reading body: %v", common.ErrTransport, err))
		}
		return nil
	})
	if err != nil {
		c.log.Warn(ctx, "fetch failed", "url", u, "error", err)
		return nil, err
	}
	return body, nil
}

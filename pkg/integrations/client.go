package integrations

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/pubkit/pkg/buildinfo"
	"github.com/matzehuels/pubkit/pkg/httputil"
	"github.com/matzehuels/pubkit/pkg/observability"
)

// Client provides shared HTTP functionality for repository and index clients.
// It handles caching, authorization, status classification and common headers.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	headers map[string]string
	auth    Authorizer
}

// NewClient creates a Client with the given cache and default headers.
// Either may be nil.
func NewClient(cache *httputil.Cache, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		cache:   cache,
		headers: headers,
	}
}

// WithAuth returns a copy of c that authorizes every request with a.
func (c *Client) WithAuth(a Authorizer) *Client {
	cp := *c
	cp.auth = a
	return &cp
}

// WithHTTPClient returns a copy of c that sends requests through hc.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.http = hc
	return &cp
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh && c.cache != nil {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

// GetBytes performs an HTTP GET and returns the response body.
// Errors are classified as described on [Client.Do].
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: read body: %v", ErrNetwork, err))
	}
	return data, nil
}

// Put uploads body to url with HTTP PUT.
func (c *Client) Put(ctx context.Context, url string, body []byte, contentType string) error {
	resp, err := c.Do(ctx, http.MethodPut, url, body, contentType)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Do sends one request and classifies the outcome:
//   - network errors, 408, 425, 429 and 5xx are [httputil.RetryableError] wrapping [ErrNetwork]
//   - 404 is [ErrNotFound]
//   - 409 is [ErrConflict]
//   - 401 and 403 are [ErrUnauthorized]
//   - any other non-2xx is [ErrRejected]
//
// On success the caller owns the response body.
func (c *Client) Do(ctx context.Context, method, url string, body []byte, contentType string) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.auth != nil {
		c.auth.Authorize(req)
	}

	host, path := HostPath(url)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusRequestTimeout, code == http.StatusTooEarly,
		code == http.StatusTooManyRequests, code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, code)
	}
}

package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/matzehuels/pubkit/pkg/httputil"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrConflict is returned for 409 responses: the repository already holds different content.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected is returned for any other 4xx response.
	ErrRejected = errors.New("request rejected")
)

// Authorizer applies credentials to an outgoing request.
type Authorizer interface {
	Authorize(req *http.Request)
}

// NewHTTPClient creates a pooled HTTP client with a standard timeout for repository requests.
func NewHTTPClient() *http.Client {
	c := cleanhttp.DefaultPooledClient()
	c.Timeout = httpTimeout
	return c
}

// NewCache creates a file-based cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// NewCacheWithNamespace creates a default-directory cache scoped to namespace.
func NewCacheWithNamespace(namespace string, ttl time.Duration) (*httputil.Cache, error) {
	c, err := NewCache(ttl)
	if err != nil {
		return nil, err
	}
	return c.Namespace(namespace), nil
}

// JoinURL appends a repository-relative path to a base URL.
func JoinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// HostPath splits a URL into host and path for hooks and logging.
// Unparseable URLs yield the raw string as path.
func HostPath(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}

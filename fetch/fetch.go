// Package fetch retrieves ontology document bytes from local files or HTTP
// URLs. It is the narrow transport collaborator behind import resolution:
// one call, one byte slice, bounded by the caller's context deadline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes of a single document.
type Fetcher interface {
	Fetch(ctx context.Context, uri, baseDir string) ([]byte, error)
}

// Client is the default Fetcher. HTTP and HTTPS URIs go through the
// embedded http.Client; anything else is treated as a filesystem path,
// resolved against baseDir when relative.
type Client struct {
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a fetch client. The HTTP client carries no timeout of
// its own; per-fetch bounds come from the caller's context.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 0},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the document at uri.
func (c *Client) Fetch(ctx context.Context, uri, baseDir string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return c.fetchHTTP(ctx, uri)
	}
	return fetchFile(uri, baseDir)
}

func (c *Client) fetchHTTP(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", uri, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", uri, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uri, err)
	}
	return data, nil
}

func fetchFile(path, baseDir string) ([]byte, error) {
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// DefaultTimeout is the per-fetch bound applied when configuration leaves
// the timeout unset.
const DefaultTimeout = 30 * time.Second

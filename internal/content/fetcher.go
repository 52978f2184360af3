// Package content fetches the manifest and post sources, either from a local
// directory or from a remote base URL.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = errors.New("content not found")

// Fetcher reads a file addressed by a slash-separated path relative to the
// content root.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// HTTPError is returned for a non-success response from a remote content root.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.StatusCode)
}

// DirFetcher reads files below a local directory.
type DirFetcher struct {
	Root string
}

// NewDirFetcher returns a fetcher rooted at dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{Root: dir}
}

func (f *DirFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(f.Root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", clean, err)
	}
	return data, nil
}

// HTTPFetcher reads files below a remote base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPFetcher returns a fetcher for the given base URL.
func NewHTTPFetcher(baseURL string) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPFetcher{
		base: u,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	target := f.base.ResolveReference(&url.URL{Path: clean}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", target, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: target}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return data, nil
}

// cleanName rejects names that would leave the content root.
func cleanName(name string) (string, error) {
	if name == "" || strings.Contains(name, "\\") || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("invalid name %q: %w", name, ErrNotFound)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid name %q: %w", name, ErrNotFound)
	}
	return clean, nil
}

// New picks an HTTPFetcher when baseURL is set and a DirFetcher otherwise.
func New(dir, baseURL string) (Fetcher, error) {
	if baseURL != "" {
		return NewHTTPFetcher(baseURL)
	}
	return NewDirFetcher(dir), nil
}

package content

import (
	"context"
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every markdown file below the pages directory.
var DefaultInclude = []string{"**/*.md"}

// Library resolves the manifest and post files inside a content root.
type Library struct {
	fetcher  Fetcher
	manifest string
	pagesDir string
	include  []string
}

// NewLibrary creates a Library. pagesDir is the directory, relative to the
// content root, that post file names are resolved against.
func NewLibrary(f Fetcher, manifest, pagesDir string, include []string) *Library {
	if len(include) == 0 {
		include = DefaultInclude
	}
	return &Library{
		fetcher:  f,
		manifest: manifest,
		pagesDir: pagesDir,
		include:  include,
	}
}

// Manifest returns the raw manifest bytes.
func (l *Library) Manifest(ctx context.Context) ([]byte, error) {
	return l.fetcher.Fetch(ctx, l.manifest)
}

// ManifestName returns the manifest path relative to the content root.
func (l *Library) ManifestName() string { return l.manifest }

// Post returns the raw source of the post file name. Names that escape the
// pages directory or match no include pattern are reported as not found.
func (l *Library) Post(ctx context.Context, name string) ([]byte, error) {
	if !l.Allowed(name) {
		return nil, fmt.Errorf("post %q: %w", name, ErrNotFound)
	}
	return l.fetcher.Fetch(ctx, path.Join(l.pagesDir, path.Clean(name)))
}

// Allowed reports whether name is a servable post file.
func (l *Library) Allowed(name string) bool {
	clean, err := cleanName(name)
	if err != nil {
		return false
	}
	for _, pattern := range l.include {
		if ok, err := doublestar.Match(pattern, clean); err == nil && ok {
			return true
		}
	}
	return false
}

// Package store keeps the post manifest in memory.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/hyuniciel/inkwell/internal/post"
)

// ManifestReader returns the raw manifest.
type ManifestReader interface {
	Manifest(ctx context.Context) ([]byte, error)
}

// Store holds an immutable snapshot of the manifest. Readers never block;
// Load swaps in a new snapshot.
type Store struct {
	reader ManifestReader
	posts  atomic.Pointer[[]post.Post]
}

// New creates an empty store backed by reader.
func New(reader ManifestReader) *Store {
	s := &Store{reader: reader}
	empty := []post.Post{}
	s.posts.Store(&empty)
	return s
}

// Load fetches and decodes the manifest. On failure the store is emptied,
// the error is logged and returned for callers that want to report it.
func (s *Store) Load(ctx context.Context) error {
	posts, err := s.fetch(ctx)
	if err != nil {
		log.Printf("store: loading manifest: %v", err)
		posts = []post.Post{}
	}
	s.posts.Store(&posts)
	return err
}

func (s *Store) fetch(ctx context.Context) ([]post.Post, error) {
	data, err := s.reader.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	var posts []post.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

// All returns the current snapshot. Callers must not modify it.
func (s *Store) All() []post.Post {
	return *s.posts.Load()
}

// Count returns the number of posts in the current snapshot.
func (s *Store) Count() int {
	return len(s.All())
}

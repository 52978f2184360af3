// Package watch reloads the post store when the manifest changes on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hyuniciel/inkwell/internal/debounce"
)

// Loader reloads the manifest.
type Loader interface {
	Load(ctx context.Context) error
}

// Watcher monitors the manifest file and triggers a reload after changes
// settle.
type Watcher struct {
	loader   Loader
	watcher  *fsnotify.Watcher
	manifest string
	deb      *debounce.Debouncer
	onReload func(err error) // optional, called after each reload
}

// New watches the directory holding manifestPath. Editors often replace a file
// by renaming over it, so the directory is watched rather than the file.
func New(loader Loader, manifestPath string, deb *debounce.Debouncer, onReload func(error)) (*Watcher, error) {
	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		loader:   loader,
		watcher:  fw,
		manifest: abs,
		deb:      deb,
		onReload: onReload,
	}, nil
}

// Run processes events until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.manifest {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	w.deb.Call(func() {
		err := w.loader.Load(ctx)
		if err == nil {
			log.Printf("watch: reloaded %s", filepath.Base(w.manifest))
		}
		if w.onReload != nil {
			w.onReload(err)
		}
	})
}

// Stop cancels any pending reload and closes the underlying watcher.
func (w *Watcher) Stop() error {
	w.deb.Stop()
	return w.watcher.Close()
}

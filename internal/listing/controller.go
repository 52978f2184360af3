package listing

import (
	"sync"

	"github.com/hyuniciel/inkwell/internal/post"
)

// ViewRenderer is implemented by renderers that also want the view that
// produced the list. Controller prefers it over post.Renderer.
type ViewRenderer interface {
	RenderView(v View, posts []post.Post) error
}

// Controller owns one View and re-renders the list through a Renderer
// whenever the view changes. It is safe for concurrent use, which matters
// when the debounced query fires on a timer goroutine.
type Controller struct {
	source   post.Source
	renderer post.Renderer

	mu   sync.Mutex
	view View
}

// NewController creates a controller with an empty view.
func NewController(source post.Source, renderer post.Renderer) *Controller {
	return &Controller{source: source, renderer: renderer}
}

// View returns a copy of the current view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Restore replaces the view without rendering, for a client that already
// shows the matching list.
func (c *Controller) Restore(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// ToggleTag toggles the tag filter and re-renders.
func (c *Controller) ToggleTag(tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.ToggleTag(tag)
	return c.renderLocked()
}

// Search sets the query and re-renders.
func (c *Controller) Search(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Query = query
	return c.renderLocked()
}

// Clear resets the query and the tag filter and renders the full list.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Reset()
	return c.renderLocked()
}

// Refresh re-renders with the current view, e.g. after the store reloads.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

func (c *Controller) renderLocked() error {
	visible := c.view.Visible(c.source.All())
	if vr, ok := c.renderer.(ViewRenderer); ok {
		return vr.RenderView(c.view, visible)
	}
	return c.renderer.Render(visible)
}

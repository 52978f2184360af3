// Package prefs persists per-browser preferences behind theme.Storage.
package prefs

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hyuniciel/inkwell/internal/db"
	"github.com/hyuniciel/inkwell/internal/theme"
)

// Storage backends selectable in config.
const (
	BackendCookie = "cookie"
	BackendSQLite = "sqlite"
)

const maxAge = 365 * 24 * time.Hour

// Factory builds the storage for a single request.
type Factory func(w http.ResponseWriter, r *http.Request) theme.Storage

// NewFactory returns a Factory for the named backend. The sqlite backend
// needs an open database.
func NewFactory(backend string, database *db.DB) (Factory, error) {
	switch backend {
	case "", BackendCookie:
		return func(w http.ResponseWriter, r *http.Request) theme.Storage {
			return NewCookieStorage(w, r)
		}, nil
	case BackendSQLite:
		if database == nil {
			return nil, fmt.Errorf("prefs: sqlite backend requires a database")
		}
		return func(w http.ResponseWriter, r *http.Request) theme.Storage {
			return NewSQLStorage(r.Context(), database, VisitorID(w, r))
		}, nil
	}
	return nil, fmt.Errorf("prefs: unknown storage backend %q", backend)
}

func newCookie(r *http.Request, name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

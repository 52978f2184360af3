// Package theme resolves and toggles the light/dark colour scheme.
package theme

import (
	"fmt"
	"strings"
)

// Theme is the visual mode of the site.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the key under which the chosen theme is persisted.
const StorageKey = "blog-theme"

// Default is used when neither a stored nor an OS preference is available.
const Default = Dark

// Parse validates s as a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("invalid theme %q: must be light or dark", s)
}

// Valid reports whether t is one of the two themes.
func (t Theme) Valid() bool { return t == Light || t == Dark }

// Opposite returns the other theme. Anything that is not Dark flips to Dark.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Preference is what the operating system reports about colour schemes.
type Preference string

const (
	NoPreference Preference = ""
	PreferLight  Preference = "light"
	PreferDark   Preference = "dark"
)

// Theme converts the preference to a Theme; ok is false for NoPreference.
func (p Preference) Theme() (Theme, bool) {
	switch p {
	case PreferLight:
		return Light, true
	case PreferDark:
		return Dark, true
	}
	return "", false
}

// ParsePreference reads the value of a prefers-color-scheme client hint.
// Unknown values mean no preference.
func ParsePreference(s string) Preference {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(s), `"`)) {
	case "light":
		return PreferLight
	case "dark":
		return PreferDark
	}
	return NoPreference
}

// Resolve picks the initial theme: a valid stored value first, then the OS
// preference, then fallback.
func Resolve(stored string, pref Preference, fallback Theme) Theme {
	if t, err := Parse(stored); err == nil && stored != "" {
		return t
	}
	if t, ok := pref.Theme(); ok {
		return t
	}
	if fallback.Valid() {
		return fallback
	}
	return Default
}

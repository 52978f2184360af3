package theme

import "fmt"

// Storage persists a single string per key.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Manager tracks the current theme of one browser and persists user choices.
type Manager struct {
	storage  Storage
	fallback Theme
	current  Theme
}

// NewManager resolves the initial theme from storage, then pref, then fallback.
// A storage read error is treated as "nothing stored".
func NewManager(storage Storage, pref Preference, fallback Theme) *Manager {
	stored, _, err := storage.Get(StorageKey)
	if err != nil {
		stored = ""
	}
	return &Manager{
		storage:  storage,
		fallback: fallback,
		current:  Resolve(stored, pref, fallback),
	}
}

// Current returns the theme in effect.
func (m *Manager) Current() Theme { return m.current }

// Stored reports whether the user has persisted a valid choice.
func (m *Manager) Stored() bool {
	stored, err := m.storedChoice()
	return err == nil && stored
}

func (m *Manager) storedChoice() (bool, error) {
	v, ok, err := m.storage.Get(StorageKey)
	if err != nil || !ok {
		return false, err
	}
	_, err = Parse(v)
	return err == nil, nil
}

// Adopt makes t the theme in effect without persisting it, so a toggle flips
// what the page actually shows. Invalid values are ignored.
func (m *Manager) Adopt(t Theme) {
	if t.Valid() {
		m.current = t
	}
}

// Set applies t and persists it.
func (m *Manager) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("invalid theme %q", t)
	}
	if err := m.storage.Set(StorageKey, string(t)); err != nil {
		return fmt.Errorf("persisting theme: %w", err)
	}
	m.current = t
	return nil
}

// Toggle flips the current theme and persists the result.
func (m *Manager) Toggle() (Theme, error) {
	next := m.current.Opposite()
	if err := m.Set(next); err != nil {
		return m.current, err
	}
	return next, nil
}

// SystemChanged follows an OS preference change, but only while the user has
// not stored a choice. It reports whether the theme changed.
func (m *Manager) SystemChanged(pref Preference) (bool, error) {
	stored, err := m.storedChoice()
	if err != nil {
		return false, err
	}
	if stored {
		return false, nil
	}
	t, ok := pref.Theme()
	if !ok || t == m.current {
		return false, nil
	}
	m.current = t
	return true, nil
}

// MemoryStorage is an in-process Storage, mostly for tests and tools.
type MemoryStorage map[string]string

func (s MemoryStorage) Get(key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

func (s MemoryStorage) Set(key, value string) error {
	s[key] = value
	return nil
}

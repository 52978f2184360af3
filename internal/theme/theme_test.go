package theme

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		pref   Preference
		want   Theme
	}{
		{"stored wins over os", "light", PreferDark, Light},
		{"stored dark", "dark", PreferLight, Dark},
		{"os preference", "", PreferLight, Light},
		{"default", "", NoPreference, Dark},
		{"invalid stored falls through", "purple", PreferLight, Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.stored, tt.pref, Default); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePreference(t *testing.T) {
	tests := map[string]Preference{
		"light":   PreferLight,
		`"dark"`:  PreferDark,
		" Light ": PreferLight,
		"":        NoPreference,
		"no-pref": NoPreference,
	}
	for in, want := range tests {
		if got := ParsePreference(in); got != want {
			t.Errorf("ParsePreference(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToggleFromDefaultPersists(t *testing.T) {
	storage := MemoryStorage{}
	m := NewManager(storage, NoPreference, Default)
	if m.Current() != Dark {
		t.Fatalf("expected default dark, got %q", m.Current())
	}

	got, err := m.Toggle()
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got != Light || m.Current() != Light {
		t.Errorf("expected light after toggle, got %q", got)
	}
	if storage[StorageKey] != "light" {
		t.Errorf("expected %q persisted, got %q", "light", storage[StorageKey])
	}

	// A reload with the stored value must ignore the OS preference.
	reloaded := NewManager(storage, PreferDark, Default)
	if reloaded.Current() != Light {
		t.Errorf("expected stored light to win, got %q", reloaded.Current())
	}
}

func TestSystemChanged(t *testing.T) {
	storage := MemoryStorage{}
	m := NewManager(storage, PreferDark, Default)

	changed, err := m.SystemChanged(PreferLight)
	if err != nil {
		t.Fatal(err)
	}
	if !changed || m.Current() != Light {
		t.Errorf("expected follow os change to light, got changed=%v theme=%q", changed, m.Current())
	}
	if _, ok := storage[StorageKey]; ok {
		t.Error("os-driven change must not be persisted")
	}

	if _, err := m.Toggle(); err != nil {
		t.Fatal(err)
	}
	changed, _ = m.SystemChanged(PreferLight)
	if changed {
		t.Error("stored choice should suppress os auto-switching")
	}
	if m.Current() != Dark {
		t.Errorf("expected user choice dark to stay, got %q", m.Current())
	}
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool, error) { return "", false, errors.New("boom") }
func (failingStorage) Set(string, string) error         { return errors.New("boom") }

func TestStorageErrors(t *testing.T) {
	m := NewManager(failingStorage{}, PreferLight, Default)
	if m.Current() != Light {
		t.Errorf("read error should fall back to os preference, got %q", m.Current())
	}
	if _, err := m.Toggle(); err == nil {
		t.Error("expected persist error")
	}
	if m.Current() != Light {
		t.Errorf("failed toggle should keep current theme, got %q", m.Current())
	}
}

func TestParse(t *testing.T) {
	if th, err := Parse("DARK"); err != nil || th != Dark {
		t.Errorf("Parse(DARK) = %q, %v", th, err)
	}
	if _, err := Parse("sepia"); err == nil {
		t.Error("expected error for sepia")
	}
}

func TestInvalidStoredValueIsNotAChoice(t *testing.T) {
	storage := MemoryStorage{StorageKey: "purple"}
	m := NewManager(storage, PreferDark, Light)

	if m.Stored() {
		t.Error("an invalid stored value should not count as a choice")
	}
	changed, err := m.SystemChanged(PreferLight)
	if err != nil {
		t.Fatal(err)
	}
	if !changed || m.Current() != Light {
		t.Errorf("expected OS change to apply, got changed=%v current=%q", changed, m.Current())
	}
}

func TestAdoptThenToggle(t *testing.T) {
	storage := MemoryStorage{}
	m := NewManager(storage, NoPreference, Dark)

	m.Adopt(Light)
	if m.Current() != Light {
		t.Fatalf("Adopt: got %q, want light", m.Current())
	}
	if _, ok := storage[StorageKey]; ok {
		t.Error("Adopt should not persist")
	}

	m.Adopt("purple")
	if m.Current() != Light {
		t.Errorf("invalid Adopt should be ignored, got %q", m.Current())
	}

	next, err := m.Toggle()
	if err != nil {
		t.Fatal(err)
	}
	if next != Dark || storage[StorageKey] != "dark" {
		t.Errorf("toggle from adopted light: got %q, stored %q", next, storage[StorageKey])
	}
}

package session

import (
	"context"

	"clientflow/cmd/internal/localstore"

	"github.com/labstack/gommon/log"
)

// ThemeStore resolves and persists the display preference. Resolution order:
// profile preference, then the local storage key, then the configured default.
type ThemeStore struct {
	store     *Store
	artifacts *localstore.Store
	fallback  string
}

func NewThemeStore(store *Store, artifacts *localstore.Store, fallback string) *ThemeStore {
	if fallback == "" {
		fallback = "light"
	}
	return &ThemeStore{store: store, artifacts: artifacts, fallback: fallback}
}

func (t *ThemeStore) Current() string {
	if profile := t.store.Profile(); profile != nil && profile.ThemePreference != nil && *profile.ThemePreference != "" {
		return *profile.ThemePreference
	}
	if stored, ok := t.artifacts.Get(localstore.ThemeKey); ok && stored != "" {
		return stored
	}
	return t.fallback
}

// Set persists the theme locally, flips the display flag, and mirrors the
// preference to the profile record when someone is signed in. A failed mirror
// is logged; the local preference already took effect.
func (t *ThemeStore) Set(ctx context.Context, theme string) {
	t.artifacts.Set(localstore.ThemeKey, theme)
	t.store.display.SetDark(theme == "dark")

	if t.store.Profile() == nil {
		return
	}
	if err := t.store.SetTheme(ctx, theme); err != nil {
		log.Errorf("theme: failed to mirror preference to profile: %v", err)
	}
}

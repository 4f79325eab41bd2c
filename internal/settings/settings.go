// Package settings stores the dashboard preferences: notifications, theme
// and the optional phone number. Each preference is one row of the kv table
// under the "pref." prefix.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/syntra-ai/syntra/internal/storage"
)

const prefix = "pref."

const (
	keyNotifications = prefix + "notifications"
	keyTheme         = prefix + "theme"
	keyPhone         = prefix + "phone"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences are the user-adjustable settings. Phone is free text and is
// never validated.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         Theme  `json:"theme"`
	Phone         string `json:"phone"`
}

// Defaults are the preferences of a fresh account.
func Defaults() Preferences {
	return Preferences{Notifications: true, Theme: ThemeLight}
}

// Update is a partial change. Nil fields are left alone.
type Update struct {
	Notifications *bool   `json:"notifications,omitempty"`
	Theme         *Theme  `json:"theme,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// KV is the storage the Manager needs. Implemented by storage.Store.
type KV interface {
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context, prefix string) ([]storage.Record, error)
}

// Manager caches the preferences and writes every change through to kv.
type Manager struct {
	kv     KV
	logger *slog.Logger

	mu    sync.RWMutex
	prefs Preferences
}

// NewManager returns a Manager holding the defaults. Call Load to read the
// stored values.
func NewManager(kv KV, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: kv, logger: logger, prefs: Defaults()}
}

// Load reads the stored preferences over the defaults. Unparseable values
// are logged and skipped.
func (m *Manager) Load(ctx context.Context) error {
	recs, err := m.kv.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}

	p := Defaults()
	for _, r := range recs {
		switch r.Key {
		case keyNotifications:
			b, err := strconv.ParseBool(r.Value)
			if err != nil {
				m.logger.Warn("ignoring stored preference", "key", r.Key, "error", err)
				continue
			}
			p.Notifications = b
		case keyTheme:
			t := Theme(r.Value)
			if !t.valid() {
				m.logger.Warn("ignoring stored preference", "key", r.Key, "value", r.Value)
				continue
			}
			p.Theme = t
		case keyPhone:
			p.Phone = r.Value
		}
	}

	m.mu.Lock()
	m.prefs = p
	m.mu.Unlock()
	return nil
}

// Get returns the current preferences.
func (m *Manager) Get() Preferences {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// Apply validates u, persists the fields it sets and returns the result.
// Nothing is written when validation fails.
func (m *Manager) Apply(ctx context.Context, u Update) (Preferences, error) {
	if u.Theme != nil && !u.Theme.valid() {
		return Preferences{}, fmt.Errorf("%w, got %q", ErrInvalidTheme, *u.Theme)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.prefs
	if u.Notifications != nil {
		if err := m.kv.Set(ctx, keyNotifications, strconv.FormatBool(*u.Notifications)); err != nil {
			return Preferences{}, err
		}
		p.Notifications = *u.Notifications
	}
	if u.Theme != nil {
		if err := m.kv.Set(ctx, keyTheme, string(*u.Theme)); err != nil {
			return Preferences{}, err
		}
		p.Theme = *u.Theme
	}
	if u.Phone != nil {
		phone := strings.TrimSpace(*u.Phone)
		if err := m.kv.Set(ctx, keyPhone, phone); err != nil {
			return Preferences{}, err
		}
		p.Phone = phone
	}
	m.prefs = p
	return p, nil
}

func (t Theme) valid() bool { return t == ThemeLight || t == ThemeDark }

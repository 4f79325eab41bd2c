package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/syntra-ai/syntra/internal/storage"
)

// Key is the storage key holding the serialized session user.
const Key = "syntra_user"

const (
	DefaultLoginDelay  = 1500 * time.Millisecond
	DefaultGoogleDelay = time.Second

	minPasswordLen = 6
	defaultAvatar  = "/placeholder.svg?height=40&width=40"
	premium        = "premium"
)

var (
	ErrMissingFields    = errors.New("email and password are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrNotAuthenticated = errors.New("not signed in")
)

// User is the fabricated signed-in account.
type User struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Avatar           string `json:"avatar,omitempty"`
	HasFullAccess    bool   `json:"hasFullAccess"`
	SubscriptionType string `json:"subscriptionType"`
}

// KV defines the storage operations the Manager needs.
// Implemented by storage.Store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Options configures a Manager. Zero delays select the defaults.
type Options struct {
	LoginDelay  time.Duration
	GoogleDelay time.Duration
	Clock       Clock
	Logger      *slog.Logger
}

// Manager is the single session context. It caches the current user and
// mirrors every change to the KV store under Key.
type Manager struct {
	kv          KV
	clock       Clock
	loginDelay  time.Duration
	googleDelay time.Duration
	logger      *slog.Logger
	wait        func(ctx context.Context, d time.Duration) error

	mu   sync.RWMutex
	user *User
}

// NewManager creates a Manager backed by kv. Call Init before use.
func NewManager(kv KV, opts Options) *Manager {
	m := &Manager{
		kv:          kv,
		clock:       opts.Clock,
		loginDelay:  opts.LoginDelay,
		googleDelay: opts.GoogleDelay,
		logger:      opts.Logger,
		wait:        sleep,
	}
	if m.clock == nil {
		m.clock = realClock{}
	}
	if m.loginDelay <= 0 {
		m.loginDelay = DefaultLoginDelay
	}
	if m.googleDelay <= 0 {
		m.googleDelay = DefaultGoogleDelay
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Init loads the stored user. A malformed record is deleted and treated as
// absent; a valid one is upgraded to premium and written back.
func (m *Manager) Init(ctx context.Context) error {
	raw, err := m.kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		m.logger.Warn("clearing malformed session record", "error", err)
		if err := m.kv.Delete(ctx, Key); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		return nil
	}

	return m.save(ctx, u)
}

// Current returns the signed-in user.
func (m *Manager) Current() (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return User{}, ErrNotAuthenticated
	}
	return *m.user, nil
}

// Login signs in as email after the login delay. Any non-empty password is
// accepted; the display name is the capitalised local part of the email.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if err := m.wait(ctx, m.loginDelay); err != nil {
		return User{}, fmt.Errorf("login: %w", err)
	}
	u := User{
		ID:     fmt.Sprintf("user_%d", m.clock.Now().UnixMilli()),
		Name:   nameFromEmail(email),
		Email:  email,
		Avatar: defaultAvatar,
	}
	if err := m.save(ctx, u); err != nil {
		return User{}, err
	}
	return m.Current()
}

// Signup validates the passwords and creates an account after the login delay.
func (m *Manager) Signup(ctx context.Context, name, email, password, confirm string) (User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return User{}, ErrPasswordTooShort
	}
	if err := m.wait(ctx, m.loginDelay); err != nil {
		return User{}, fmt.Errorf("signup: %w", err)
	}
	u := User{
		ID:     fmt.Sprintf("user_%d", m.clock.Now().UnixMilli()),
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Avatar: defaultAvatar,
	}
	if err := m.save(ctx, u); err != nil {
		return User{}, err
	}
	return m.Current()
}

// GoogleAuth signs in as the fixed Google account after the Google delay.
func (m *Manager) GoogleAuth(ctx context.Context) (User, error) {
	if err := m.wait(ctx, m.googleDelay); err != nil {
		return User{}, fmt.Errorf("google auth: %w", err)
	}
	u := User{
		ID:     fmt.Sprintf("google_%d", m.clock.Now().UnixMilli()),
		Name:   "John Doe",
		Email:  "john.doe@gmail.com",
		Avatar: defaultAvatar,
	}
	if err := m.save(ctx, u); err != nil {
		return User{}, err
	}
	return m.Current()
}

// Logout forgets the user and deletes the stored record.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	if err := m.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// save forces full premium access on u, persists it and caches it.
func (m *Manager) save(ctx context.Context, u User) error {
	u.HasFullAccess = true
	u.SubscriptionType = premium

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	m.logger.Info("session saved", "user", u.ID)
	return nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(r)) + local[size:]
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

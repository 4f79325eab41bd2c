package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/syntra-ai/syntra/internal/storage"
)

// --- Mock store ---

type mockKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string]string)}
}

func (m *mockKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.UnixMilli(1735380000000)

// newTestManager returns a Manager whose delays are recorded instead of slept.
func newTestManager(t *testing.T, kv KV) (*Manager, *[]time.Duration) {
	t.Helper()
	m := NewManager(kv, Options{Clock: fixedClock{testNow}})
	var waits []time.Duration
	m.wait = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return m, &waits
}

func storedUser(t *testing.T, kv *mockKV) User {
	t.Helper()
	raw, err := kv.Get(context.Background(), Key)
	if err != nil {
		t.Fatalf("no stored session: %v", err)
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("stored session is not JSON: %v", err)
	}
	return u
}

func TestInit_ForcesPremium(t *testing.T) {
	kv := newMockKV()
	kv.data[Key] = `{"id":"user_1","name":"Ann","email":"ann@x.io","hasFullAccess":false,"subscriptionType":"free"}`
	m, _ := newTestManager(t, kv)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	want := User{ID: "user_1", Name: "Ann", Email: "ann@x.io", HasFullAccess: true, SubscriptionType: "premium"}
	got, err := m.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("current mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, storedUser(t, kv)); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_MalformedRecordIsCleared(t *testing.T) {
	kv := newMockKV()
	kv.data[Key] = `{not json`
	m, _ := newTestManager(t, kv)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Current error = %v, want ErrNotAuthenticated", err)
	}
	if _, ok := kv.data[Key]; ok {
		t.Error("malformed record was not deleted")
	}
}

func TestInit_Empty(t *testing.T) {
	m, _ := newTestManager(t, newMockKV())
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Current error = %v, want ErrNotAuthenticated", err)
	}
}

func TestLogin(t *testing.T) {
	kv := newMockKV()
	m, waits := newTestManager(t, kv)

	got, err := m.Login(context.Background(), "jane.smith@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	want := User{
		ID:               "user_1735380000000",
		Name:             "Jane.smith",
		Email:            "jane.smith@example.com",
		Avatar:           "/placeholder.svg?height=40&width=40",
		HasFullAccess:    true,
		SubscriptionType: "premium",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, storedUser(t, kv)); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]time.Duration{DefaultLoginDelay}, *waits); diff != "" {
		t.Errorf("waits mismatch (-want +got):\n%s", diff)
	}
}

func TestLogin_NameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"élodie@example.com", "Élodie"},
		{"ömer@example.com", "Ömer"},
		{"bob@example.com", "Bob"},
		{"9lives@example.com", "9lives"},
	}
	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			m, _ := newTestManager(t, newMockKV())
			u, err := m.Login(context.Background(), tc.email, "pw")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if u.Name != tc.want {
				t.Errorf("Name = %q, want %q", u.Name, tc.want)
			}
			if !utf8.ValidString(u.Name) {
				t.Errorf("Name %q is not valid UTF-8", u.Name)
			}
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	m, waits := newTestManager(t, newMockKV())

	if _, err := m.Login(context.Background(), "", "pw"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("empty email error = %v", err)
	}
	if _, err := m.Login(context.Background(), "a@b.c", ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("empty password error = %v", err)
	}
	if len(*waits) != 0 {
		t.Error("rejected login still waited")
	}
}

func TestLogin_Cancelled(t *testing.T) {
	kv := newMockKV()
	m, _ := newTestManager(t, kv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Login(ctx, "a@b.c", "pw"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(kv.data) != 0 {
		t.Error("cancelled login persisted a session")
	}
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"ok", "secret1", "secret1", nil},
		{"mismatch", "secret1", "secret2", ErrPasswordMismatch},
		{"too short", "abc", "abc", ErrPasswordTooShort},
		{"mismatch wins over length", "abc", "abd", ErrPasswordMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kv := newMockKV()
			m, _ := newTestManager(t, kv)

			u, err := m.Signup(context.Background(), "  Ravi Kumar ", "ravi@example.com", tc.password, tc.confirm)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Signup error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				if len(kv.data) != 0 {
					t.Error("failed signup persisted a session")
				}
				return
			}
			if u.Name != "Ravi Kumar" {
				t.Errorf("name = %q, want trimmed", u.Name)
			}
		})
	}
}

func TestGoogleAuth(t *testing.T) {
	kv := newMockKV()
	m, waits := newTestManager(t, kv)

	u, err := m.GoogleAuth(context.Background())
	if err != nil {
		t.Fatalf("GoogleAuth: %v", err)
	}
	if u.ID != "google_1735380000000" || u.Name != "John Doe" || u.Email != "john.doe@gmail.com" {
		t.Errorf("unexpected user: %+v", u)
	}
	if diff := cmp.Diff([]time.Duration{DefaultGoogleDelay}, *waits); diff != "" {
		t.Errorf("waits mismatch (-want +got):\n%s", diff)
	}
}

func TestLogout(t *testing.T) {
	kv := newMockKV()
	m, _ := newTestManager(t, kv)

	m.GoogleAuth(context.Background())
	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := m.Current(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Current after logout error = %v", err)
	}
	if len(kv.data) != 0 {
		t.Error("logout left the stored record")
	}
}

func TestRoundTrip_WithStorage(t *testing.T) {
	st, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	m1, _ := newTestManager(t, st)
	if _, err := m1.Login(ctx, "kim@x.io", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	m2, _ := newTestManager(t, st)
	if err := m2.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	u, err := m2.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if u.Email != "kim@x.io" || !u.HasFullAccess || u.SubscriptionType != "premium" {
		t.Errorf("round-tripped user = %+v", u)
	}
}

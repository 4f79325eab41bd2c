package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/syntra-ai/syntra/internal/inbox"
	"github.com/syntra-ai/syntra/internal/session"
	"github.com/syntra-ai/syntra/internal/settings"
	"github.com/syntra-ai/syntra/internal/storage"
	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
)

const testToken = "test-token-12345"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupDeps wires real stores with a fixed clock and short delays.
func setupDeps(t *testing.T) Deps {
	t.Helper()
	logger := discardLogger()

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sess := session.NewManager(store, session.Options{
		LoginDelay:  time.Millisecond,
		GoogleDelay: time.Millisecond,
		Clock:       fixedClock{testNow},
		Logger:      logger,
	})
	if err := sess.Init(context.Background()); err != nil {
		t.Fatalf("session init: %v", err)
	}

	prefs := settings.NewManager(store, logger)
	if err := prefs.Load(context.Background()); err != nil {
		t.Fatalf("settings load: %v", err)
	}

	ib := inbox.New(inbox.Options{
		StageDelay: 5 * time.Millisecond,
		VoiceDelay: time.Millisecond,
		Now:        func() time.Time { return testNow },
		History:    inbox.SeedHistory(testNow),
		Logger:     logger,
	})
	t.Cleanup(ib.Close)

	ts := tasks.NewStoreWithClock(fixedClock{testNow}, logger)
	tasks.SeedDefaults(ts)

	reg := tools.NewRegistry(logger)
	reg.SeedDefaults()

	return Deps{
		Inbox:    ib,
		Tasks:    ts,
		Tools:    reg,
		Session:  sess,
		Settings: prefs,
		Token:    testToken,
		Logger:   logger,
		Now:      func() time.Time { return testNow },
	}
}

func setupHandler(t *testing.T) (http.Handler, Deps) {
	t.Helper()
	deps := setupDeps(t)
	return NewHandler(deps), deps
}

func authReq(method, url, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func do(t *testing.T, h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, authReq(method, url, body, testToken))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rr.Body.String(), err)
	}
	return v
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func TestHealth_NoAuth(t *testing.T) {
	h, _ := setupHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decode[map[string]string](t, rr)
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status=ok", body)
	}
}

func TestAuth_RejectsMissingAndWrongToken(t *testing.T) {
	h, _ := setupHandler(t)

	for _, token := range []string{"", "wrong-token"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, authReq(http.MethodGet, "/tasks/", "", token))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, rr.Code)
		}
		body := decode[errorBody](t, rr)
		if body.Error.Type != "authentication_error" {
			t.Errorf("token %q: error type = %q", token, body.Error.Type)
		}
	}
}

func TestAuth_QueryTokenOnlyForUpgrade(t *testing.T) {
	h, _ := setupHandler(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tasks/?token="+testToken, nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("query token on plain request: status = %d, want 401", rr.Code)
	}
}

func TestValidToken_EmptyConfiguredTokenRejectsAll(t *testing.T) {
	if validToken("", "") {
		t.Error("empty configured token accepted an empty request token")
	}
	if !validToken("abc", "abc") {
		t.Error("matching token rejected")
	}
}

func TestCORS_Preflight(t *testing.T) {
	h, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/tasks/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("preflight response has no Access-Control-Allow-Origin header")
	}
}

func TestDecodeBody_RejectsMalformedJSON(t *testing.T) {
	h, _ := setupHandler(t)

	rr := do(t, h, http.MethodPost, "/tasks/", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decode[errorBody](t, rr)
	if !strings.Contains(body.Error.Message, "invalid request body") {
		t.Errorf("message = %q", body.Error.Message)
	}
}

package api

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/syntra-ai/syntra/internal/settings"
)

func TestSettings_GetDefaults(t *testing.T) {
	h, _ := setupHandler(t)

	got := decode[settings.Preferences](t, do(t, h, http.MethodGet, "/settings", ""))
	if diff := cmp.Diff(settings.Defaults(), got); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings_PartialUpdate(t *testing.T) {
	h, deps := setupHandler(t)

	rr := do(t, h, http.MethodPut, "/settings", `{"theme":"dark","phone":"555-0100"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	want := settings.Preferences{Notifications: true, Theme: settings.ThemeDark, Phone: "555-0100"}
	if diff := cmp.Diff(want, decode[settings.Preferences](t, rr)); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, deps.Settings.Get()); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}

	rr = do(t, h, http.MethodPut, "/settings", `{"notifications":false}`)
	if got := decode[settings.Preferences](t, rr); got.Notifications || got.Theme != settings.ThemeDark {
		t.Errorf("after second update = %+v", got)
	}
}

func TestSettings_InvalidTheme(t *testing.T) {
	h, deps := setupHandler(t)

	rr := do(t, h, http.MethodPut, "/settings", `{"theme":"sepia"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if body := decode[errorBody](t, rr); body.Error.Type != "invalid_request_error" {
		t.Errorf("error type = %q", body.Error.Type)
	}
	if deps.Settings.Get().Theme != settings.ThemeLight {
		t.Error("rejected update changed the theme")
	}
}

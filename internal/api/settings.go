package api

import (
	"net/http"

	"github.com/syntra-ai/syntra/internal/settings"
)

func handleGetSettings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Settings.Get())
	}
}

// handleUpdateSettings applies a partial update; omitted fields keep their
// current value.
func handleUpdateSettings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u settings.Update
		if !decodeBody(w, r, &u) {
			return
		}
		p, err := deps.Settings.Apply(r.Context(), u)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

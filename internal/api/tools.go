package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syntra-ai/syntra/internal/tools"
)

type addToolRequest struct {
	Kind       tools.Kind `json:"kind"`
	Credential string     `json:"credential"`
}

func handleToolCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tools.Catalog())
}

func handleListTools(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := deps.Tools.List()
		if ts == nil {
			ts = []tools.Tool{}
		}
		writeJSON(w, http.StatusOK, ts)
	}
}

func handleAddTool(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addToolRequest
		if !decodeBody(w, r, &req) {
			return
		}
		t, err := deps.Tools.Add(req.Kind, req.Credential)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func handleRemoveTool(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Tools.Remove(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syntra-ai/syntra/internal/reports"
)

func handleReports(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reports.Build(deps.Tasks))
	}
}

func handleReportPeriod(w http.ResponseWriter, r *http.Request) {
	p, err := reports.ParsePeriod(chi.URLParam(r, "period"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports.View(p))
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/syntra-ai/syntra/internal/tasks"
)

type taskList struct {
	Bucket      tasks.Bucket   `json:"bucket"`
	Sort        tasks.SortMode `json:"sort"`
	Tasks       []tasks.Task   `json:"tasks"`
	Summary     tasks.Summary  `json:"summary"`
	SummaryText string         `json:"summary_text"`
}

type addedTask struct {
	Task   tasks.Task   `json:"task"`
	Bucket tasks.Bucket `json:"bucket"`
}

type taskChange struct {
	Changed bool        `json:"changed"`
	Task    *tasks.Task `json:"task,omitempty"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func bucketParam(w http.ResponseWriter, r *http.Request) (tasks.Bucket, bool) {
	b, ok := tasks.ParseBucket(r.URL.Query().Get("bucket"))
	if !ok {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "bucket must be today or upcoming")
	}
	return b, ok
}

func handleListTasks(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := bucketParam(w, r)
		if !ok {
			return
		}
		mode, err := tasks.ParseSortMode(r.URL.Query().Get("sort"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		sum := deps.Tasks.Completion(b)
		writeJSON(w, http.StatusOK, taskList{
			Bucket:      b,
			Sort:        mode,
			Tasks:       tasks.Sort(deps.Tasks.Bucket(b), mode),
			Summary:     sum,
			SummaryText: sum.String(),
		})
	}
}

func handleAddTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d tasks.Draft
		if !decodeBody(w, r, &d) {
			return
		}
		t, b, err := deps.Tasks.AddManual(d)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, addedTask{Task: t, Bucket: b})
	}
}

func handleAddAssistantTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d tasks.Draft
		if !decodeBody(w, r, &d) {
			return
		}
		t, b := deps.Tasks.AddFromAssistant(d)
		writeJSON(w, http.StatusCreated, addedTask{Task: t, Bucket: b})
	}
}

// handleToggleTask and handleEditNote answer 200 even on a miss; a miss is
// reported as changed=false rather than an error.
func handleToggleTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := bucketParam(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "id")
		writeJSON(w, http.StatusOK, changeResult(deps, id, deps.Tasks.Toggle(b, id)))
	}
}

func handleEditNote(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := bucketParam(w, r)
		if !ok {
			return
		}
		var req noteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		id := chi.URLParam(r, "id")
		writeJSON(w, http.StatusOK, changeResult(deps, id, deps.Tasks.EditNote(b, id, req.Note)))
	}
}

func changeResult(deps Deps, id string, changed bool) taskChange {
	res := taskChange{Changed: changed}
	if changed {
		if t, _, ok := deps.Tasks.Get(id); ok {
			res.Task = &t
		}
	}
	return res
}

func handleRequestDelete(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := deps.Tasks.RequestDelete(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusAccepted, map[string]string{"token": token})
	}
}

func handleConfirmDelete(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := deps.Tasks.ConfirmDelete(chi.URLParam(r, "token"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
	}
}

func handleCancelDelete(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Tasks.CancelDelete(chi.URLParam(r, "token")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
	}
}

func handleCalendar(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := deps.Now()
		year := parseIntParam(r, "year", now.Year(), 9999)
		month := parseIntParam(r, "month", int(now.Month()), 12)
		if month < 1 {
			month = int(now.Month())
		}
		writeJSON(w, http.StatusOK, deps.Tasks.MonthGrid(year, time.Month(month)))
	}
}

// parseIntParam reads a non-negative integer query parameter, capped at
// maxVal when maxVal is positive.
func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

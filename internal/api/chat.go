package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syntra-ai/syntra/internal/inbox"
)

type sendRequest struct {
	Content string `json:"content"`
}

type chatState struct {
	Stage         inbox.Stage `json:"stage"`
	Generation    uint64      `json:"generation"`
	CurrentChatID string      `json:"current_chat_id"`
}

type historyEntry struct {
	inbox.Summary
	Relative string `json:"relative"`
}

func handleListMessages(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs := deps.Inbox.Messages()
		if msgs == nil {
			msgs = []inbox.Message{}
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

// handleSendMessage accepts a message and returns immediately; the reply
// arrives later over /chat/ws or a subsequent /chat/messages poll.
func handleSendMessage(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if !decodeBody(w, r, &req) {
			return
		}
		msg, err := deps.Inbox.Send(req.Content)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, msg)
	}
}

func handleChatState(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, chatState{
			Stage:         deps.Inbox.Stage(),
			Generation:    deps.Inbox.Generation(),
			CurrentChatID: deps.Inbox.CurrentChatID(),
		})
	}
}

func handleNewChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Inbox.NewChat()
		writeJSON(w, http.StatusOK, deps.Inbox.Messages())
	}
}

// handleVoice simulates a voice recording. It blocks for the voice delay and
// returns the transcript for the client to place in its input box.
func handleVoice(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := deps.Inbox.Transcribe(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
	}
}

func handleListHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := deps.Now()
		summaries := deps.Inbox.History(r.URL.Query().Get("q"))
		out := make([]historyEntry, len(summaries))
		for i, s := range summaries {
			out[i] = historyEntry{Summary: s, Relative: inbox.FormatRelative(s.UpdatedAt, now)}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleLoadHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !deps.Inbox.LoadHistory(id) {
			httpError(w, http.StatusNotFound, "not_found", "chat %q not found", id)
			return
		}
		writeJSON(w, http.StatusOK, deps.Inbox.Messages())
	}
}

func handleDeleteHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Inbox.DeleteHistory(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}


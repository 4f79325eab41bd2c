package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/syntra-ai/syntra/internal/inbox"
	"github.com/syntra-ai/syntra/internal/session"
	"github.com/syntra-ai/syntra/internal/settings"
	"github.com/syntra-ai/syntra/internal/tasks"
	"github.com/syntra-ai/syntra/internal/tools"
)

// Deps holds the stores served by the HTTP API.
type Deps struct {
	Inbox    *inbox.Inbox
	Tasks    *tasks.Store
	Tools    *tools.Registry
	Session  *session.Manager
	Settings *settings.Manager
	Token    string
	Logger   *slog.Logger
	// Now is used for default calendar months. Defaults to time.Now.
	Now func() time.Time
}

// NewHandler returns the dashboard API. Every route except /health requires
// the bearer token.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", handleGetSession(deps))
			r.Delete("/", handleLogout(deps))
			r.Post("/login", handleLogin(deps))
			r.Post("/signup", handleSignup(deps))
			r.Post("/google", handleGoogle(deps))
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/messages", handleListMessages(deps))
			r.Post("/messages", handleSendMessage(deps))
			r.Get("/state", handleChatState(deps))
			r.Post("/new", handleNewChat(deps))
			r.Post("/voice", handleVoice(deps))
			r.Get("/ws", handleChatWS(deps, newUpgrader()))
			r.Get("/history", handleListHistory(deps))
			r.Post("/history/{id}/load", handleLoadHistory(deps))
			r.Delete("/history/{id}", handleDeleteHistory(deps))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handleListTasks(deps))
			r.Post("/", handleAddTask(deps))
			r.Post("/assistant", handleAddAssistantTask(deps))
			r.Get("/calendar", handleCalendar(deps))
			r.Post("/{id}/toggle", handleToggleTask(deps))
			r.Put("/{id}/note", handleEditNote(deps))
			r.Post("/{id}/delete", handleRequestDelete(deps))
			r.Post("/deletions/{token}/confirm", handleConfirmDelete(deps))
			r.Delete("/deletions/{token}", handleCancelDelete(deps))
		})

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", handleListTools(deps))
			r.Post("/", handleAddTool(deps))
			r.Get("/catalog", handleToolCatalog)
			r.Delete("/{id}", handleRemoveTool(deps))
		})

		r.Get("/reports", handleReports(deps))
		r.Get("/reports/{period}", handleReportPeriod)

		r.Get("/settings", handleGetSettings(deps))
		r.Put("/settings", handleUpdateSettings(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		// The API is bound to localhost and guarded by the bearer token.
		CheckOrigin: func(r *http.Request) bool { return true },
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

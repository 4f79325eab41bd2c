package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUnknownKind       = errors.New("unknown tool kind")
	ErrMissingCredential = errors.New("credential is required")
)

// Status is a tool's connection state.
type Status string

const (
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// Tool is a connected integration. Credential is opaque display text and is
// never validated or used.
type Tool struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	Credential string `json:"credential"`
	Status     Status `json:"status"`
}

// Registry holds connected tools in insertion order.
type Registry struct {
	logger *slog.Logger
	newID  func() string

	mu    sync.RWMutex
	tools []Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// Add connects a tool of kind k.
func (r *Registry) Add(k Kind, credential string) (Tool, error) {
	e, ok := Lookup(k)
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	if strings.TrimSpace(credential) == "" {
		return Tool{}, ErrMissingCredential
	}

	t := Tool{
		ID:         r.newID(),
		Name:       e.Label,
		Kind:       k,
		Credential: credential,
		Status:     StatusConnected,
	}

	r.mu.Lock()
	r.tools = append(r.tools, t)
	r.mu.Unlock()

	r.logger.Info("tool connected", "id", t.ID, "kind", k)
	return t, nil
}

// Remove disconnects the tool with id. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = slices.DeleteFunc(r.tools, func(t Tool) bool { return t.ID == id })
}

// List returns the connected tools.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tools)
}

// SeedDefaults connects the Gmail and Google Calendar samples.
func (r *Registry) SeedDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = append(r.tools,
		Tool{ID: "1", Name: "Gmail", Kind: KindGmail, Credential: "john.doe@gmail.com", Status: StatusConnected},
		Tool{ID: "2", Name: "Google Calendar", Kind: KindCalendar, Credential: "john.doe@gmail.com", Status: StatusConnected},
	)
}

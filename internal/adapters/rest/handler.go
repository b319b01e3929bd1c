package rest

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/medley-labs/medley/internal/core/ports"
	"github.com/medley-labs/medley/internal/core/services"
)

const sessionCookie = "medley_session"

// Handler manages the HTTP interface for the application.
type Handler struct {
	chat     *services.Chat        // Dependency on the Core Service
	sessions ports.SessionStore
	tokens   ports.TokenProvider
	history  ports.BuildRepository // may be nil when history is disabled
	router   *http.ServeMux        // Standard library router

	mu            sync.Mutex
	pendingStates map[string]struct{}
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(chat *services.Chat, sessions ports.SessionStore, tokens ports.TokenProvider, history ports.BuildRepository) *Handler {
	h := &Handler{
		chat:          chat,
		sessions:      sessions,
		tokens:        tokens,
		history:       history,
		router:        http.NewServeMux(),
		pendingStates: make(map[string]struct{}),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Authorization
	h.router.HandleFunc("GET /login", h.Login)
	h.router.HandleFunc("GET /callback", h.Callback)
	// Chat
	h.router.HandleFunc("POST /chat", h.Chat)
	// Build History
	h.router.HandleFunc("GET /builds", h.RecentBuilds)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Medley is live 🎶"})
}

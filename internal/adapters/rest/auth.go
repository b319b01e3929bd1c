package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Login handles GET /login
// It parks a one-time state value and sends the user to the authorization
// provider's consent screen.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	h.mu.Lock()
	h.pendingStates[state] = struct{}{}
	h.mu.Unlock()

	http.Redirect(w, r, h.tokens.AuthURL(state), http.StatusFound)
}

// Callback handles GET /callback
// It validates the state, exchanges the authorization code, creates a session
// holding the credential and hands the session id back in a cookie.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		writeError(w, http.StatusBadRequest, "authorization denied: "+errParam)
		return
	}

	state := r.URL.Query().Get("state")
	if !h.consumeState(state) {
		writeError(w, http.StatusBadRequest, "unknown state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	cred, err := h.tokens.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("code exchange failed")
		writeError(w, http.StatusBadGateway, "code exchange failed")
		return
	}

	session, err := h.sessions.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	if err := h.sessions.SaveCredential(r.Context(), session.ID, cred); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store credential")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Info().Str("session_id", session.ID).Msg("session authorized")
	http.Redirect(w, r, "/", http.StatusFound)
}

// consumeState removes the state if present. Each state is good for one
// callback only.
func (h *Handler) consumeState(state string) bool {
	if state == "" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.pendingStates[state]; !ok {
		return false
	}
	delete(h.pendingStates, state)
	return true
}

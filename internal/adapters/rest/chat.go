package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/medley-labs/medley/internal/core/domain"
)

const (
	errCodeAuthRequired    = "AUTH_REQUIRED"
	errCodeArtistNotFound  = "ARTIST_NOT_FOUND"
	errCodeNothingResolved = "NOTHING_RESOLVED"
	errCodeRefused         = "REQUEST_REFUSED"
)

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	var sessionID string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		sessionID = cookie.Value
	}

	reply, err := h.chat.HandleMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// writeChatError maps domain errors onto HTTP statuses. Provider failures
// pass through verbatim so the front end can show what the provider said.
func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	var artistErr *domain.ArtistNotFoundError
	var refusalErr *domain.RefusalError
	var provErr *domain.ProviderError

	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		w.Header().Set("Location", "/login")
		writeErrorWithCode(w, http.StatusUnauthorized, "authorization required", errCodeAuthRequired)
	case errors.As(err, &artistErr):
		writeErrorWithCode(w, http.StatusNotFound, artistErr.Body, errCodeArtistNotFound)
	case errors.Is(err, domain.ErrNothingResolved):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeNothingResolved)
	case errors.As(err, &refusalErr):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, refusalErr.Reason, errCodeRefused)
	case errors.As(err, &provErr):
		writeError(w, http.StatusBadGateway, provErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// RecentBuilds handles GET /builds
func (h *Handler) RecentBuilds(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotImplemented, "build history not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	records, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

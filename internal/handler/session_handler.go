package handler

import (
	"encoding/json"
	"net/http"

	"churro-kiosk/internal/model"
	"churro-kiosk/internal/session"

	"github.com/rs/zerolog"
)

// SessionHandler lets the auth collaborator install and drop the credential
// the engine submits orders with.
type SessionHandler struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *session.Manager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "session").Logger(),
	}
}

// SessionStatus reports whether a session is active without echoing the
// token back.
type SessionStatus struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id,omitempty"`
}

// Put handles PUT /api/session requests.
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var sess model.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if sess.UserID == "" || sess.Token == "" {
		writeError(w, http.StatusBadRequest, "user_id and token are required", h.logger)
		return
	}

	h.sessions.Set(sess)
	writeJSON(w, http.StatusOK, SessionStatus{Active: true, UserID: sess.UserID})
}

// Get handles GET /api/session requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Current()
	if sess == nil {
		writeJSON(w, http.StatusOK, SessionStatus{Active: false})
		return
	}
	writeJSON(w, http.StatusOK, SessionStatus{Active: true, UserID: sess.UserID})
}

// Delete handles DELETE /api/session requests.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear()
	writeJSON(w, http.StatusOK, SessionStatus{Active: false})
}

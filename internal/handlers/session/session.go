package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-console/internal/console"
	"storefront-console/internal/middleware"
	myErr "storefront-console/internal/types/errors"
)

// SessionHandler ручки консольных сессий
type SessionHandler struct {
	Logger   *zap.SugaredLogger
	Registry *console.Registry
}

func NewSessionHandler(l *zap.SugaredLogger, r *console.Registry) *SessionHandler {
	return &SessionHandler{
		Logger:   l,
		Registry: r,
	}
}

type OpenResponse struct {
	ID string `json:"id"`
}

// Open - POST /api/sessions
func (h *SessionHandler) Open(w http.ResponseWriter, r *http.Request) {
	s, err := h.Registry.Open(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err = json.NewEncoder(w).Encode(OpenResponse{ID: s.ID}); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
		return
	}

	h.Logger.Infof("opened console session %s", s.ID)
}

// Close - DELETE /api/sessions/{sid}
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	sid := mux.Vars(r)[middleware.SessionVar]

	if err := h.Registry.Close(r.Context(), sid); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DismissMessages - DELETE /api/sessions/{sid}/messages
func (h *SessionHandler) DismissMessages(w http.ResponseWriter, r *http.Request) {
	s, err := h.Registry.FromContext(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	s.DismissMessages()
	w.WriteHeader(http.StatusNoContent)
}

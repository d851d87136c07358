package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-console/internal/kafka"
	myErr "storefront-console/internal/types/errors"
)

type Handler struct {
	service ActivityService
	logger  *zap.SugaredLogger
}

func NewHandler(service ActivityService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetActivity - GET /activity/{kind}/{entity_id}, kind - advertisement или order
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind := kafka.EntityKind(vars["kind"])
	entityID := vars["entity_id"]
	if !kind.Valid() || entityID == "" {
		myErr.SendErrorTo(w, myErr.ErrBadID, myErr.StatusCode(myErr.ErrBadID), h.logger)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), kind, entityID)
	if err != nil {
		h.logger.Errorf("Failed to get activity of %s %s: %v", kind, entityID, err)
		myErr.SendErrorTo(w, errors.New("internal server error"), http.StatusInternalServerError, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

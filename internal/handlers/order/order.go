package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-console/internal/console"
	"storefront-console/internal/filter"
	"storefront-console/internal/order"
	myErr "storefront-console/internal/types/errors"
	typesOrder "storefront-console/internal/types/order"
	typesPage "storefront-console/internal/types/pagination"
)

// OrderHandler ручки списка заказов
type OrderHandler struct {
	Logger   *zap.SugaredLogger
	Registry *console.Registry
}

func NewOrderHandler(l *zap.SugaredLogger, r *console.Registry) *OrderHandler {
	return &OrderHandler{
		Logger:   l,
		Registry: r,
	}
}

// List - GET /api/sessions/{sid}/orders?adId=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	s.Orders.SetLocation(r.URL.Query().Get("adId"))
	_ = s.Orders.EnsureLoaded() // nolint:errcheck
	h.send(w, http.StatusOK, s.Orders.Snapshot())
}

// Reload - POST /api/sessions/{sid}/orders/reload
func (h *OrderHandler) Reload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	_ = s.Orders.Load() // nolint:errcheck
	h.send(w, http.StatusOK, s.Orders.Snapshot())
}

// SetFilter - PUT /api/sessions/{sid}/orders/filter
func (h *OrderHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var form typesOrder.Filter
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	var status *order.Status
	if form.Status != nil {
		st := order.Status(*form.Status)
		status = &st
	}
	if err := s.Orders.SetFilter(status, filter.SortDirection(form.Sort)); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	h.persist(r, s)
	h.send(w, http.StatusOK, s.Orders.Snapshot())
}

// SetPagination - PUT /api/sessions/{sid}/orders/pagination
func (h *OrderHandler) SetPagination(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var form typesPage.Update
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if form.PageSize != nil {
		s.Orders.SetPageSizeInput(string(*form.PageSize))
	}
	if form.Page != nil {
		s.Orders.SetPage(*form.Page)
	}
	h.persist(r, s)
	h.send(w, http.StatusOK, s.Orders.Snapshot())
}

// Complete - POST /api/sessions/{sid}/orders/{id}/complete
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := s.Orders.Complete(r.Context(), id); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	h.send(w, http.StatusOK, s.Orders.Snapshot())
	h.Logger.Infof("session %s completed order %s", s.ID, id)
}

func (h *OrderHandler) session(w http.ResponseWriter, r *http.Request) (*console.Session, bool) {
	s, err := h.Registry.FromContext(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return nil, false
	}
	return s, true
}

func (h *OrderHandler) persist(r *http.Request, s *console.Session) {
	if err := h.Registry.Persist(r.Context(), s); err != nil {
		h.Logger.Warnf("failed to persist preferences of session %s: %v", s.ID, err)
	}
}

func (h *OrderHandler) send(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-console/internal/console"
	"storefront-console/internal/filter"
	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
	typesPage "storefront-console/internal/types/pagination"
)

// AdvertisementHandler ручки списка и карточки объявлений
type AdvertisementHandler struct {
	Logger   *zap.SugaredLogger
	Registry *console.Registry
}

func NewAdvertisementHandler(l *zap.SugaredLogger, r *console.Registry) *AdvertisementHandler {
	return &AdvertisementHandler{
		Logger:   l,
		Registry: r,
	}
}

// List - GET /api/sessions/{sid}/advertisements
// Первый запрос загружает коллекцию; ошибка загрузки видна в message страницы.
func (h *AdvertisementHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	_ = s.Listings.EnsureLoaded() // nolint:errcheck
	h.send(w, http.StatusOK, s.Listings.Snapshot())
}

// Reload - POST /api/sessions/{sid}/advertisements/reload
func (h *AdvertisementHandler) Reload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := s.Listings.Load(); errors.Is(err, myErr.ErrCanceled) {
		h.Logger.Debugf("advertisements reload of session %s superseded", s.ID)
	}
	h.send(w, http.StatusOK, s.Listings.Snapshot())
}

// SetFilter - PUT /api/sessions/{sid}/advertisements/filter
func (h *AdvertisementHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var f filter.AdvertisementFilter
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	s.Listings.SetFilter(f)
	h.persist(r, s)
	h.send(w, http.StatusOK, s.Listings.Snapshot())
}

// SetPagination - PUT /api/sessions/{sid}/advertisements/pagination
func (h *AdvertisementHandler) SetPagination(w http.ResponseWriter, r *http.Request) {
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
		s.Listings.SetPageSizeInput(string(*form.PageSize))
	}
	if form.Page != nil {
		s.Listings.SetPage(*form.Page)
	}
	h.persist(r, s)
	h.send(w, http.StatusOK, s.Listings.Snapshot())
}

// Create - POST /api/sessions/{sid}/advertisements
func (h *AdvertisementHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var form types.CreateAdvertisement
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	ad, err := s.Listings.Create(r.Context(), form)
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	h.send(w, http.StatusCreated, ad)
	h.Logger.Infof("session %s created advertisement %s", s.ID, ad.ID)
}

// Delete - DELETE /api/sessions/{sid}/advertisements/{id}
func (h *AdvertisementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := s.Listings.Delete(r.Context(), id); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	h.send(w, http.StatusOK, s.Listings.Snapshot())
	h.Logger.Infof("session %s deleted advertisement %s", s.ID, id)
}

// Detail - GET /api/sessions/{sid}/advertisement/{id}
func (h *AdvertisementHandler) Detail(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	_ = s.Detail.EnsureOpen(mux.Vars(r)["id"]) // nolint:errcheck

	page := s.Detail.Snapshot()
	status := http.StatusOK
	switch page.State {
	case console.DetailNotFound:
		status = http.StatusNotFound
	case console.DetailFailed:
		status = http.StatusBadGateway
	}
	h.send(w, status, page)
}

// Edit - POST /api/sessions/{sid}/advertisement/{id}/edit
func (h *AdvertisementHandler) Edit(w http.ResponseWriter, r *http.Request) {
	h.onDetail(w, r, func(v *console.DetailView) error {
		return v.BeginEdit()
	})
}

// Draft - PUT /api/sessions/{sid}/advertisement/{id}/draft
func (h *AdvertisementHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var form types.UpdateAdvertisement
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	h.onDetail(w, r, func(v *console.DetailView) error {
		return v.SetDraft(form)
	})
}

// Save - POST /api/sessions/{sid}/advertisement/{id}/save
func (h *AdvertisementHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.onDetail(w, r, func(v *console.DetailView) error {
		_, err := v.Save(r.Context())
		return err
	})
}

// Cancel - POST /api/sessions/{sid}/advertisement/{id}/cancel
func (h *AdvertisementHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.onDetail(w, r, func(v *console.DetailView) error {
		v.Cancel()
		return nil
	})
}

// ToggleDescription - POST /api/sessions/{sid}/advertisement/{id}/description
func (h *AdvertisementHandler) ToggleDescription(w http.ResponseWriter, r *http.Request) {
	h.onDetail(w, r, func(v *console.DetailView) error {
		v.ToggleDescription()
		return nil
	})
}

// onDetail выполняет действие над открытой карточкой {id} и отдает ее состояние
func (h *AdvertisementHandler) onDetail(w http.ResponseWriter, r *http.Request, action func(v *console.DetailView) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	if !s.Detail.Showing(mux.Vars(r)["id"]) {
		myErr.SendErrorTo(w, myErr.ErrNotFound, http.StatusNotFound, h.Logger)
		return
	}

	if err := action(s.Detail); err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return
	}

	h.send(w, http.StatusOK, s.Detail.Snapshot())
}

func (h *AdvertisementHandler) session(w http.ResponseWriter, r *http.Request) (*console.Session, bool) {
	s, err := h.Registry.FromContext(r.Context())
	if err != nil {
		myErr.SendErrorTo(w, err, myErr.StatusCode(err), h.Logger)
		return nil, false
	}
	return s, true
}

func (h *AdvertisementHandler) persist(r *http.Request, s *console.Session) {
	if err := h.Registry.Persist(r.Context(), s); err != nil {
		h.Logger.Warnf("failed to persist preferences of session %s: %v", s.ID, err)
	}
}

func (h *AdvertisementHandler) send(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Warnw("error writing response", "err", err)
	}
}

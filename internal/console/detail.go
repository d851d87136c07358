package console

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/mutation"
	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
)

type DetailState string

const (
	DetailLoading  DetailState = "loading"
	DetailReady    DetailState = "ready"
	DetailNotFound DetailState = "notFound"
	DetailFailed   DetailState = "failed"
)

// DescriptionLimit - длина описания, после которой оно сворачивается
const DescriptionLimit = 100

// DetailView - карточка одного объявления с редактированием.
// Пока идет редактирование, хранятся черновик и последняя подтвержденная версия:
// отмена возвращает подтвержденную без повторного запроса.
type DetailView struct {
	mu sync.Mutex

	repo        advertisement.AdvertisementRepo
	coordinator *mutation.Coordinator
	listings    *ListingsView
	logger      *zap.SugaredLogger

	guard *fetchGuard
	close context.CancelFunc

	id        string
	state     DetailState
	confirmed *advertisement.Advertisement

	editing     bool
	editGen     uint64
	draft       types.UpdateAdvertisement
	fieldErrors map[string]string
	saving      bool

	expanded bool
	message  *Message
}

// NewDetailView - listings получает подтвержденные правки, может быть nil
func NewDetailView(
	repo advertisement.AdvertisementRepo,
	coordinator *mutation.Coordinator,
	listings *ListingsView,
	logger *zap.SugaredLogger,
) *DetailView {
	lifetime, cancel := context.WithCancel(context.Background())

	return &DetailView{
		repo:        repo,
		coordinator: coordinator,
		listings:    listings,
		logger:      logger,
		guard:       newFetchGuard(lifetime),
		close:       cancel,
	}
}

// Open загружает объявление id. Переход к другому объявлению отменяет
// незавершенную загрузку и сбрасывает редактирование.
func (v *DetailView) Open(id string) error {
	v.mu.Lock()
	ctx, gen := v.guard.begin()
	v.id = id
	v.state = DetailLoading
	v.confirmed = nil
	v.resetEdit()
	v.expanded = false
	v.message = nil
	v.mu.Unlock()

	ad, err := v.repo.GetAdvertisement(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.guard.current(gen) {
		return myErr.ErrCanceled
	}
	v.guard.finish(gen)

	switch {
	case err == nil:
		v.state = DetailReady
		v.confirmed = ad
	case errors.Is(err, myErr.ErrCanceled):
		return err
	case errors.Is(err, myErr.ErrNotFound):
		v.state = DetailNotFound
	default:
		v.logger.Errorf("failed to load advertisement %s: %v", id, err)
		v.state = DetailFailed
		v.message = errorMessage(msgLoadAdvertisementFailed)
	}

	return err
}

// EnsureOpen открывает id, если сейчас показано другое объявление
// или прошлая загрузка не удалась
func (v *DetailView) EnsureOpen(id string) error {
	v.mu.Lock()
	same := v.id == id && (v.state == DetailReady || v.state == DetailLoading)
	v.mu.Unlock()

	if same {
		return nil
	}
	return v.Open(id)
}

// Showing - открыто ли сейчас объявление id
func (v *DetailView) Showing(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.id == id
}

func (v *DetailView) BeginEdit() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state != DetailReady || v.confirmed == nil {
		return myErr.ErrNotFound
	}
	if v.editing {
		return nil
	}

	v.editing = true
	v.editGen++
	v.draft = types.UpdateAdvertisement{
		Name:        v.confirmed.Name,
		Description: v.confirmed.Description,
		Price:       types.PriceInput(strconv.FormatFloat(v.confirmed.Price, 'f', -1, 64)),
		ImageURL:    v.confirmed.ImageURL,
	}
	v.fieldErrors = nil

	return nil
}

// SetDraft заменяет черновик целиком
func (v *DetailView) SetDraft(draft types.UpdateAdvertisement) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.editing {
		return myErr.ErrNotEditing
	}
	v.draft = draft
	return nil
}

// Save отправляет черновик. При ошибке валидации бэкенд не вызывается,
// ошибки лежат у полей; при ошибке бэкенда редактирование продолжается.
func (v *DetailView) Save(ctx context.Context) (*advertisement.Advertisement, error) {
	v.mu.Lock()
	if !v.editing {
		v.mu.Unlock()
		return nil, myErr.ErrNotEditing
	}
	id := v.id
	gen := v.editGen
	draft := v.draft
	v.saving = true
	v.fieldErrors = nil
	v.mu.Unlock()

	var target mutation.AdvertisementStore
	if v.listings != nil {
		target = v.listings.Target()
	}
	updated, err := v.coordinator.UpdateAdvertisement(ctx, id, draft, target)

	v.mu.Lock()
	defer v.mu.Unlock()

	sameEdit := v.id == id && v.editGen == gen
	if sameEdit {
		v.saving = false
	}

	if err != nil {
		if !sameEdit {
			return nil, err
		}

		var ve *myErr.ValidationError
		switch {
		case errors.As(err, &ve):
			v.fieldErrors = ve.Fields
		case errors.Is(err, myErr.ErrCanceled):
		default:
			v.message = errorMessage(msgUpdateFailed)
		}
		return nil, err
	}

	// бэкенд подтвердил, даже если продавец уже ушел с карточки
	if v.id == id {
		v.confirmed = updated
	}
	if sameEdit {
		v.resetEdit()
		v.message = successMessage(msgUpdated)
	}

	return updated, nil
}

// Cancel выходит из редактирования, черновик отбрасывается
func (v *DetailView) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resetEdit()
}

func (v *DetailView) ToggleDescription() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.expanded = !v.expanded
}

func (v *DetailView) DismissMessage() {
	v.mu.Lock()
	v.message = nil
	v.mu.Unlock()
}

func (v *DetailView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.guard.stop()
	v.close()
}

// resetEdit вызывается под mu
func (v *DetailView) resetEdit() {
	if v.editing {
		v.editGen++
	}
	v.editing = false
	v.draft = types.UpdateAdvertisement{}
	v.fieldErrors = nil
	v.saving = false
}

type DetailPage struct {
	ID            string                       `json:"id"`
	State         DetailState                  `json:"state"`
	Advertisement *advertisement.Advertisement `json:"advertisement,omitempty"`
	CanDelete     bool                         `json:"canDelete"`
	Description   string                       `json:"description"`
	Collapsible   bool                         `json:"collapsible"`
	Expanded      bool                         `json:"expanded"`
	Editing       bool                         `json:"editing"`
	Draft         *types.UpdateAdvertisement   `json:"draft,omitempty"`
	FieldErrors   map[string]string            `json:"fieldErrors,omitempty"`
	Saving        bool                         `json:"saving"`
	NotFound      string                       `json:"notFound,omitempty"`
	Message       *Message                     `json:"message,omitempty"`
}

func (v *DetailView) Snapshot() DetailPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := DetailPage{
		ID:       v.id,
		State:    v.state,
		Expanded: v.expanded,
		Editing:  v.editing,
		Saving:   v.saving,
		Message:  v.message,
	}

	if v.confirmed != nil {
		ad := *v.confirmed
		out.Advertisement = &ad
		out.CanDelete = ad.CanDelete()

		excerpt, collapsible := advertisement.Excerpt(ad.Description, DescriptionLimit)
		out.Collapsible = collapsible
		out.Description = ad.Description
		if collapsible && !v.expanded {
			out.Description = excerpt
		}
	}

	if v.editing {
		draft := v.draft
		out.Draft = &draft
		out.FieldErrors = v.fieldErrors
	}

	if v.state == DetailNotFound {
		out.NotFound = msgAdvertisementNotFound
	}

	return out
}

package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/filter"
	"storefront-console/internal/mutation"
	"storefront-console/internal/pagination"
	"storefront-console/internal/store"
	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
)

// ListingsView - список объявлений продавца: коллекция, фильтры и пагинация одной сессии.
// Все изменения состояния идут под mu; запросы к бэкенду выполняются без него.
type ListingsView struct {
	mu sync.Mutex

	repo        advertisement.AdvertisementRepo
	coordinator *mutation.Coordinator
	logger      *zap.SugaredLogger

	store  *store.Store[advertisement.Advertisement]
	filter filter.AdvertisementFilter
	pager  *pagination.Controller
	guard  *fetchGuard
	close  context.CancelFunc

	loading bool
	loaded  bool
	message *Message

	// правки, подтвержденные бэкендом во время загрузки; накладываются на ее результат
	confirmed []func(*store.Store[advertisement.Advertisement])
}

func NewListingsView(
	repo advertisement.AdvertisementRepo,
	coordinator *mutation.Coordinator,
	pager *pagination.Controller,
	logger *zap.SugaredLogger,
) *ListingsView {
	lifetime, cancel := context.WithCancel(context.Background())

	return &ListingsView{
		repo:        repo,
		coordinator: coordinator,
		logger:      logger,
		store:       store.New(func(a advertisement.Advertisement) string { return a.ID }),
		pager:       pager,
		guard:       newFetchGuard(lifetime),
		close:       cancel,
	}
}

// Load перечитывает коллекцию. Более поздний Load отменяет этот; отмененная
// загрузка возвращает ErrCanceled и ничего не меняет. При ошибке коллекция
// становится пустой, а ошибка показывается сообщением.
func (v *ListingsView) Load() error {
	v.mu.Lock()
	ctx, gen := v.guard.begin()
	v.loading = true
	v.confirmed = nil
	v.mu.Unlock()

	ads, err := v.repo.FetchAdvertisements(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.guard.current(gen) {
		return myErr.ErrCanceled
	}
	v.guard.finish(gen)
	v.loading = false
	v.loaded = true
	confirmed := v.confirmed
	v.confirmed = nil

	if err != nil {
		if errors.Is(err, myErr.ErrCanceled) {
			return err
		}
		v.logger.Errorf("failed to load advertisements: %v", err)
		v.store.Replace(nil)
		v.message = errorMessage(msgLoadAdvertisementsFailed)
		v.reconcile()
		return err
	}

	v.store.Replace(ads)
	// ответ мог уйти с бэкенда раньше подтвержденных правок
	for _, apply := range confirmed {
		apply(v.store)
	}
	v.reconcile()
	return nil
}

// EnsureLoaded загружает коллекцию при первом открытии представления
func (v *ListingsView) EnsureLoaded() error {
	v.mu.Lock()
	needed := !v.loaded && !v.loading
	v.mu.Unlock()

	if !needed {
		return nil
	}
	return v.Load()
}

// SetFilter заменяет фильтры. Смена строки поиска возвращает на первую страницу,
// для порогов номер страницы только поправляется, если она опустела.
func (v *ListingsView) SetFilter(f filter.AdvertisementFilter) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if f.Name != v.filter.Name {
		v.pager.Reset()
	}
	v.filter = f
	v.reconcile()
}

func (v *ListingsView) SetPageSizeInput(input string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	applied := v.pager.SetPageSizeInput(input)
	v.reconcile()
	return applied
}

func (v *ListingsView) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pager.SetPage(n)
	v.reconcile()
}

// Create создает объявление; в коллекцию оно попадает только после ответа бэкенда
func (v *ListingsView) Create(ctx context.Context, form types.CreateAdvertisement) (*advertisement.Advertisement, error) {
	ad, err := v.coordinator.CreateAdvertisement(ctx, form, v.Target())
	if err != nil {
		v.fail(err, msgCreateFailed)
		return nil, err
	}
	return ad, nil
}

// Delete удаляет объявление по id. Если бэкенд не подтвердил удаление,
// объявление остается в списке.
func (v *ListingsView) Delete(ctx context.Context, id string) error {
	v.mu.Lock()
	ad, ok := v.store.Get(id)
	v.mu.Unlock()

	if !ok {
		return myErr.ErrNotFound
	}

	if err := v.coordinator.DeleteAdvertisement(ctx, ad, v.Target()); err != nil {
		v.fail(err, msgDeleteFailed)
		return err
	}
	return nil
}

// fail показывает сообщение об ошибке мутации. Ошибки валидации
// показываются у полей формы, отмена - молча.
func (v *ListingsView) fail(err error, text string) {
	if errors.Is(err, myErr.ErrValidation) || errors.Is(err, myErr.ErrCanceled) ||
		errors.Is(err, myErr.ErrNotDeletable) {
		return
	}

	v.mu.Lock()
	v.message = errorMessage(text)
	v.mu.Unlock()
}

func (v *ListingsView) DismissMessage() {
	v.mu.Lock()
	v.message = nil
	v.mu.Unlock()
}

// Target - коллекция представления для координатора мутаций.
// Каждое изменение берет мьютекс и пересчитывает страницу.
func (v *ListingsView) Target() mutation.AdvertisementStore {
	return lockedStore{v: v}
}

// Close отменяет загрузки; после Close результаты запросов не применяются
func (v *ListingsView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.guard.stop()
	v.close()
}

// reconcile вызывается под mu после любого изменения длины видимого списка
func (v *ListingsView) reconcile() {
	v.pager.Reconcile(len(filter.Advertisements(v.store.Snapshot(), v.filter)))
}

type lockedStore struct {
	v *ListingsView
}

func (l lockedStore) Insert(a advertisement.Advertisement) {
	l.apply(func(s *store.Store[advertisement.Advertisement]) { s.Insert(a) })
}

func (l lockedStore) Remove(id string) bool {
	var removed bool
	l.apply(func(s *store.Store[advertisement.Advertisement]) { removed = s.Remove(id) })
	return removed
}

func (l lockedStore) Update(id string, patch func(advertisement.Advertisement) advertisement.Advertisement) bool {
	var updated bool
	l.apply(func(s *store.Store[advertisement.Advertisement]) { updated = s.Update(id, patch) })
	return updated
}

// apply применяет подтвержденную правку сейчас и запоминает ее для идущей загрузки
func (l lockedStore) apply(edit func(*store.Store[advertisement.Advertisement])) {
	l.v.mu.Lock()
	defer l.v.mu.Unlock()

	edit(l.v.store)
	if l.v.loading {
		l.v.confirmed = append(l.v.confirmed, edit)
	}
	l.v.reconcile()
}

// ListingCard - объявление на странице списка
type ListingCard struct {
	advertisement.Advertisement
	CanDelete bool `json:"canDelete"`
}

type ListingsPage struct {
	Items         []ListingCard              `json:"items"`
	Page          int                        `json:"page"`
	PageCount     int                        `json:"pageCount"`
	PageSize      int                        `json:"pageSize"`
	PageSizeInput string                     `json:"pageSizeInput"`
	Total         int                        `json:"total"`
	Filter        filter.AdvertisementFilter `json:"filter"`
	Loading       bool                       `json:"loading"`
	Empty         bool                       `json:"empty"`
	EmptyMessage  string                     `json:"emptyMessage,omitempty"`
	Message       *Message                   `json:"message,omitempty"`
}

// Snapshot выводит текущую страницу из коллекции, фильтров и пагинации
func (v *ListingsView) Snapshot() ListingsPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := filter.Advertisements(v.store.Snapshot(), v.filter)
	page := pagination.Slice(visible, v.pager.PageSize(), v.pager.PageNumber())

	items := make([]ListingCard, 0, len(page))
	for _, a := range page {
		items = append(items, ListingCard{Advertisement: a, CanDelete: a.CanDelete()})
	}

	out := ListingsPage{
		Items:         items,
		Page:          v.pager.PageNumber(),
		PageCount:     pagination.PageCount(len(visible), v.pager.PageSize()),
		PageSize:      v.pager.PageSize(),
		PageSizeInput: v.pager.Input(),
		Total:         len(visible),
		Filter:        v.filter,
		Loading:       v.loading,
		Empty:         len(visible) == 0,
		Message:       v.message,
	}
	if out.Empty && !v.loading {
		out.EmptyMessage = msgNoAdvertisements
	}

	return out
}

// ListingsPreferences - то, что переживает перезапуск сервиса
type ListingsPreferences struct {
	Filter        filter.AdvertisementFilter `json:"filter"`
	PageSizeInput string                     `json:"pageSizeInput"`
	Page          int                        `json:"page"`
}

func (v *ListingsView) Preferences() ListingsPreferences {
	v.mu.Lock()
	defer v.mu.Unlock()

	return ListingsPreferences{
		Filter:        v.filter,
		PageSizeInput: v.pager.Input(),
		Page:          v.pager.PageNumber(),
	}
}

// Restore применяет сохраненные настройки до первой загрузки.
// Номер страницы поправится при загрузке, если страниц станет меньше.
func (v *ListingsView) Restore(p ListingsPreferences) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.filter = p.Filter
	v.pager.SetPageSizeInput(p.PageSizeInput)
	v.pager.SetPage(p.Page)
}

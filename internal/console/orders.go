package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront-console/internal/filter"
	"storefront-console/internal/mutation"
	"storefront-console/internal/order"
	"storefront-console/internal/pagination"
	"storefront-console/internal/store"
	myErr "storefront-console/internal/types/errors"
)

// OrdersView - заказы продавца. Любая смена фильтра, сортировки, адреса
// или коллекции возвращает на первую страницу.
type OrdersView struct {
	mu sync.Mutex

	repo        order.OrderRepo
	coordinator *mutation.Coordinator
	logger      *zap.SugaredLogger

	store  *store.Store[order.Order]
	filter filter.OrderFilter
	sort   filter.SortDirection
	pager  *pagination.Controller
	guard  *fetchGuard
	close  context.CancelFunc

	loading bool
	loaded  bool
	message *Message
}

func NewOrdersView(
	repo order.OrderRepo,
	coordinator *mutation.Coordinator,
	pager *pagination.Controller,
	logger *zap.SugaredLogger,
) *OrdersView {
	lifetime, cancel := context.WithCancel(context.Background())

	return &OrdersView{
		repo:        repo,
		coordinator: coordinator,
		logger:      logger,
		store:       store.New(func(o order.Order) string { return o.ID }),
		sort:        filter.Ascending,
		pager:       pager,
		guard:       newFetchGuard(lifetime),
		close:       cancel,
	}
}

// Load перечитывает заказы; семантика отмены как у ListingsView.Load
func (v *OrdersView) Load() error {
	v.mu.Lock()
	ctx, gen := v.guard.begin()
	v.loading = true
	v.mu.Unlock()

	orders, err := v.repo.FetchOrders(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.guard.current(gen) {
		return myErr.ErrCanceled
	}
	v.guard.finish(gen)
	v.loading = false
	v.loaded = true

	if err != nil {
		if errors.Is(err, myErr.ErrCanceled) {
			return err
		}
		v.logger.Errorf("failed to load orders: %v", err)
		v.store.Replace(nil)
		v.message = errorMessage(msgLoadOrdersFailed)
		v.pager.Reset()
		return err
	}

	v.store.Replace(orders)
	v.pager.Reset()
	return nil
}

func (v *OrdersView) EnsureLoaded() error {
	v.mu.Lock()
	needed := !v.loaded && !v.loading
	v.mu.Unlock()

	if !needed {
		return nil
	}
	return v.Load()
}

// SetLocation - фильтр по объявлению из адреса (?adId=). Пустая строка снимает фильтр.
func (v *OrdersView) SetLocation(advertisementID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.filter.AdvertisementID == advertisementID {
		return
	}
	v.filter.AdvertisementID = advertisementID
	v.pager.Reset()
}

// SetStatus - nil показывает заказы во всех статусах
func (v *OrdersView) SetStatus(status *order.Status) error {
	if status != nil && !status.Valid() {
		return myErr.NewValidationError(map[string]string{"status": "unknown order status"})
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if status != nil {
		s := *status
		status = &s
	}
	v.filter.Status = status
	v.pager.Reset()
	return nil
}

// SetFilter меняет статус и направление сортировки вместе. Пустое направление
// оставляет текущее. Если хоть одно поле некорректно, не меняется ничего.
func (v *OrdersView) SetFilter(status *order.Status, dir filter.SortDirection) error {
	fields := make(map[string]string)
	if status != nil && !status.Valid() {
		fields["status"] = "unknown order status"
	}
	if dir != "" && !dir.Valid() {
		fields["sort"] = "sort must be asc or desc"
	}
	if len(fields) > 0 {
		return myErr.NewValidationError(fields)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if status != nil {
		s := *status
		status = &s
	}
	v.filter.Status = status
	if dir != "" {
		v.sort = dir
	}
	v.pager.Reset()
	return nil
}

func (v *OrdersView) SetSort(dir filter.SortDirection) error {
	if !dir.Valid() {
		return myErr.NewValidationError(map[string]string{"sort": "sort must be asc or desc"})
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.sort = dir
	v.pager.Reset()
	return nil
}

func (v *OrdersView) SetPageSizeInput(input string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	applied := v.pager.SetPageSizeInput(input)
	v.reconcile()
	return applied
}

func (v *OrdersView) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pager.SetPage(n)
	v.reconcile()
}

// Complete завершает заказ и после подтверждения перечитывает коллекцию
func (v *OrdersView) Complete(ctx context.Context, id string) error {
	v.mu.Lock()
	o, ok := v.store.Get(id)
	v.mu.Unlock()

	if !ok {
		return myErr.ErrNotFound
	}

	if _, err := v.coordinator.CompleteOrder(ctx, o); err != nil {
		if !errors.Is(err, myErr.ErrCanceled) && !errors.Is(err, myErr.ErrNotCompletable) {
			v.mu.Lock()
			v.message = errorMessage(msgCompleteFailed)
			v.mu.Unlock()
		}
		return err
	}

	// ошибку загрузки представление уже показало сообщением
	if err := v.Load(); err != nil && !errors.Is(err, myErr.ErrCanceled) {
		v.logger.Warnf("orders reload after completing %s failed: %v", id, err)
	}
	return nil
}

func (v *OrdersView) DismissMessage() {
	v.mu.Lock()
	v.message = nil
	v.mu.Unlock()
}

func (v *OrdersView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.guard.stop()
	v.close()
}

func (v *OrdersView) visible() []order.Order {
	return filter.Orders(v.store.Snapshot(), v.filter, v.sort)
}

// reconcile вызывается под mu
func (v *OrdersView) reconcile() {
	v.pager.Reconcile(len(v.visible()))
}

type OrderCard struct {
	order.Order
	StatusTitle string `json:"statusTitle"`
	ItemCount   int    `json:"itemCount"`
	CanComplete bool   `json:"canComplete"`
}

type StatusOption struct {
	Value order.Status `json:"value"`
	Title string       `json:"title"`
}

type OrdersPage struct {
	Items           []OrderCard          `json:"items"`
	Page            int                  `json:"page"`
	PageCount       int                  `json:"pageCount"`
	PageSize        int                  `json:"pageSize"`
	PageSizeInput   string               `json:"pageSizeInput"`
	Total           int                  `json:"total"`
	Status          *order.Status        `json:"status,omitempty"`
	Statuses        []StatusOption       `json:"statuses"`
	Sort            filter.SortDirection `json:"sort"`
	AdvertisementID string               `json:"advertisementId,omitempty"`
	ShowReturn      bool                 `json:"showReturn"`
	Loading         bool                 `json:"loading"`
	Empty           bool                 `json:"empty"`
	EmptyMessage    string               `json:"emptyMessage,omitempty"`
	Message         *Message             `json:"message,omitempty"`
}

func (v *OrdersView) Snapshot() OrdersPage {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := v.visible()
	page := pagination.Slice(visible, v.pager.PageSize(), v.pager.PageNumber())

	items := make([]OrderCard, 0, len(page))
	for _, o := range page {
		items = append(items, OrderCard{
			Order:       o,
			StatusTitle: o.Status.Title(),
			ItemCount:   len(o.Items),
			CanComplete: o.CanComplete(),
		})
	}

	statuses := make([]StatusOption, 0, len(order.Statuses()))
	for _, s := range order.Statuses() {
		statuses = append(statuses, StatusOption{Value: s, Title: s.Title()})
	}

	out := OrdersPage{
		Items:           items,
		Page:            v.pager.PageNumber(),
		PageCount:       pagination.PageCount(len(visible), v.pager.PageSize()),
		PageSize:        v.pager.PageSize(),
		PageSizeInput:   v.pager.Input(),
		Total:           len(visible),
		Status:          v.filter.Status,
		Statuses:        statuses,
		Sort:            v.sort,
		AdvertisementID: v.filter.AdvertisementID,
		ShowReturn:      v.filter.AdvertisementID != "",
		Loading:         v.loading,
		Empty:           len(visible) == 0,
		Message:         v.message,
	}
	if out.Empty && !v.loading {
		out.EmptyMessage = msgNoOrders
		if v.filter.AdvertisementID != "" {
			out.EmptyMessage = msgNoOrdersForAdvertisement
		}
	}

	return out
}

// OrdersPreferences - адрес (adId) не сохраняется, он приходит с каждым запросом
type OrdersPreferences struct {
	Status        *order.Status        `json:"status,omitempty"`
	Sort          filter.SortDirection `json:"sort"`
	PageSizeInput string               `json:"pageSizeInput"`
}

func (v *OrdersView) Preferences() OrdersPreferences {
	v.mu.Lock()
	defer v.mu.Unlock()

	return OrdersPreferences{
		Status:        v.filter.Status,
		Sort:          v.sort,
		PageSizeInput: v.pager.Input(),
	}
}

func (v *OrdersView) Restore(p OrdersPreferences) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if p.Status != nil && p.Status.Valid() {
		s := *p.Status
		v.filter.Status = &s
	}
	if p.Sort.Valid() {
		v.sort = p.Sort
	}
	v.pager.SetPageSizeInput(p.PageSizeInput)
	v.pager.Reset()
}

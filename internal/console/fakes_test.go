package console

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/mutation"
	"storefront-console/internal/order"
	"storefront-console/internal/pagination"
	myErr "storefront-console/internal/types/errors"
	typesOrder "storefront-console/internal/types/order"
)

// fakeAdvertisementRepo - бэкенд объявлений в памяти
type fakeAdvertisementRepo struct {
	mu sync.Mutex

	ads      []advertisement.Advertisement
	fetchErr error
	getErr   error
	mutErr   error
	nextID   int

	lastPatch   advertisement.Patch
	lastCreated advertisement.NewAdvertisement
	fetchCalls  int
}

func (f *fakeAdvertisementRepo) FetchAdvertisements(ctx context.Context) ([]advertisement.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]advertisement.Advertisement, len(f.ads))
	copy(out, f.ads)
	return out, nil
}

func (f *fakeAdvertisementRepo) GetAdvertisement(ctx context.Context, id string) (*advertisement.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.ads {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, myErr.ErrNotFound
}

func (f *fakeAdvertisementRepo) CreateAdvertisement(ctx context.Context, a advertisement.NewAdvertisement) (*advertisement.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastCreated = a
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.nextID++
	created := advertisement.Advertisement{
		ID:            "new-" + strconv.Itoa(f.nextID),
		Name:          a.Name,
		Description:   a.Description,
		Price:         a.Price,
		ImageURL:      a.ImageURL,
		Views:         a.Views,
		Likes:         a.Likes,
		CreatedByUser: a.CreatedByUser,
	}
	f.ads = append(f.ads, created)
	return &created, nil
}

func (f *fakeAdvertisementRepo) UpdateAdvertisement(ctx context.Context, id string, p advertisement.Patch) (*advertisement.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastPatch = p
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	for i, a := range f.ads {
		if a.ID == id {
			f.ads[i] = p.Apply(a)
			updated := f.ads[i]
			return &updated, nil
		}
	}
	return nil, myErr.ErrNotFound
}

func (f *fakeAdvertisementRepo) DeleteAdvertisement(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.mutErr != nil {
		return f.mutErr
	}
	for i, a := range f.ads {
		if a.ID == id {
			f.ads = append(f.ads[:i], f.ads[i+1:]...)
			return nil
		}
	}
	return myErr.ErrNotFound
}

// fakeOrderRepo - бэкенд заказов в памяти
type fakeOrderRepo struct {
	mu sync.Mutex

	orders    []order.Order
	fetchErr  error
	updateErr error

	lastUpdate typesOrder.UpdateStatus
}

func (f *fakeOrderRepo) FetchOrders(ctx context.Context) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]order.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, id string, patch typesOrder.UpdateStatus) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastUpdate = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, o := range f.orders {
		if o.ID == id {
			f.orders[i].Status = order.Status(patch.Status)
			updated := f.orders[i]
			return &updated, nil
		}
	}
	return nil, myErr.ErrNotFound
}

// gatedAdvertisementRepo отвечает на i-ю загрузку только когда в gates[i] придет результат.
// Контекст запроса игнорируется: ответ "приходит" даже после отмены.
type gatedAdvertisementRepo struct {
	fakeAdvertisementRepo

	gates   []chan []advertisement.Advertisement
	started chan int

	callMu sync.Mutex
	calls  int
	ctxs   []context.Context
}

func newGatedAdvertisementRepo(n int) *gatedAdvertisementRepo {
	g := &gatedAdvertisementRepo{started: make(chan int, n)}
	for i := 0; i < n; i++ {
		g.gates = append(g.gates, make(chan []advertisement.Advertisement, 1))
	}
	return g
}

func (g *gatedAdvertisementRepo) FetchAdvertisements(ctx context.Context) ([]advertisement.Advertisement, error) {
	g.callMu.Lock()
	i := g.calls
	g.calls++
	g.ctxs = append(g.ctxs, ctx)
	g.callMu.Unlock()

	g.started <- i
	return <-g.gates[i], nil
}

func (g *gatedAdvertisementRepo) ctx(i int) context.Context {
	g.callMu.Lock()
	defer g.callMu.Unlock()
	return g.ctxs[i]
}

func newTestListings(t *testing.T, repo advertisement.AdvertisementRepo) *ListingsView {
	t.Helper()
	logger := zaptest.NewLogger(t).Sugar()
	c := mutation.NewCoordinator(repo, nil, nil, logger)
	return NewListingsView(repo, c, pagination.New(10, pagination.WithEmptyInputFallback(10)), logger)
}

func newTestOrders(t *testing.T, repo order.OrderRepo) *OrdersView {
	t.Helper()
	logger := zaptest.NewLogger(t).Sugar()
	c := mutation.NewCoordinator(nil, repo, nil, logger)
	return NewOrdersView(repo, c, pagination.New(5, pagination.WithEmptyInputFallback(1)), logger)
}

func ids[T any](items []T, idOf func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, idOf(it))
	}
	return out
}

func cardIDs(page ListingsPage) []string {
	return ids(page.Items, func(c ListingCard) string { return c.ID })
}

func orderIDs(page OrdersPage) []string {
	return ids(page.Items, func(c OrderCard) string { return c.ID })
}

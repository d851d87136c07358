package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/filter"
	"storefront-console/internal/order"
	myErr "storefront-console/internal/types/errors"
)

func item(id string) order.Item {
	return order.Item{Advertisement: advertisement.Advertisement{ID: id, Name: "Товар " + id}, Count: 1}
}

func sampleOrders() []order.Order {
	return []order.Order{
		{ID: "o1", Status: order.StatusPaid, Total: 300, Items: []order.Item{item("a1")}},
		{ID: "o2", Status: order.StatusCreated, Total: 100, Items: []order.Item{item("a2")}},
		{ID: "o3", Status: order.StatusPaid, Total: 300, Items: []order.Item{item("a1"), item("a2")}},
		{ID: "o4", Status: order.StatusReceived, Total: 50, Items: []order.Item{item("a3")}},
		{ID: "o5", Status: order.StatusTransport, Total: 200, Items: []order.Item{item("a1")}},
		{ID: "o6", Status: order.StatusPaid, Total: 400, Items: []order.Item{item("a4")}},
	}
}

func TestOrdersView_LoadAndSort(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.EnsureLoaded())

	page := v.Snapshot()
	assert.Equal(t, filter.Ascending, page.Sort)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.PageCount)
	// по возрастанию суммы, равные суммы в порядке хранилища
	assert.Equal(t, []string{"o4", "o2", "o5", "o1", "o3"}, orderIDs(page))
	assert.Len(t, page.Statuses, len(order.Statuses()))
}

// Равные суммы сохраняют порядок после asc -> desc -> asc
func TestOrdersView_SortStability(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.Load())
	v.SetPageSizeInput("10")

	before := orderIDs(v.Snapshot())

	require.NoError(t, v.SetSort(filter.Descending))
	desc := orderIDs(v.Snapshot())
	assert.Equal(t, []string{"o6", "o1", "o3", "o5", "o2", "o4"}, desc)

	require.NoError(t, v.SetSort(filter.Ascending))
	assert.Equal(t, before, orderIDs(v.Snapshot()))

	assert.Error(t, v.SetSort("sideways"))
}

func TestOrdersView_Filters(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.Load())
	v.SetPageSizeInput("10")

	paid := order.StatusPaid
	require.NoError(t, v.SetStatus(&paid))
	assert.Equal(t, []string{"o1", "o3", "o6"}, orderIDs(v.Snapshot()))

	v.SetLocation("a1")
	page := v.Snapshot()
	assert.Equal(t, []string{"o1", "o3"}, orderIDs(page))
	assert.True(t, page.ShowReturn)
	assert.Equal(t, "a1", page.AdvertisementID)

	require.NoError(t, v.SetStatus(nil))
	assert.Equal(t, []string{"o5", "o1", "o3"}, orderIDs(v.Snapshot()))

	bad := order.Status(42)
	assert.ErrorIs(t, v.SetStatus(&bad), myErr.ErrValidation)

	v.SetLocation("")
	assert.False(t, v.Snapshot().ShowReturn)
}

func TestOrdersView_SetFilter(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.Load())
	v.SetPageSizeInput("10")

	paid := order.StatusPaid
	require.NoError(t, v.SetFilter(&paid, filter.Descending))
	page := v.Snapshot()
	assert.Equal(t, []string{"o6", "o1", "o3"}, orderIDs(page))

	// пустое направление оставляет текущее
	require.NoError(t, v.SetFilter(nil, ""))
	page = v.Snapshot()
	assert.Nil(t, page.Status)
	assert.Equal(t, filter.Descending, page.Sort)

	// корректный статус с некорректной сортировкой не применяется
	err := v.SetFilter(&paid, "sideways")
	assert.ErrorIs(t, err, myErr.ErrValidation)
	var ve *myErr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sort")
	assert.NotContains(t, ve.Fields, "status")

	page = v.Snapshot()
	assert.Nil(t, page.Status)
	assert.Equal(t, 6, page.Total)

	bad := order.Status(42)
	err = v.SetFilter(&bad, "sideways")
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestOrdersView_EmptyMessages(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.Load())

	v.SetLocation("nope")
	page := v.Snapshot()
	assert.True(t, page.Empty)
	assert.Equal(t, msgNoOrdersForAdvertisement, page.EmptyMessage)

	v.SetLocation("")
	refund := order.StatusRefund
	require.NoError(t, v.SetStatus(&refund))
	page = v.Snapshot()
	assert.True(t, page.Empty)
	assert.Equal(t, msgNoOrders, page.EmptyMessage)
}

func TestOrdersView_ChangesResetPage(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	require.NoError(t, v.Load())

	require.True(t, v.SetPageSizeInput("2"))
	v.SetPage(3)
	assert.Equal(t, 3, v.Snapshot().Page)

	require.NoError(t, v.SetSort(filter.Descending))
	assert.Equal(t, 1, v.Snapshot().Page)

	v.SetPage(2)
	v.SetLocation("a1")
	assert.Equal(t, 1, v.Snapshot().Page)

	// пустой ввод - по одному заказу на странице
	assert.True(t, v.SetPageSizeInput(""))
	page := v.Snapshot()
	assert.Equal(t, 1, page.PageSize)
	assert.Equal(t, 3, page.PageCount)
}

// Оплаченный заказ после завершения получен, кнопки завершения больше нет
func TestOrdersView_Complete(t *testing.T) {
	repo := &fakeOrderRepo{orders: sampleOrders()}
	v := newTestOrders(t, repo)
	require.NoError(t, v.Load())

	card := findOrder(t, v.Snapshot(), "o1")
	assert.True(t, card.CanComplete)
	assert.Equal(t, "Оплачен", card.StatusTitle)

	require.NoError(t, v.Complete(context.Background(), "o1"))
	assert.Equal(t, int(order.StatusReceived), repo.lastUpdate.Status)

	card = findOrder(t, v.Snapshot(), "o1")
	assert.Equal(t, order.StatusReceived, card.Status)
	assert.False(t, card.CanComplete)
	assert.Equal(t, "Получен", card.StatusTitle)

	assert.ErrorIs(t, v.Complete(context.Background(), "o1"), myErr.ErrNotCompletable)
	assert.ErrorIs(t, v.Complete(context.Background(), "missing"), myErr.ErrNotFound)
}

func TestOrdersView_CompleteFailure(t *testing.T) {
	repo := &fakeOrderRepo{orders: sampleOrders(), updateErr: myErr.ErrNetwork}
	v := newTestOrders(t, repo)
	require.NoError(t, v.Load())

	assert.ErrorIs(t, v.Complete(context.Background(), "o1"), myErr.ErrNetwork)

	page := v.Snapshot()
	require.NotNil(t, page.Message)
	assert.Equal(t, msgCompleteFailed, page.Message.Text)
	assert.True(t, findOrder(t, page, "o1").CanComplete)
}

func TestOrdersView_LoadFailure(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{fetchErr: &myErr.BackendError{StatusCode: 503}})

	assert.ErrorIs(t, v.Load(), myErr.ErrBackend)
	page := v.Snapshot()
	assert.True(t, page.Empty)
	require.NotNil(t, page.Message)
	assert.Equal(t, msgLoadOrdersFailed, page.Message.Text)
}

func TestOrdersView_PreferencesRoundTrip(t *testing.T) {
	v := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	paid := order.StatusPaid
	require.NoError(t, v.SetStatus(&paid))
	require.NoError(t, v.SetSort(filter.Descending))
	v.SetPageSizeInput("3")

	restored := newTestOrders(t, &fakeOrderRepo{orders: sampleOrders()})
	restored.Restore(v.Preferences())
	require.NoError(t, restored.Load())

	page := restored.Snapshot()
	require.NotNil(t, page.Status)
	assert.Equal(t, order.StatusPaid, *page.Status)
	assert.Equal(t, filter.Descending, page.Sort)
	assert.Equal(t, 3, page.PageSize)
	assert.Equal(t, []string{"o6", "o1", "o3"}, orderIDs(page))
}

func findOrder(t *testing.T, page OrdersPage, id string) OrderCard {
	t.Helper()
	for _, c := range page.Items {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("order %s not on page", id)
	return OrderCard{}
}

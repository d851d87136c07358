package mutation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/kafka"
	"storefront-console/internal/middleware"
	"storefront-console/internal/mocks"
	"storefront-console/internal/order"
	"storefront-console/internal/session"
	"storefront-console/internal/store"
	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
	typesOrder "storefront-console/internal/types/order"
)

type fixture struct {
	ads    *mocks.MockAdvertisementRepo
	orders *mocks.MockOrderRepo
	events *kafka.MockEventProducer
	c      *Coordinator
	store  *store.Store[advertisement.Advertisement]
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		ads:    mocks.NewMockAdvertisementRepo(ctrl),
		orders: mocks.NewMockOrderRepo(ctrl),
		events: kafka.NewMockEventProducer(ctrl),
		store:  store.New(func(a advertisement.Advertisement) string { return a.ID }),
	}
	f.c = NewCoordinator(f.ads, f.orders, f.events, zaptest.NewLogger(t).Sugar())
	return f
}

type eventMatcher struct {
	eventType kafka.EventType
	entityID  string
}

func (m eventMatcher) Matches(x interface{}) bool {
	e, ok := x.(kafka.Event)
	return ok && e.Type == m.eventType && e.EntityID == m.entityID
}

func (m eventMatcher) String() string {
	return fmt.Sprintf("%s event for %s", m.eventType, m.entityID)
}

func eventOf(eventType kafka.EventType, id string) gomock.Matcher {
	return eventMatcher{eventType: eventType, entityID: id}
}

func TestCreateAdvertisement(t *testing.T) {
	tests := []struct {
		name        string
		form        types.CreateAdvertisement
		mock        func(f *fixture)
		wantErr     error
		wantFields  []string
		wantStoreID string
	}{
		{
			name: "успешное создание",
			form: types.CreateAdvertisement{Name: "Стол", Price: "1500", ImageURL: "http://img/table.png"},
			mock: func(f *fixture) {
				f.ads.EXPECT().
					CreateAdvertisement(gomock.Any(), advertisement.NewAdvertisement{
						Name: "Стол", Price: 1500, ImageURL: "http://img/table.png", CreatedByUser: true,
					}).
					Return(&advertisement.Advertisement{ID: "101", Name: "Стол", Price: 1500}, nil)
				f.events.EXPECT().SendEvent(gomock.Any(), eventOf(kafka.EventTypeAdvertisementCreated, "101")).Return(nil)
			},
			wantStoreID: "101",
		},
		{
			name:       "пустое имя и нулевая цена",
			form:       types.CreateAdvertisement{Name: "  ", Price: "0"},
			mock:       func(f *fixture) {},
			wantErr:    myErr.ErrValidation,
			wantFields: []string{"name", "price"},
		},
		{
			name:       "цена не число",
			form:       types.CreateAdvertisement{Name: "Стул", Price: "abc"},
			mock:       func(f *fixture) {},
			wantErr:    myErr.ErrValidation,
			wantFields: []string{"price"},
		},
		{
			name:       "картинка не того формата",
			form:       types.CreateAdvertisement{Name: "Стул", Price: "10", ImageURL: "http://img/chair.bmp"},
			mock:       func(f *fixture) {},
			wantErr:    myErr.ErrValidation,
			wantFields: []string{"imageUrl"},
		},
		{
			name: "бэкенд недоступен",
			form: types.CreateAdvertisement{Name: "Стул", Price: "10"},
			mock: func(f *fixture) {
				f.ads.EXPECT().CreateAdvertisement(gomock.Any(), gomock.Any()).
					Return(nil, myErr.ErrNetwork)
			},
			wantErr: myErr.ErrNetwork,
		},
		{
			name: "бэкенд не назначил id",
			form: types.CreateAdvertisement{Name: "Стул", Price: "10"},
			mock: func(f *fixture) {
				f.ads.EXPECT().CreateAdvertisement(gomock.Any(), gomock.Any()).
					Return(&advertisement.Advertisement{Name: "Стул"}, nil)
			},
			wantErr: myErr.ErrBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mock(f)

			ad, err := f.c.CreateAdvertisement(context.Background(), tt.form, f.store)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ad)
				assert.Equal(t, 0, f.store.Len())

				var ve *myErr.ValidationError
				if len(tt.wantFields) > 0 && assert.True(t, errors.As(err, &ve)) {
					for _, field := range tt.wantFields {
						assert.Contains(t, ve.Fields, field)
					}
				}
				return
			}

			require.NoError(t, err)
			assert.True(t, ad.CreatedByUser)
			stored, ok := f.store.Get(tt.wantStoreID)
			assert.True(t, ok)
			assert.True(t, stored.CreatedByUser)
		})
	}
}

func TestCreateAdvertisement_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)

	f.ads.EXPECT().CreateAdvertisement(gomock.Any(), gomock.Any()).
		Return(&advertisement.Advertisement{ID: "5", Name: "Лампа", Price: 300}, nil)
	f.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	ad, err := f.c.CreateAdvertisement(context.Background(), types.CreateAdvertisement{Name: "Лампа", Price: "300"}, f.store)
	require.NoError(t, err)
	assert.Equal(t, "5", ad.ID)
	assert.Equal(t, 1, f.store.Len())
}

func TestCreateAdvertisement_EventCarriesSession(t *testing.T) {
	f := newFixture(t)

	ctx := middleware.ContextWithSession(context.Background(), &session.Session{ID: "sess-9"})

	f.ads.EXPECT().CreateAdvertisement(gomock.Any(), gomock.Any()).
		Return(&advertisement.Advertisement{ID: "7", Name: "Полка", Price: 10}, nil)
	f.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e kafka.Event) error {
			assert.Equal(t, "sess-9", e.SessionID)
			assert.Equal(t, kafka.EventTypeAdvertisementCreated, e.Type)
			assert.Equal(t, "7", e.EntityID)
			return nil
		})

	_, err := f.c.CreateAdvertisement(ctx, types.CreateAdvertisement{Name: "Полка", Price: "10"}, f.store)
	assert.NoError(t, err)
}

func TestUpdateAdvertisement(t *testing.T) {
	original := advertisement.Advertisement{ID: "1", Name: "Стол", Price: 100, Views: 12, Likes: 3, CreatedByUser: true}

	t.Run("успешное изменение", func(t *testing.T) {
		f := newFixture(t)
		f.store.Replace([]advertisement.Advertisement{original})

		patch := advertisement.Patch{Name: "Стол дубовый", Description: "Новый", Price: 0}
		f.ads.EXPECT().UpdateAdvertisement(gomock.Any(), "1", patch).
			Return(&advertisement.Advertisement{ID: "1", Name: "Стол дубовый", Description: "Новый", Views: 12, Likes: 3}, nil)
		f.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).Return(nil)

		ad, err := f.c.UpdateAdvertisement(context.Background(), "1",
			types.UpdateAdvertisement{Name: "Стол дубовый", Description: "Новый", Price: "0"}, f.store)
		require.NoError(t, err)
		assert.Equal(t, "Стол дубовый", ad.Name)

		stored, _ := f.store.Get("1")
		assert.Equal(t, "Стол дубовый", stored.Name)
		assert.Equal(t, 0.0, stored.Price)
		// не редактируемые поля сохраняются
		assert.Equal(t, int64(12), stored.Views)
		assert.True(t, stored.CreatedByUser)
	})

	t.Run("отрицательная цена", func(t *testing.T) {
		f := newFixture(t)
		f.store.Replace([]advertisement.Advertisement{original})

		_, err := f.c.UpdateAdvertisement(context.Background(), "1",
			types.UpdateAdvertisement{Name: "Стол", Price: "-1"}, f.store)
		assert.ErrorIs(t, err, myErr.ErrValidation)

		stored, _ := f.store.Get("1")
		assert.Equal(t, original, stored)
	})

	t.Run("ошибка бэкенда не меняет хранилище", func(t *testing.T) {
		f := newFixture(t)
		f.store.Replace([]advertisement.Advertisement{original})

		f.ads.EXPECT().UpdateAdvertisement(gomock.Any(), "1", gomock.Any()).
			Return(nil, &myErr.BackendError{StatusCode: 500})

		_, err := f.c.UpdateAdvertisement(context.Background(), "1",
			types.UpdateAdvertisement{Name: "Другое", Price: "5"}, f.store)
		assert.ErrorIs(t, err, myErr.ErrBackend)

		stored, _ := f.store.Get("1")
		assert.Equal(t, original, stored)
	})

	t.Run("без хранилища", func(t *testing.T) {
		f := newFixture(t)
		f.ads.EXPECT().UpdateAdvertisement(gomock.Any(), "1", gomock.Any()).
			Return(&advertisement.Advertisement{ID: "1", Name: "X", Price: 5}, nil)
		f.events.EXPECT().SendEvent(gomock.Any(), gomock.Any()).Return(nil)

		ad, err := f.c.UpdateAdvertisement(context.Background(), "1",
			types.UpdateAdvertisement{Name: "X", Price: "5"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "X", ad.Name)
	})
}

func TestDeleteAdvertisement(t *testing.T) {
	mine := advertisement.Advertisement{ID: "1", Name: "Мое", CreatedByUser: true}
	foreign := advertisement.Advertisement{ID: "2", Name: "Чужое"}

	tests := []struct {
		name      string
		ad        advertisement.Advertisement
		mock      func(f *fixture)
		wantErr   error
		wantInIDs []string
	}{
		{
			name: "удаление своего",
			ad:   mine,
			mock: func(f *fixture) {
				f.ads.EXPECT().DeleteAdvertisement(gomock.Any(), "1").Return(nil)
				f.events.EXPECT().SendEvent(gomock.Any(), eventOf(kafka.EventTypeAdvertisementDeleted, "1")).Return(nil)
			},
			wantInIDs: []string{"2"},
		},
		{
			name:      "чужое удалять нельзя",
			ad:        foreign,
			mock:      func(f *fixture) {},
			wantErr:   myErr.ErrNotDeletable,
			wantInIDs: []string{"1", "2"},
		},
		{
			name: "бэкенд вернул ошибку",
			ad:   mine,
			mock: func(f *fixture) {
				f.ads.EXPECT().DeleteAdvertisement(gomock.Any(), "1").Return(&myErr.BackendError{StatusCode: 500})
			},
			wantErr:   myErr.ErrBackend,
			wantInIDs: []string{"1", "2"},
		},
		{
			name: "объявления уже нет на бэкенде",
			ad:   mine,
			mock: func(f *fixture) {
				f.ads.EXPECT().DeleteAdvertisement(gomock.Any(), "1").Return(myErr.ErrNotFound)
			},
			wantErr:   myErr.ErrNotFound,
			wantInIDs: []string{"1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Replace([]advertisement.Advertisement{mine, foreign})
			tt.mock(f)

			err := f.c.DeleteAdvertisement(context.Background(), tt.ad, f.store)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			var ids []string
			for _, a := range f.store.Snapshot() {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantInIDs, ids)
		})
	}
}

func TestCompleteOrder(t *testing.T) {
	t.Run("успешное завершение", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().
			UpdateOrder(gomock.Any(), "o1", typesOrder.UpdateStatus{Status: int(order.StatusReceived)}).
			Return(&order.Order{ID: "o1", Status: order.StatusReceived}, nil)
		f.events.EXPECT().SendEvent(gomock.Any(), eventOf(kafka.EventTypeOrderCompleted, "o1")).Return(nil)

		o, err := f.c.CompleteOrder(context.Background(), order.Order{ID: "o1", Status: order.StatusPaid})
		require.NoError(t, err)
		assert.Equal(t, order.StatusReceived, o.Status)
	})

	t.Run("уже получен", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.c.CompleteOrder(context.Background(), order.Order{ID: "o1", Status: order.StatusReceived})
		assert.ErrorIs(t, err, myErr.ErrNotCompletable)
	})

	t.Run("ошибка сети", func(t *testing.T) {
		f := newFixture(t)
		f.orders.EXPECT().UpdateOrder(gomock.Any(), "o1", gomock.Any()).Return(nil, myErr.ErrNetwork)

		_, err := f.c.CompleteOrder(context.Background(), order.Order{ID: "o1", Status: order.StatusCreated})
		assert.ErrorIs(t, err, myErr.ErrNetwork)
	})
}

func TestCoordinator_NoEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ads := mocks.NewMockAdvertisementRepo(ctrl)
	c := NewCoordinator(ads, nil, nil, zaptest.NewLogger(t).Sugar())
	s := store.New(func(a advertisement.Advertisement) string { return a.ID })

	ads.EXPECT().CreateAdvertisement(gomock.Any(), gomock.Any()).
		Return(&advertisement.Advertisement{ID: "1", Name: "A", Price: 1}, nil)

	_, err := c.CreateAdvertisement(context.Background(), types.CreateAdvertisement{Name: "A", Price: "1"}, s)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

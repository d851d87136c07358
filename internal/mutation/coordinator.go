// Package mutation проводит изменения объявлений и заказов через бэкенд.
// Локальная коллекция меняется только после подтверждения бэкендом:
// при любой ошибке хранилище остается нетронутым.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/contextutil"
	"storefront-console/internal/kafka"
	"storefront-console/internal/order"
	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
	typesOrder "storefront-console/internal/types/order"
)

// AdvertisementStore - куда применяются подтвержденные изменения объявлений.
// *store.Store[advertisement.Advertisement] подходит напрямую.
type AdvertisementStore interface {
	Insert(a advertisement.Advertisement)
	Remove(id string) bool
	Update(id string, patch func(advertisement.Advertisement) advertisement.Advertisement) bool
}

type Coordinator struct {
	Advertisements advertisement.AdvertisementRepo
	Orders         order.OrderRepo
	// Events может быть nil, тогда события не публикуются
	Events kafka.EventProducer
	Logger *zap.SugaredLogger
}

func NewCoordinator(
	ar advertisement.AdvertisementRepo,
	or order.OrderRepo,
	events kafka.EventProducer,
	logger *zap.SugaredLogger,
) *Coordinator {
	return &Coordinator{
		Advertisements: ar,
		Orders:         or,
		Events:         events,
		Logger:         logger,
	}
}

// CreateAdvertisement валидирует форму, создает объявление на бэкенде
// и добавляет в target объявление с id, который назначил бэкенд.
func (c *Coordinator) CreateAdvertisement(
	ctx context.Context,
	form types.CreateAdvertisement,
	target AdvertisementStore,
) (*advertisement.Advertisement, error) {
	body, err := advertisement.ValidateCreate(form)
	if err != nil {
		return nil, err
	}

	created, err := c.Advertisements.CreateAdvertisement(ctx, body)
	if err != nil {
		c.logFailure("create advertisement", err)
		return nil, err
	}
	if created.ID == "" {
		return nil, fmt.Errorf("%w: created advertisement has no id", myErr.ErrBackend)
	}

	ad := *created
	ad.CreatedByUser = true

	if target != nil {
		target.Insert(ad)
	}
	c.publish(ctx, kafka.EventTypeAdvertisementCreated, ad.ID)

	return &ad, nil
}

// UpdateAdvertisement валидирует черновик, отправляет PATCH и применяет изменения к target.
// Возвращает подтвержденную бэкендом версию объявления.
func (c *Coordinator) UpdateAdvertisement(
	ctx context.Context,
	id string,
	form types.UpdateAdvertisement,
	target AdvertisementStore,
) (*advertisement.Advertisement, error) {
	patch, err := advertisement.ValidateUpdate(form)
	if err != nil {
		return nil, err
	}

	updated, err := c.Advertisements.UpdateAdvertisement(ctx, id, patch)
	if err != nil {
		c.logFailure("update advertisement "+id, err)
		return nil, err
	}

	if target != nil {
		target.Update(id, patch.Apply)
	}
	c.publish(ctx, kafka.EventTypeAdvertisementUpdated, id)

	confirmed := patch.Apply(*updated)
	confirmed.ID = id
	return &confirmed, nil
}

// DeleteAdvertisement удаляет объявление, созданное продавцом. Из target объявление
// убирается только после ответа бэкенда; при ошибке оно остается на месте.
func (c *Coordinator) DeleteAdvertisement(
	ctx context.Context,
	ad advertisement.Advertisement,
	target AdvertisementStore,
) error {
	if !ad.CanDelete() {
		return myErr.ErrNotDeletable
	}

	if err := c.Advertisements.DeleteAdvertisement(ctx, ad.ID); err != nil {
		c.logFailure("delete advertisement "+ad.ID, err)
		return err
	}

	if target != nil {
		target.Remove(ad.ID)
	}
	c.publish(ctx, kafka.EventTypeAdvertisementDeleted, ad.ID)

	return nil
}

// CompleteOrder переводит заказ в статус "Получен". Коллекцию заказов после этого
// перечитывает представление, здесь хранилище не трогается.
func (c *Coordinator) CompleteOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	if !o.CanComplete() {
		return nil, myErr.ErrNotCompletable
	}

	updated, err := c.Orders.UpdateOrder(ctx, o.ID, typesOrder.UpdateStatus{Status: int(order.StatusReceived)})
	if err != nil {
		c.logFailure("complete order "+o.ID, err)
		return nil, err
	}
	c.publish(ctx, kafka.EventTypeOrderCompleted, o.ID)

	return updated, nil
}

func (c *Coordinator) logFailure(action string, err error) {
	if errors.Is(err, myErr.ErrCanceled) {
		return
	}
	c.Logger.Errorf("failed to %s: %v", action, err)
}

// publish - ошибка публикации только логируется, мутация уже подтверждена
func (c *Coordinator) publish(ctx context.Context, eventType kafka.EventType, entityID string) {
	if c.Events == nil {
		return
	}

	sessionID, _ := contextutil.GetSessionIDFromContext(ctx)
	event := kafka.Event{
		SessionID: sessionID,
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}

	// запрос мог быть уже отменен, событие все равно должно уйти
	if err := c.Events.SendEvent(context.WithoutCancel(ctx), event); err != nil {
		c.Logger.Warnf("failed to publish %s event for %s: %v", eventType, entityID, err)
	}
}

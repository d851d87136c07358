package order

import (
	"context"
	"time"

	"storefront-console/internal/advertisement"
	types "storefront-console/internal/types/order"
)

type Status int

const (
	StatusUnknown             Status = -1
	StatusCreated             Status = 0
	StatusPaid                Status = 1
	StatusTransport           Status = 2
	StatusDeliveredToThePoint Status = 3
	StatusReceived            Status = 4
	StatusArchived            Status = 5
	StatusRefund              Status = 6
)

var statusTitles = map[Status]string{
	StatusCreated:             "Создан",
	StatusPaid:                "Оплачен",
	StatusTransport:           "В пути",
	StatusDeliveredToThePoint: "Доставлен в пункт выдачи",
	StatusReceived:            "Получен",
	StatusArchived:            "Архивирован",
	StatusRefund:              "Возврат",
}

// Statuses - все известные статусы в порядке жизненного цикла
func Statuses() []Status {
	return []Status{
		StatusCreated,
		StatusPaid,
		StatusTransport,
		StatusDeliveredToThePoint,
		StatusReceived,
		StatusArchived,
		StatusRefund,
	}
}

func (s Status) Valid() bool {
	_, ok := statusTitles[s]
	return ok
}

// Title - название статуса для продавца
func (s Status) Title() string {
	if t, ok := statusTitles[s]; ok {
		return t
	}
	return "Неизвестно"
}

type Item struct {
	advertisement.Advertisement
	Count int `json:"count"`
}

type Order struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	Items       []Item     `json:"items"`
	DeliveryWay string     `json:"deliveryWay"`
	Total       float64    `json:"total"`
}

// CanComplete - заказ можно завершить, пока он не получен
func (o Order) CanComplete() bool {
	return o.Status != StatusReceived
}

// Contains проверяет, есть ли объявление среди товаров заказа
func (o Order) Contains(advertisementID string) bool {
	for _, item := range o.Items {
		if item.ID == advertisementID {
			return true
		}
	}
	return false
}

// OrderRepo - доступ к заказам продавца на бэкенде
//
//go:generate mockgen -source=order.go -destination=../mocks/mock_order_repo.go -package=mocks
type OrderRepo interface {
	FetchOrders(ctx context.Context) ([]Order, error)
	UpdateOrder(ctx context.Context, id string, patch types.UpdateStatus) (*Order, error)
}

package kafka

import "time"

type EventType string

const (
	EventTypeAdvertisementCreated EventType = "advertisementCreated"
	EventTypeAdvertisementUpdated EventType = "advertisementUpdated"
	EventTypeAdvertisementDeleted EventType = "advertisementDeleted"
	EventTypeOrderCompleted       EventType = "orderCompleted"
)

// Event - подтвержденная бэкендом мутация, сделанная из консоли
type Event struct {
	SessionID string    `json:"session_id,omitempty"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityKind - вид сущности события. Id объявлений и заказов могут совпадать,
// поэтому журнал хранит их раздельно.
type EntityKind string

const (
	EntityAdvertisement EntityKind = "advertisement"
	EntityOrder         EntityKind = "order"
)

func (k EntityKind) Valid() bool {
	return k == EntityAdvertisement || k == EntityOrder
}

// Kind возвращает вид сущности для типа события; для неизвестного типа - ""
func (t EventType) Kind() EntityKind {
	switch t {
	case EventTypeAdvertisementCreated, EventTypeAdvertisementUpdated, EventTypeAdvertisementDeleted:
		return EntityAdvertisement
	case EventTypeOrderCompleted:
		return EntityOrder
	}
	return ""
}

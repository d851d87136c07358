package activity

import (
	"context"
	"time"

	"storefront-console/internal/kafka"
)

// Summary - сводка действий консоли над одной сущностью (объявлением или заказом)
type Summary struct {
	Kind     kafka.EntityKind        `json:"entity_kind"`
	EntityID string                  `json:"entity_id"`
	Counts   map[kafka.EventType]int `json:"counts"`
	LastSeen *time.Time              `json:"last_seen,omitempty"`
}

// ActivityRepo — журнал событий консоли.
type ActivityRepo interface {
	RecordEvent(ctx context.Context, event kafka.Event) error
	GetSummary(ctx context.Context, kind kafka.EntityKind, entityID string) (*Summary, error)
}

// ActivityService — интерфейс сервиса журнала.
type ActivityService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetSummary(ctx context.Context, kind kafka.EntityKind, entityID string) (*Summary, error)
}

package activity

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"storefront-console/internal/kafka"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// RecordEvent увеличивает счетчик события для сущности
func (r *Repository) RecordEvent(ctx context.Context, event kafka.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO console_activity (entity_kind, entity_id, event_type, count, last_seen)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (entity_kind, entity_id, event_type)
		DO UPDATE SET count = console_activity.count + 1,
			last_seen = GREATEST(console_activity.last_seen, EXCLUDED.last_seen)
	`, string(event.Type.Kind()), event.EntityID, string(event.Type), event.Timestamp)

	return err
}

// GetSummary возвращает счетчики по типам событий. Для неизвестной сущности - пустая сводка.
func (r *Repository) GetSummary(ctx context.Context, kind kafka.EntityKind, entityID string) (*Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_type, count, last_seen
		FROM console_activity
		WHERE entity_kind = $1 AND entity_id = $2
	`, string(kind), entityID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &Summary{
		Kind:     kind,
		EntityID: entityID,
		Counts:   make(map[kafka.EventType]int),
	}
	for rows.Next() {
		var (
			eventType string
			count     int
			lastSeen  time.Time
		)
		if err := rows.Scan(&eventType, &count, &lastSeen); err != nil {
			return nil, err
		}

		summary.Counts[kafka.EventType(eventType)] = count
		if summary.LastSeen == nil || lastSeen.After(*summary.LastSeen) {
			ls := lastSeen
			summary.LastSeen = &ls
		}
	}

	return summary, rows.Err()
}

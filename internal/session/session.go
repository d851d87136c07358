package session

import (
	"context"
	"encoding/json"
	"time"
)

// Session - консольная сессия продавца (одна вкладка браузера)
type Session struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	// State - сохраненные настройки представлений (фильтры, размеры страниц).
	// Формат знает только console, здесь это непрозрачный JSON.
	State json.RawMessage `json:",omitempty"`
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает новую сессию и кладет ее в Redis
	CreateSession(ctx context.Context) (*Session, error)
	// GetSession - достает сессию из Redis и проверяет, не истекла ли она
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	// ExtendSession - продлевает сессию на базовую длительность, если продавец активно пользуется консолью
	ExtendSession(ctx context.Context, sessionID string) error
	// SaveState - сохраняет настройки представлений, не трогая время жизни
	SaveState(ctx context.Context, sessionID string, state json.RawMessage) error
	// DeleteSession - закрывает сессию
	DeleteSession(ctx context.Context, sessionID string) error
}

package console

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/middleware"
	"storefront-console/internal/mutation"
	"storefront-console/internal/order"
	"storefront-console/internal/pagination"
	"storefront-console/internal/session"
	myErr "storefront-console/internal/types/errors"
)

// PageSizes - размеры страниц по умолчанию и на случай пустого ввода
type PageSizes struct {
	Listings              int
	ListingsEmptyFallback int
	Orders                int
	OrdersEmptyFallback   int
}

func DefaultPageSizes() PageSizes {
	return PageSizes{
		Listings:              10,
		ListingsEmptyFallback: 10,
		Orders:                5,
		OrdersEmptyFallback:   1,
	}
}

// Registry держит представления открытых сессий в памяти процесса.
// Сама сессия (срок жизни, настройки) хранится в SessionRepo.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	Sessions       session.SessionRepo
	Advertisements advertisement.AdvertisementRepo
	Orders         order.OrderRepo
	Coordinator    *mutation.Coordinator
	PageSizes      PageSizes
	Logger         *zap.SugaredLogger
}

func NewRegistry(
	sr session.SessionRepo,
	ar advertisement.AdvertisementRepo,
	or order.OrderRepo,
	coordinator *mutation.Coordinator,
	sizes PageSizes,
	logger *zap.SugaredLogger,
) *Registry {
	return &Registry{
		sessions:       make(map[string]*Session),
		Sessions:       sr,
		Advertisements: ar,
		Orders:         or,
		Coordinator:    coordinator,
		PageSizes:      sizes,
		Logger:         logger,
	}
}

// Open создает новую консольную сессию
func (r *Registry) Open(ctx context.Context) (*Session, error) {
	sess, err := r.Sessions.CreateSession(ctx)
	if err != nil {
		return nil, err
	}

	s := r.newSession(sess.ID)

	r.mu.Lock()
	r.sessions[sess.ID] = s
	r.mu.Unlock()

	return s, nil
}

// Resolve возвращает представления сессии. После перезапуска сервиса
// представления создаются заново из сохраненных настроек.
func (r *Registry) Resolve(sess *session.Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sess.ID]; ok {
		return s
	}

	s := r.newSession(sess.ID)
	if err := s.Restore(sess.State); err != nil {
		r.Logger.Warnf("failed to restore preferences of session %s: %v", sess.ID, err)
	}
	r.sessions[sess.ID] = s

	return s
}

// FromContext - представления сессии, которую middleware положил в контекст запроса
func (r *Registry) FromContext(ctx context.Context) (*Session, error) {
	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok || sess == nil {
		return nil, myErr.ErrSessionNotFound
	}
	return r.Resolve(sess), nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	return s, ok
}

// Persist сохраняет настройки представлений сессии
func (r *Registry) Persist(ctx context.Context, s *Session) error {
	state, err := json.Marshal(s.Preferences())
	if err != nil {
		return err
	}

	return r.Sessions.SaveState(ctx, s.ID, state)
}

// Close закрывает сессию: незавершенные загрузки отменяются
func (r *Registry) Close(ctx context.Context, id string) error {
	r.evict(id)
	return r.Sessions.DeleteSession(ctx, id)
}

// Sweep выгружает из памяти сессии, которых больше нет в хранилище (истекли)
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	evicted := 0
	for _, id := range ids {
		_, err := r.Sessions.GetSession(ctx, id)
		if errors.Is(err, myErr.ErrSessionNotFound) || errors.Is(err, myErr.ErrSessionIsExpired) {
			r.evict(id)
			evicted++
		}
	}

	return evicted
}

// CloseAll отменяет загрузки всех сессий при остановке сервиса, записи в хранилище остаются
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (r *Registry) evict(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
}

func (r *Registry) newSession(id string) *Session {
	listings := NewListingsView(
		r.Advertisements,
		r.Coordinator,
		pagination.New(r.PageSizes.Listings, pagination.WithEmptyInputFallback(r.PageSizes.ListingsEmptyFallback)),
		r.Logger,
	)

	return &Session{
		ID:       id,
		Listings: listings,
		Detail:   NewDetailView(r.Advertisements, r.Coordinator, listings, r.Logger),
		Orders: NewOrdersView(
			r.Orders,
			r.Coordinator,
			pagination.New(r.PageSizes.Orders, pagination.WithEmptyInputFallback(r.PageSizes.OrdersEmptyFallback)),
			r.Logger,
		),
	}
}

package console

import (
	"encoding/json"
)

// Session - представления одной консольной сессии (вкладки)
type Session struct {
	ID       string
	Listings *ListingsView
	Detail   *DetailView
	Orders   *OrdersView
}

// Preferences - сохраняемые в Redis настройки представлений
type Preferences struct {
	Listings ListingsPreferences `json:"listings"`
	Orders   OrdersPreferences   `json:"orders"`
}

func (s *Session) Preferences() Preferences {
	return Preferences{
		Listings: s.Listings.Preferences(),
		Orders:   s.Orders.Preferences(),
	}
}

// Restore применяет сохраненное состояние; пустое или битое состояние игнорируется
func (s *Session) Restore(state json.RawMessage) error {
	if len(state) == 0 {
		return nil
	}

	var p Preferences
	if err := json.Unmarshal(state, &p); err != nil {
		return err
	}

	s.Listings.Restore(p.Listings)
	s.Orders.Restore(p.Orders)
	return nil
}

// DismissMessages закрывает уведомления всех представлений
func (s *Session) DismissMessages() {
	s.Listings.DismissMessage()
	s.Detail.DismissMessage()
	s.Orders.DismissMessage()
}

// Close отменяет все загрузки сессии
func (s *Session) Close() {
	s.Listings.Close()
	s.Detail.Close()
	s.Orders.Close()
}

// Package store хранит клиентскую копию коллекции (объявления или заказы).
//
// Store не потокобезопасен: им владеет одно представление консоли,
// которое сериализует все изменения своим мьютексом.
package store

type Store[T any] struct {
	idOf  func(T) string
	items []T
	index map[string]int
}

func New[T any](idOf func(T) string) *Store[T] {
	return &Store[T]{
		idOf:  idOf,
		index: make(map[string]int),
	}
}

// Replace атомарно подменяет коллекцию результатом полной загрузки.
// При повторяющихся id остается последняя запись на месте первой.
func (s *Store[T]) Replace(list []T) {
	items := make([]T, 0, len(list))
	index := make(map[string]int, len(list))

	for _, item := range list {
		id := s.idOf(item)
		if i, ok := index[id]; ok {
			items[i] = item
			continue
		}
		index[id] = len(items)
		items = append(items, item)
	}

	s.items = items
	s.index = index
}

// Insert добавляет подтвержденную бэкендом сущность в конец.
// Если id уже есть, запись заменяется на месте.
func (s *Store[T]) Insert(item T) {
	id := s.idOf(item)
	if i, ok := s.index[id]; ok {
		s.items[i] = item
		return
	}

	s.index[id] = len(s.items)
	s.items = append(s.items, item)
}

// Remove удаляет сущность по id. Отсутствующий id - не ошибка.
func (s *Store[T]) Remove(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.items = append(s.items[:i:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.idOf(s.items[j])] = j
	}

	return true
}

// Update применяет patch к сущности по id. Отсутствующий id - не ошибка.
func (s *Store[T]) Update(id string, patch func(T) T) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	updated := patch(s.items[i])
	// patch не должен менять id
	if newID := s.idOf(updated); newID != id {
		return false
	}
	s.items[i] = updated

	return true
}

func (s *Store[T]) Get(id string) (T, bool) {
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[i], true
}

// Snapshot возвращает копию коллекции в порядке хранения
func (s *Store[T]) Snapshot() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Len() int {
	return len(s.items)
}

// Package filter выводит видимое подмножество коллекции из снимка хранилища.
// Все функции чистые: не меняют вход и зависят только от аргументов.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/order"
)

// AdvertisementFilter - активные фильтры списка объявлений.
// nil порог означает "фильтр не задан".
type AdvertisementFilter struct {
	Name     string   `json:"name"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	MinViews *int64   `json:"min_views,omitempty"`
	MinLikes *int64   `json:"min_likes,omitempty"`
}

func (f AdvertisementFilter) Match(a advertisement.Advertisement) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.MaxPrice != nil && a.Price > *f.MaxPrice {
		return false
	}
	if f.MinViews != nil && a.Views < *f.MinViews {
		return false
	}
	if f.MinLikes != nil && a.Likes < *f.MinLikes {
		return false
	}
	return true
}

// Advertisements оставляет объявления, проходящие все активные фильтры, в исходном порядке
func Advertisements(ads []advertisement.Advertisement, f AdvertisementFilter) []advertisement.Advertisement {
	out := make([]advertisement.Advertisement, 0, len(ads))
	for _, a := range ads {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

// OrderFilter - фильтры списка заказов. AdvertisementID приходит из адреса
// ("заказы с этим объявлением") и передается явно, как и остальные поля.
type OrderFilter struct {
	Status          *order.Status `json:"status,omitempty"`
	AdvertisementID string        `json:"advertisement_id,omitempty"`
}

func (f OrderFilter) Match(o order.Order) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.AdvertisementID != "" && !o.Contains(f.AdvertisementID) {
		return false
	}
	return true
}

// Orders фильтрует заказы и сортирует по сумме. Сортировка стабильная:
// заказы с одинаковой суммой сохраняют порядок хранилища при любом направлении.
func Orders(orders []order.Order, f OrderFilter, dir SortDirection) []order.Order {
	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}

	slices.SortStableFunc(out, func(a, b order.Order) int {
		if dir == Descending {
			return cmp.Compare(b.Total, a.Total)
		}
		return cmp.Compare(a.Total, b.Total)
	})

	return out
}

package advertisement

import (
	"strings"

	"storefront-console/internal/types/record"
)

const DefaultName = "Без названия"

// FromRecord приводит сырую запись бэкенда к Advertisement:
// id всегда строка, цена/просмотры/лайки неотрицательные, пустое имя заменяется на DefaultName.
func FromRecord(r record.Record) Advertisement {
	name := r.String("name")
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}

	return Advertisement{
		ID:            r.String("id"),
		Name:          name,
		Description:   r.String("description"),
		Price:         r.NonNegative("price"),
		CreatedAt:     r.Time("createdAt"),
		Views:         r.Count("views"),
		Likes:         r.Count("likes"),
		ImageURL:      r.String("imageUrl"),
		CreatedByUser: r.Bool("createdByUser"),
	}
}

func FromRecords(rs []record.Record) []Advertisement {
	out := make([]Advertisement, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRecord(r))
	}
	return out
}

// Excerpt обрезает описание до limit символов для свернутого вида
func Excerpt(description string, limit int) (string, bool) {
	runes := []rune(description)
	if len(runes) <= limit {
		return description, false
	}
	return string(runes[:limit]) + "...", true
}

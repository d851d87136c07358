package order

import (
	"math"

	"storefront-console/internal/advertisement"
	"storefront-console/internal/types/record"
)

// FromRecord приводит сырую запись к Order. ok == false, если у заказа нет массива items -
// такие записи бэкенда в консоль не попадают.
func FromRecord(r record.Record) (Order, bool) {
	rawItems, ok := r.Records("items")
	if !ok {
		return Order{}, false
	}

	items := make([]Item, 0, len(rawItems))
	for _, ri := range rawItems {
		count := int(math.Floor(ri.Number("count")))
		if count < 1 {
			count = 1
		}
		items = append(items, Item{
			Advertisement: advertisement.FromRecord(ri),
			Count:         count,
		})
	}

	status := StatusUnknown
	if r.HasNumber("status") {
		status = Status(int(r.Number("status")))
	}

	o := Order{
		ID:          r.String("id"),
		Status:      status,
		CreatedAt:   r.Time("createdAt"),
		Items:       items,
		DeliveryWay: r.String("deliveryWay"),
		Total:       r.Number("total"),
	}

	if finished := r.Time("finishedAt"); !finished.IsZero() {
		o.FinishedAt = &finished
	}

	return o, true
}

func FromRecords(rs []record.Record) []Order {
	out := make([]Order, 0, len(rs))
	for _, r := range rs {
		o, ok := FromRecord(r)
		if !ok {
			continue
		}
		out = append(out, o)
	}
	return out
}

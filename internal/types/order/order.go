package order

// UpdateStatus - тело PATCH /orders/:id
type UpdateStatus struct {
	Status int `json:"status"`
}

// Filter - тело PUT .../orders/filter. status: null - все статусы,
// пустой sort оставляет текущую сортировку.
type Filter struct {
	Status *int   `json:"status"`
	Sort   string `json:"sort,omitempty"`
}

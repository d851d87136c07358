package advertisement

import (
	"context"
	"time"
)

type Advertisement struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
	Views         int64     `json:"views"`
	Likes         int64     `json:"likes"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedByUser bool      `json:"createdByUser"`
}

// CanDelete - удалять можно только объявления, созданные продавцом через консоль
func (a Advertisement) CanDelete() bool {
	return a.CreatedByUser
}

// NewAdvertisement - тело POST /advertisements (без id и createdAt, их назначает бэкенд)
type NewAdvertisement struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"imageUrl"`
	CreatedByUser bool    `json:"createdByUser"`
	Views         int64   `json:"views"`
	Likes         int64   `json:"likes"`
}

// Patch - тело PATCH /advertisements/:id с редактируемыми полями
type Patch struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
}

// Apply накладывает изменения на объявление, остальные поля не трогает
func (p Patch) Apply(a Advertisement) Advertisement {
	a.Name = p.Name
	a.Description = p.Description
	a.Price = p.Price
	a.ImageURL = p.ImageURL
	return a
}

// AdvertisementRepo - доступ к объявлениям продавца на бэкенде.
// Все методы отменяются через ctx; отмена возвращается как errors.ErrCanceled.
//
//go:generate mockgen -source=advertisement.go -destination=../mocks/mock_advertisement_repo.go -package=mocks
type AdvertisementRepo interface {
	FetchAdvertisements(ctx context.Context) ([]Advertisement, error)
	GetAdvertisement(ctx context.Context, id string) (*Advertisement, error)
	CreateAdvertisement(ctx context.Context, a NewAdvertisement) (*Advertisement, error)
	UpdateAdvertisement(ctx context.Context, id string, p Patch) (*Advertisement, error)
	DeleteAdvertisement(ctx context.Context, id string) error
}

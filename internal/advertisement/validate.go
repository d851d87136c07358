package advertisement

import (
	"regexp"
	"strings"

	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
)

var imageURLPattern = regexp.MustCompile(`\.(jpeg|jpg|gif|png)$`)

const (
	msgNameRequired     = "name is required"
	msgPricePositive    = "price must be greater than zero"
	msgPriceNonNegative = "price must be a non-negative number"
	msgBadImageURL      = "image url must point to a .jpeg, .jpg, .gif or .png file"
)

func IsValidImageURL(url string) bool {
	return imageURLPattern.MatchString(url)
}

// ValidateCreate проверяет форму создания и возвращает готовое к отправке тело запроса.
// Созданное через консоль объявление всегда createdByUser, просмотры и лайки с нуля.
func ValidateCreate(form types.CreateAdvertisement) (NewAdvertisement, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = msgNameRequired
	}

	price, ok := form.Price.Float()
	if !ok || price <= 0 {
		fields["price"] = msgPricePositive
	}

	if form.ImageURL != "" && !IsValidImageURL(form.ImageURL) {
		fields["imageUrl"] = msgBadImageURL
	}

	if len(fields) > 0 {
		return NewAdvertisement{}, myErr.NewValidationError(fields)
	}

	return NewAdvertisement{
		Name:          form.Name,
		Description:   form.Description,
		Price:         price,
		ImageURL:      form.ImageURL,
		CreatedByUser: true,
		Views:         0,
		Likes:         0,
	}, nil
}

// ValidateUpdate проверяет черновик редактирования
func ValidateUpdate(form types.UpdateAdvertisement) (Patch, error) {
	fields := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = msgNameRequired
	}

	price, ok := form.Price.Float()
	if !ok || price < 0 {
		fields["price"] = msgPriceNonNegative
	}

	if form.ImageURL != "" && !IsValidImageURL(form.ImageURL) {
		fields["imageUrl"] = msgBadImageURL
	}

	if len(fields) > 0 {
		return Patch{}, myErr.NewValidationError(fields)
	}

	return Patch{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		ImageURL:    form.ImageURL,
	}, nil
}

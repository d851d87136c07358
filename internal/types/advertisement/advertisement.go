package advertisement

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceInput - значение поля "цена" в том виде, в каком его ввел продавец.
// Принимает как JSON число, так и строку: форма может прислать "" или "abc",
// и это ошибка валидации, а не ошибка разбора JSON.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceInput(n.String())
	return nil
}

// Float разбирает введенную цену. ok == false, если это не число.
func (p PriceInput) Float() (float64, bool) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// CreateAdvertisement - форма создания объявления
type CreateAdvertisement struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       PriceInput `json:"price"`
	ImageURL    string     `json:"imageUrl"`
}

// UpdateAdvertisement - форма редактирования объявления (черновик)
type UpdateAdvertisement struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       PriceInput `json:"price"`
	ImageURL    string     `json:"imageUrl"`
}

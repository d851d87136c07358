package pagination

import (
	"bytes"
	"encoding/json"
)

// SizeInput - содержимое поля "количество на странице" как есть.
// Приходит строкой или числом; корректность проверяет контроллер пагинации.
type SizeInput string

func (s *SizeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = SizeInput(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = SizeInput(n.String())
	return nil
}

// Update - тело PUT .../pagination, отсутствующее поле не меняется
type Update struct {
	PageSize *SizeInput `json:"page_size,omitempty"`
	Page     *int       `json:"page,omitempty"`
}

package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record - сырая запись в том виде, в каком ее вернул бэкенд.
// Поля могут отсутствовать или иметь неожиданный тип, поэтому
// все геттеры ниже возвращают нулевое значение вместо ошибки.
type Record map[string]any

// String возвращает строковое представление поля. Числа приводятся к десятичной строке.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Number возвращает конечное число из поля или 0.
func (r Record) Number(key string) float64 {
	var f float64
	switch v := r[key].(type) {
	case float64:
		f = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative как Number, но отрицательные значения становятся 0.
func (r Record) NonNegative(key string) float64 {
	f := r.Number(key)
	if f < 0 {
		return 0
	}
	return f
}

// Count - неотрицательное целое (просмотры, лайки).
func (r Record) Count(key string) int64 {
	return int64(math.Floor(r.NonNegative(key)))
}

func (r Record) Bool(key string) bool {
	v, _ := r[key].(bool)
	return v
}

// HasNumber сообщает, что поле присутствует и является числом.
func (r Record) HasNumber(key string) bool {
	switch v := r[key].(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case json.Number:
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

// Time разбирает RFC3339 метку времени; при ошибке - нулевое время.
func (r Record) Time(key string) time.Time {
	s := r.String(key)
	if s == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Records возвращает вложенный массив объектов. ok == false, если поле не массив.
func (r Record) Records(key string) ([]Record, bool) {
	raw, ok := r[key].([]any)
	if !ok {
		return nil, false
	}

	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Record(m))
	}
	return out, true
}

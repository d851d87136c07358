package pagination

import (
	"strconv"
	"strings"
)

// Controller хранит размер и номер страницы одного списка
type Controller struct {
	pageSize      int
	pageNumber    int
	input         string
	emptyFallback int
}

type Option func(*Controller)

// WithEmptyInputFallback - размер страницы, который применяется, когда поле ввода очищено.
// Без этой опции пустой ввод считается "еще не введено" и ничего не меняет.
func WithEmptyInputFallback(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.emptyFallback = size
		}
	}
}

func New(defaultSize int, opts ...Option) *Controller {
	if defaultSize < 1 {
		defaultSize = 1
	}

	c := &Controller{
		pageSize:   defaultSize,
		pageNumber: 1,
		input:      strconv.Itoa(defaultSize),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) PageSize() int {
	return c.pageSize
}

func (c *Controller) PageNumber() int {
	return c.pageNumber
}

// Input - последнее значение поля "количество на странице" как его ввели
func (c *Controller) Input() string {
	return c.input
}

// SetPageSizeInput принимает ввод размера страницы. Корректное значение (целое > 0)
// применяется и сбрасывает страницу на первую. Некорректное запоминается как ввод,
// но размер остается прежним. Возвращает true, если размер был применен.
func (c *Controller) SetPageSizeInput(value string) bool {
	c.input = value

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if c.emptyFallback == 0 {
			return false
		}
		c.pageSize = c.emptyFallback
		c.pageNumber = 1
		return true
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return false
	}

	c.pageSize = n
	c.pageNumber = 1
	return true
}

// SetPage переключает страницу; номера меньше 1 становятся 1.
// Выход за последнюю страницу исправляет Reconcile.
func (c *Controller) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	c.pageNumber = n
}

func (c *Controller) Reset() {
	c.pageNumber = 1
}

// Reconcile вызывается после каждого изменения длины списка (фильтр, сортировка, удаление,
// загрузка). Пока текущая страница пуста и она не первая, номер уменьшается.
// Возвращает true, если номер страницы изменился.
func (c *Controller) Reconcile(total int) bool {
	before := c.pageNumber
	// то же, что уменьшать по одной, пока страница пуста
	last := max(PageCount(total, c.pageSize), 1)
	if c.pageNumber > last {
		c.pageNumber = last
	}
	return c.pageNumber != before
}

// PageCount - количество страниц для total элементов
func PageCount(total, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Slice возвращает элементы страницы number размера size, обрезанные по границам списка
func Slice[T any](items []T, size, number int) []T {
	if size < 1 || number < 1 {
		return []T{}
	}

	start := (number - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

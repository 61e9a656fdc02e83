package repository

import (
	"errors"
	"strings"

	"frontdesk/internal/domain"
)

// ErrNotFound возвращается, когда сущности нет в локальном состоянии
var ErrNotFound = errors.New("not found")

// Notifier получает топик при каждом изменении локального состояния
type Notifier interface {
	Notify(topic domain.Topic)
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.Topic) {}

// TableFilter параметры фильтрации столиков
type TableFilter struct {
	Status domain.TableStatus
}

// MenuFilter параметры фильтрации меню
type MenuFilter struct {
	Category      domain.Category
	Query         string
	OnlyAvailable bool
	MaxPrice      *float64
}

func (f MenuFilter) match(m domain.MenuItem) bool {
	if f.Category != "" && m.Category != f.Category {
		return false
	}
	if f.OnlyAvailable && !m.IsAvailable() {
		return false
	}
	if f.MaxPrice != nil && m.Price > *f.MaxPrice {
		return false
	}
	return containsIgnoreCase(m.Name, f.Query) || containsIgnoreCase(m.Description, f.Query)
}

// OrderFilter параметры фильтрации заказов
type OrderFilter struct {
	Status  domain.OrderStatus
	TableID int64
	UserID  int64
}

func (f OrderFilter) match(o domain.Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.TableID > 0 && o.TableID != f.TableID {
		return false
	}
	if f.UserID > 0 && o.UserID != f.UserID {
		return false
	}
	return true
}

// OrderItemFilter параметры фильтрации позиций заказов
type OrderItemFilter struct {
	Statuses []domain.OrderItemStatus
	OrderID  int64
}

func (f OrderItemFilter) match(it domain.OrderItem) bool {
	if f.OrderID > 0 && it.OrderID != f.OrderID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if it.Status == s {
			return true
		}
	}
	return false
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

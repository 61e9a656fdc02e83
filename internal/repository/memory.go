package repository

import (
	"sort"
	"sync"

	"frontdesk/internal/domain"
)

// Store локальная копия состояния удалённого API. Последняя запись побеждает:
// снимки поллеров, push-события и ответы на мутации просто перезаписывают данные.
type Store struct {
	mu        sync.RWMutex
	notifier  Notifier
	tables    map[int64]domain.Table
	menu      map[int64]domain.MenuItem
	orders    map[int64]domain.Order
	items     map[int64]domain.OrderItem
	refreshed map[domain.Topic]bool
}

func NewStore(n Notifier) *Store {
	if n == nil {
		n = nopNotifier{}
	}
	return &Store{
		notifier:  n,
		tables:    make(map[int64]domain.Table),
		menu:      make(map[int64]domain.MenuItem),
		orders:    make(map[int64]domain.Order),
		items:     make(map[int64]domain.OrderItem),
		refreshed: make(map[domain.Topic]bool),
	}
}

// write runs fn under the write lock and notifies afterwards, outside the lock.
func (s *Store) write(topics []domain.Topic, fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	for _, t := range topics {
		s.notifier.Notify(t)
	}
}

// Loaded reports whether a full snapshot of topic has been stored at least once.
func (s *Store) Loaded(topic domain.Topic) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed[topic]
}

// Tables

func (s *Store) ReplaceTables(tables []domain.Table) {
	s.write([]domain.Topic{domain.TopicTables}, func() {
		s.tables = make(map[int64]domain.Table, len(tables))
		for _, t := range tables {
			s.tables[t.ID] = t
		}
		s.refreshed[domain.TopicTables] = true
	})
}

func (s *Store) UpsertTable(t domain.Table) {
	s.write([]domain.Topic{domain.TopicTables}, func() { s.tables[t.ID] = t })
}

func (s *Store) DeleteTable(id int64) {
	s.write([]domain.Topic{domain.TopicTables}, func() { delete(s.tables, id) })
}

func (s *Store) Table(id int64) (domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[id]
	if !ok {
		return domain.Table{}, ErrNotFound
	}
	return t, nil
}

// Tables returns matching tables ordered by number.
func (s *Store) Tables(f TableFilter) []domain.Table {
	s.mu.RLock()
	out := make([]domain.Table, 0, len(s.tables))
	for _, t := range s.tables {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Menu

func (s *Store) ReplaceMenu(items []domain.MenuItem) {
	s.write([]domain.Topic{domain.TopicMenu}, func() {
		s.menu = make(map[int64]domain.MenuItem, len(items))
		for _, m := range items {
			s.menu[m.ID] = m
		}
		s.refreshed[domain.TopicMenu] = true
	})
}

func (s *Store) UpsertMenuItem(m domain.MenuItem) {
	s.write([]domain.Topic{domain.TopicMenu}, func() { s.menu[m.ID] = m })
}

func (s *Store) DeleteMenuItem(id int64) {
	s.write([]domain.Topic{domain.TopicMenu}, func() { delete(s.menu, id) })
}

func (s *Store) MenuItem(id int64) (domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menu[id]
	if !ok {
		return domain.MenuItem{}, ErrNotFound
	}
	return m, nil
}

// MenuItems returns matching items ordered by id; callers sort for display.
func (s *Store) MenuItems(f MenuFilter) []domain.MenuItem {
	s.mu.RLock()
	out := make([]domain.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		if f.match(m) {
			out = append(out, m)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Orders. Items of an order live in the item map so that item-level
// events and order-level snapshots update the same record.

// ReplaceOrders swaps the order snapshot. Items of the listed orders are
// replaced too; items of orders missing from the snapshot are dropped.
func (s *Store) ReplaceOrders(orders []domain.Order) {
	s.write([]domain.Topic{domain.TopicOrders, domain.TopicOrderItems}, func() {
		s.orders = make(map[int64]domain.Order, len(orders))
		s.items = make(map[int64]domain.OrderItem)
		for _, o := range orders {
			s.putOrderLocked(o)
		}
		s.refreshed[domain.TopicOrders] = true
	})
}

// UpsertOrder stores o; its embedded items, when present, replace the
// order's current items.
func (s *Store) UpsertOrder(o domain.Order) {
	s.write([]domain.Topic{domain.TopicOrders, domain.TopicOrderItems}, func() {
		if o.Items != nil {
			for id, it := range s.items {
				if it.OrderID == o.ID {
					delete(s.items, id)
				}
			}
		}
		s.putOrderLocked(o)
	})
}

func (s *Store) putOrderLocked(o domain.Order) {
	for _, it := range o.Items {
		if it.OrderID == 0 {
			it.OrderID = o.ID
		}
		s.items[it.ID] = it
	}
	o.Items = nil
	s.orders[o.ID] = o
}

func (s *Store) DeleteOrder(id int64) {
	s.write([]domain.Topic{domain.TopicOrders, domain.TopicOrderItems}, func() {
		delete(s.orders, id)
		for itemID, it := range s.items {
			if it.OrderID == id {
				delete(s.items, itemID)
			}
		}
	})
}

func (s *Store) Order(id int64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return s.assembleLocked(o), nil
}

// Orders returns matching orders, newest first, with their items.
func (s *Store) Orders(f OrderFilter) []domain.Order {
	s.mu.RLock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if f.match(o) {
			out = append(out, s.assembleLocked(o))
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) assembleLocked(o domain.Order) domain.Order {
	o.Items = []domain.OrderItem{}
	for _, it := range s.items {
		if it.OrderID == o.ID {
			o.Items = append(o.Items, it)
		}
	}
	sort.Slice(o.Items, func(i, j int) bool { return o.Items[i].ID < o.Items[j].ID })
	return o
}

// Order items

// MergeOrderItems upserts a partial item listing, e.g. the kitchen's
// pending/preparing poll. Items missing from the listing are kept.
func (s *Store) MergeOrderItems(items []domain.OrderItem) {
	s.write([]domain.Topic{domain.TopicOrderItems}, func() {
		for _, it := range items {
			s.items[it.ID] = it
		}
	})
}

func (s *Store) UpsertOrderItem(it domain.OrderItem) {
	s.MergeOrderItems([]domain.OrderItem{it})
}

func (s *Store) DeleteOrderItem(id int64) {
	s.write([]domain.Topic{domain.TopicOrderItems}, func() { delete(s.items, id) })
}

func (s *Store) OrderItem(id int64) (domain.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return domain.OrderItem{}, ErrNotFound
	}
	return it, nil
}

// OrderItems returns matching items, oldest first.
func (s *Store) OrderItems(f OrderItemFilter) []domain.OrderItem {
	s.mu.RLock()
	out := make([]domain.OrderItem, 0)
	for _, it := range s.items {
		if f.match(it) {
			out = append(out, it)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

package repository

import (
	"sync"
	"testing"
	"time"

	"frontdesk/internal/domain"
)

type recordingNotifier struct {
	mu     sync.Mutex
	topics []domain.Topic
}

func (r *recordingNotifier) Notify(t domain.Topic) {
	r.mu.Lock()
	r.topics = append(r.topics, t)
	r.mu.Unlock()
}

func (r *recordingNotifier) has(t domain.Topic) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.topics {
		if x == t {
			return true
		}
	}
	return false
}

func TestStore_TablesLastWriteWins(t *testing.T) {
	n := &recordingNotifier{}
	s := NewStore(n)

	if s.Loaded(domain.TopicTables) {
		t.Fatalf("nothing loaded yet")
	}
	s.ReplaceTables([]domain.Table{
		{ID: 2, Number: 9, Status: domain.TableAvailable},
		{ID: 1, Number: 3, Status: domain.TableAvailable},
	})
	if !s.Loaded(domain.TopicTables) || !n.has(domain.TopicTables) {
		t.Fatalf("expected snapshot to mark topic loaded and notify")
	}

	s.UpsertTable(domain.Table{ID: 1, Number: 3, Status: domain.TableOccupied})
	got, err := s.Table(1)
	if err != nil || got.Status != domain.TableOccupied {
		t.Fatalf("upsert not applied: %+v %v", got, err)
	}

	list := s.Tables(TableFilter{})
	if len(list) != 2 || list[0].Number != 3 || list[1].Number != 9 {
		t.Fatalf("expected tables sorted by number: %+v", list)
	}
	if occ := s.Tables(TableFilter{Status: domain.TableOccupied}); len(occ) != 1 {
		t.Fatalf("status filter: %+v", occ)
	}

	s.DeleteTable(1)
	if _, err := s.Table(1); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStore_MenuFilter(t *testing.T) {
	s := NewStore(nil)
	no := false
	s.ReplaceMenu([]domain.MenuItem{
		{ID: 1, Name: "Tomato soup", Price: 5, Category: domain.CategoryFood},
		{ID: 2, Name: "Lemonade", Description: "fresh lemon", Price: 3, Category: domain.CategoryDrink},
		{ID: 3, Name: "Steak", Price: 25, Category: domain.CategoryFood, Available: &no},
	})

	if got := s.MenuItems(MenuFilter{Category: domain.CategoryFood}); len(got) != 2 {
		t.Fatalf("category filter: %+v", got)
	}
	if got := s.MenuItems(MenuFilter{OnlyAvailable: true}); len(got) != 2 {
		t.Fatalf("availability filter: %+v", got)
	}
	if got := s.MenuItems(MenuFilter{Query: "LEMON"}); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("query filter: %+v", got)
	}
	max := 10.0
	if got := s.MenuItems(MenuFilter{MaxPrice: &max}); len(got) != 2 {
		t.Fatalf("price filter: %+v", got)
	}
}

func TestStore_OrdersAssembleItems(t *testing.T) {
	s := NewStore(nil)
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.ReplaceOrders([]domain.Order{
		{ID: 1, TableID: 4, Status: domain.OrderOpen, CreatedAt: t0, Items: []domain.OrderItem{
			{ID: 10, MenuItemID: 1, Quantity: 1, Status: domain.ItemPending, CreatedAt: t0},
		}},
		{ID: 2, TableID: 5, Status: domain.OrderPaid, CreatedAt: t0.Add(time.Minute)},
	})

	o, err := s.Order(1)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].OrderID != 1 {
		t.Fatalf("items not assembled or order id not filled: %+v", o.Items)
	}

	// item-level event updates the same record the order view reads
	s.UpsertOrderItem(domain.OrderItem{ID: 10, OrderID: 1, Status: domain.ItemReady, CreatedAt: t0})
	s.UpsertOrderItem(domain.OrderItem{ID: 11, OrderID: 1, Status: domain.ItemPending, CreatedAt: t0.Add(time.Second)})
	o, _ = s.Order(1)
	if len(o.Items) != 2 || o.Items[0].Status != domain.ItemReady {
		t.Fatalf("unexpected items after upsert: %+v", o.Items)
	}

	list := s.Orders(OrderFilter{})
	if len(list) != 2 || list[0].ID != 2 {
		t.Fatalf("expected newest first: %+v", list)
	}
	if open := s.Orders(OrderFilter{Status: domain.OrderOpen, TableID: 4}); len(open) != 1 {
		t.Fatalf("filter: %+v", open)
	}

	// order upsert with items replaces the order's items
	s.UpsertOrder(domain.Order{ID: 1, TableID: 4, Status: domain.OrderUnpaid, CreatedAt: t0, Items: []domain.OrderItem{
		{ID: 12, OrderID: 1, Status: domain.ItemDelivered},
	}})
	o, _ = s.Order(1)
	if o.Status != domain.OrderUnpaid || len(o.Items) != 1 || o.Items[0].ID != 12 {
		t.Fatalf("order upsert not applied: %+v", o)
	}

	s.DeleteOrder(1)
	if _, err := s.Order(1); err != ErrNotFound {
		t.Fatalf("expected not found")
	}
	if _, err := s.OrderItem(12); err != ErrNotFound {
		t.Fatalf("items of deleted order must go too")
	}
}

func TestStore_OrderItemsFilterAndOrder(t *testing.T) {
	s := NewStore(nil)
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.MergeOrderItems([]domain.OrderItem{
		{ID: 3, OrderID: 1, Status: domain.ItemPreparing, CreatedAt: t0.Add(2 * time.Minute)},
		{ID: 1, OrderID: 1, Status: domain.ItemPending, CreatedAt: t0},
		{ID: 2, OrderID: 2, Status: domain.ItemDelivered, CreatedAt: t0.Add(time.Minute)},
	})
	got := s.OrderItems(OrderItemFilter{Statuses: []domain.OrderItemStatus{domain.ItemPending, domain.ItemPreparing}})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected oldest first among open items: %+v", got)
	}
	if got := s.OrderItems(OrderItemFilter{OrderID: 2}); len(got) != 1 {
		t.Fatalf("order filter: %+v", got)
	}
	s.DeleteOrderItem(2)
	if _, err := s.OrderItem(2); err != ErrNotFound {
		t.Fatalf("expected not found")
	}
}

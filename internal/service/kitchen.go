package service

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// KitchenService очередь кухни
type KitchenService struct {
	api   API
	store *repository.Store
	now   func() time.Time
}

func NewKitchenService(api API, store *repository.Store) *KitchenService {
	return &KitchenService{api: api, store: store, now: time.Now}
}

// TicketGroup позиции одного заказа
type TicketGroup struct {
	OrderID     int64    `json:"order_id"`
	TableNumber int      `json:"table_number"`
	Tickets     []Ticket `json:"tickets"`
}

// KitchenView данные панели кухни
type KitchenView struct {
	Groups    []TicketGroup `json:"groups"`
	Pending   int           `json:"pending"`
	Preparing int           `json:"preparing"`
	Overdue   int           `json:"overdue"`
}

// View groups the queue by order; groups keep the position of their
// oldest ticket.
func (s *KitchenService) View() KitchenView {
	items := s.store.OrderItems(repository.OrderItemFilter{
		Statuses: []domain.OrderItemStatus{domain.ItemPending, domain.ItemPreparing},
	})
	menu := make(map[int64]domain.MenuItem)
	for _, m := range s.store.MenuItems(repository.MenuFilter{}) {
		menu[m.ID] = m
	}

	v := KitchenView{Groups: []TicketGroup{}}
	index := make(map[int64]int)
	for _, t := range KitchenQueue(items, menu, s.now()) {
		switch t.Item.Status {
		case domain.ItemPending:
			v.Pending++
		case domain.ItemPreparing:
			v.Preparing++
		}
		if t.Overdue {
			v.Overdue++
		}
		if t.Item.MenuItemName == "" {
			t.Item.MenuItemName = menu[t.Item.MenuItemID].Name
		}
		i, ok := index[t.Item.OrderID]
		if !ok {
			g := TicketGroup{OrderID: t.Item.OrderID}
			if o, err := s.store.Order(t.Item.OrderID); err == nil {
				if tb, err := s.store.Table(o.TableID); err == nil {
					g.TableNumber = tb.Number
				}
			}
			v.Groups = append(v.Groups, g)
			i = len(v.Groups) - 1
			index[t.Item.OrderID] = i
		}
		v.Groups[i].Tickets = append(v.Groups[i].Tickets, t)
	}
	return v
}

// Advance moves an item one step: pending to preparing, preparing to ready.
func (s *KitchenService) Advance(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	cur, err := s.store.OrderItem(itemID)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.ItemPending && cur.Status != domain.ItemPreparing {
		return nil, fmt.Errorf("item %d is %s: %w", itemID, cur.Status, ErrInvalidTransition)
	}
	next, _ := cur.Status.Next()
	return setItemStatus(ctx, s.api, s.store, cur, next)
}

// SetItemStatus requests an explicit status; only the next step is allowed.
func (s *KitchenService) SetItemStatus(ctx context.Context, itemID int64, f ItemStatusForm) (*domain.OrderItem, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	cur, err := s.store.OrderItem(itemID)
	if err != nil {
		return nil, err
	}
	return setItemStatus(ctx, s.api, s.store, cur, domain.OrderItemStatus(f.Status))
}

func setItemStatus(ctx context.Context, api API, store *repository.Store, cur domain.OrderItem, to domain.OrderItemStatus) (*domain.OrderItem, error) {
	if err := CheckTransition(cur.Status, to); err != nil {
		return nil, fmt.Errorf("item %d %s -> %s: %w", cur.ID, cur.Status, to, err)
	}
	it, err := api.SetOrderItemStatus(ctx, cur.ID, to)
	if err != nil {
		return nil, fmt.Errorf("set item status: %w", err)
	}
	store.UpsertOrderItem(*it)
	return it, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// WaiterService панель официанта: зал, выдача, счета
type WaiterService struct {
	api     API
	store   *repository.Store
	display Display
	log     *slog.Logger
}

func NewWaiterService(api API, store *repository.Store, display Display, log *slog.Logger) *WaiterService {
	if log == nil {
		log = slog.Default()
	}
	return &WaiterService{api: api, store: store, display: display, log: log.With("component", "waiter")}
}

// TableCard столик с активным заказом
type TableCard struct {
	domain.Table
	Order *OrderView `json:"order,omitempty"`
}

// ReadyItem позиция, готовая к выдаче
type ReadyItem struct {
	domain.OrderItem
	TableNumber int `json:"table_number"`
}

// WaiterView данные панели официанта
type WaiterView struct {
	Tables     []TableCard  `json:"tables"`
	Summary    TableSummary `json:"summary"`
	Ready      []ReadyItem  `json:"ready"`
	Bills      []OrderView  `json:"bills"`
	Commission float64      `json:"commission"`
	Rate       float64      `json:"commission_rate"`
	Currency   string       `json:"currency"`
}

func (s *WaiterService) View(userID int64) WaiterView {
	tables := s.store.Tables(repository.TableFilter{})
	orders := s.store.Orders(repository.OrderFilter{})

	active := make(map[int64]domain.Order)
	for _, o := range orders {
		if o.Status == domain.OrderPaid {
			continue
		}
		// newest active order wins when the server left an older one open
		if _, seen := active[o.TableID]; !seen {
			active[o.TableID] = o
		}
	}

	v := WaiterView{
		Summary:    SummarizeTables(tables),
		Commission: Commission(orders, userID, s.display.WaiterCommission),
		Rate:       s.display.WaiterCommission,
		Currency:   s.display.Currency,
		Tables:     make([]TableCard, 0, len(tables)),
		Ready:      []ReadyItem{},
		Bills:      []OrderView{},
	}
	numbers := make(map[int64]int, len(tables))
	for _, t := range tables {
		numbers[t.ID] = t.Number
		card := TableCard{Table: t}
		if o, ok := active[t.ID]; ok {
			ov := orderView(s.store, o)
			card.Order = &ov
			if o.Status == domain.OrderUnpaid {
				v.Bills = append(v.Bills, ov)
			}
		}
		v.Tables = append(v.Tables, card)
	}

	for _, it := range s.store.OrderItems(repository.OrderItemFilter{Statuses: []domain.OrderItemStatus{domain.ItemReady}}) {
		ri := ReadyItem{OrderItem: it}
		if o, err := s.store.Order(it.OrderID); err == nil {
			ri.TableNumber = numbers[o.TableID]
		}
		v.Ready = append(v.Ready, ri)
	}
	return v
}

// Reserve marks an available table as reserved.
func (s *WaiterService) Reserve(ctx context.Context, tableID int64) (*domain.Table, error) {
	return s.moveTable(ctx, tableID, domain.TableAvailable, domain.TableReserved)
}

// Release frees a reserved table.
func (s *WaiterService) Release(ctx context.Context, tableID int64) (*domain.Table, error) {
	return s.moveTable(ctx, tableID, domain.TableReserved, domain.TableAvailable)
}

func (s *WaiterService) moveTable(ctx context.Context, tableID int64, from, to domain.TableStatus) (*domain.Table, error) {
	cur, err := s.store.Table(tableID)
	if err != nil {
		return nil, err
	}
	if cur.Status != from {
		return nil, fmt.Errorf("table %d is %s: %w", cur.Number, cur.Status, ErrInvalidTransition)
	}
	t, err := s.api.SetTableStatus(ctx, tableID, to)
	if err != nil {
		return nil, fmt.Errorf("set table status: %w", err)
	}
	s.store.UpsertTable(*t)
	return t, nil
}

// OpenOrder seats guests: creates an order for an available or reserved
// table. Table status is then re-read from the server.
func (s *WaiterService) OpenOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	cur, err := s.store.Table(tableID)
	if err != nil {
		return nil, err
	}
	if cur.Status == domain.TableOccupied {
		return nil, fmt.Errorf("table %d is occupied: %w", cur.Number, ErrInvalidTransition)
	}
	o, err := s.api.CreateOrder(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.store.UpsertOrder(*o)
	s.reconcileTables(ctx)
	return o, nil
}

// Deliver marks a ready item as delivered.
func (s *WaiterService) Deliver(ctx context.Context, itemID int64) (*domain.OrderItem, error) {
	cur, err := s.store.OrderItem(itemID)
	if err != nil {
		return nil, err
	}
	return setItemStatus(ctx, s.api, s.store, cur, domain.ItemDelivered)
}

// CloseBill pays an open or unpaid order.
func (s *WaiterService) CloseBill(ctx context.Context, orderID int64, f CloseBillForm) (*domain.Order, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	cur, err := s.store.Order(orderID)
	if err != nil {
		return nil, err
	}
	if cur.Status == domain.OrderPaid {
		return nil, fmt.Errorf("order %d is already paid: %w", orderID, ErrInvalidTransition)
	}
	o, err := s.api.CloseOrder(ctx, orderID, domain.PaymentMethod(f.PaymentMethod))
	if err != nil {
		return nil, fmt.Errorf("close bill: %w", err)
	}
	s.store.UpsertOrder(*o)
	s.reconcileTables(ctx)
	return o, nil
}

// reconcileTables re-reads tables after the server changed one as a side
// effect. A failure does not fail the action; the next poll catches up.
func (s *WaiterService) reconcileTables(ctx context.Context) {
	tables, err := s.api.ListTables(ctx)
	if err != nil {
		s.log.Warn("table refresh failed", "resource", domain.TopicTables, "error", err)
		return
	}
	s.store.ReplaceTables(tables)
}

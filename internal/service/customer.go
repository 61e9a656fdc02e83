package service

import (
	"context"
	"fmt"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// CustomerService панель гостя: меню, корзина, свои заказы
type CustomerService struct {
	api     API
	store   *repository.Store
	display Display
}

func NewCustomerService(api API, store *repository.Store, display Display) *CustomerService {
	return &CustomerService{api: api, store: store, display: display}
}

// OrderView заказ с вычисленными для экрана полями
type OrderView struct {
	domain.Order
	TableNumber    int     `json:"table_number"`
	Sum            float64 `json:"sum"`
	ReadyItems     int     `json:"ready_items"`
	CanRequestBill bool    `json:"can_request_bill"`
	CanClose       bool    `json:"can_close"`
}

func orderView(store *repository.Store, o domain.Order) OrderView {
	v := OrderView{
		Order:          o,
		Sum:            OrderTotal(o),
		CanRequestBill: o.Status == domain.OrderOpen && len(o.Items) > 0,
		CanClose:       o.Status == domain.OrderOpen || o.Status == domain.OrderUnpaid,
	}
	if t, err := store.Table(o.TableID); err == nil {
		v.TableNumber = t.Number
	}
	for _, it := range o.Items {
		if it.Status == domain.ItemReady {
			v.ReadyItems++
		}
	}
	return v
}

// CustomerView данные панели гостя
type CustomerView struct {
	Table     *domain.Table  `json:"table,omitempty"`
	Tables    []domain.Table `json:"tables"`
	Query     MenuQuery      `json:"query"`
	Menu      []MenuSection  `json:"menu"`
	Cart      domain.Cart    `json:"cart"`
	CartTotal float64        `json:"cart_total"`
	Orders    []OrderView    `json:"orders"`
	Currency  string         `json:"currency"`
}

// View builds the customer's screen. Unavailable items are hidden.
func (s *CustomerService) View(userID, tableID int64, cart domain.Cart, q MenuQuery) CustomerView {
	v := CustomerView{
		Tables:    s.store.Tables(repository.TableFilter{}),
		Query:     q,
		Cart:      cart,
		CartTotal: round2(cart.Total()),
		Currency:  s.display.Currency,
		Orders:    []OrderView{},
	}
	if t, err := s.store.Table(tableID); err == nil {
		v.Table = &t
	}

	items := s.store.MenuItems(repository.MenuFilter{
		Category:      domain.Category(q.Category),
		Query:         q.Q,
		OnlyAvailable: true,
		MaxPrice:      q.MaxPrice,
	})
	SortMenu(items, q.Sort)
	v.Menu = GroupMenu(items)

	if userID > 0 {
		for _, o := range s.store.Orders(repository.OrderFilter{UserID: userID}) {
			v.Orders = append(v.Orders, orderView(s.store, o))
		}
	}
	return v
}

// AddToCart validates the form against the local menu and adds the line.
func (s *CustomerService) AddToCart(cart *domain.Cart, f CartForm) error {
	if err := Validate(f); err != nil {
		return err
	}
	m, err := s.store.MenuItem(f.MenuItemID)
	if err != nil {
		return fmt.Errorf("menu item %d: %w", f.MenuItemID, err)
	}
	if !m.IsAvailable() {
		return fieldError("menu_item_id", m.Name+" is not available right now")
	}
	cart.Add(m, f.Quantity)
	return nil
}

// PlaceOrder sends the cart to the API. Lines go into the table's open
// order owned by the user when there is one, otherwise a new order is
// created. The lines the server accepted are returned even on error, so the
// caller can drop them from the cart and a retry sends only the rest.
func (s *CustomerService) PlaceOrder(ctx context.Context, userID, tableID int64, cart domain.Cart) (*domain.Order, []domain.CartLine, error) {
	if tableID <= 0 {
		return nil, nil, ErrNoTable
	}
	if cart.Empty() {
		return nil, nil, ErrEmptyCart
	}

	var orderID int64
	open := s.store.Orders(repository.OrderFilter{TableID: tableID, UserID: userID, Status: domain.OrderOpen})
	if len(open) > 0 {
		orderID = open[0].ID
	}
	if orderID == 0 {
		o, err := s.api.CreateOrder(ctx, tableID)
		if err != nil {
			return nil, nil, fmt.Errorf("create order: %w", err)
		}
		s.store.UpsertOrder(*o)
		orderID = o.ID
	}

	sent := make([]domain.CartLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		it, err := s.api.AddOrderItem(ctx, orderID, domain.OrderItemCreateRequest{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
		if err != nil {
			return nil, sent, fmt.Errorf("add %s: %w", l.Name, err)
		}
		s.store.UpsertOrderItem(*it)
		sent = append(sent, l)
	}

	o, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, sent, fmt.Errorf("reload order: %w", err)
	}
	s.store.UpsertOrder(*o)
	return o, sent, nil
}

// RequestBill moves an open order to unpaid.
func (s *CustomerService) RequestBill(ctx context.Context, orderID int64) (*domain.Order, error) {
	cur, err := s.store.Order(orderID)
	if err != nil {
		return nil, err
	}
	if cur.Status != domain.OrderOpen {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, cur.Status, ErrInvalidTransition)
	}
	o, err := s.api.SetOrderStatus(ctx, orderID, domain.OrderUnpaid)
	if err != nil {
		return nil, fmt.Errorf("request bill: %w", err)
	}
	s.store.UpsertOrder(*o)
	return o, nil
}

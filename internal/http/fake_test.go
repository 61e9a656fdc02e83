package httpapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"frontdesk/internal/apiclient"
	"frontdesk/internal/domain"
)

var (
	errNotImplemented = errors.New("not implemented in fake")
	errTimeout        = errors.New("timeout")
)

// fakeAPI covers the calls the handler tests make.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int64
	tables map[int64]domain.Table
	menu   map[int64]domain.MenuItem
	orders map[int64]domain.Order
	tokens []string

	itemCalls  int
	failItemAt int // AddOrderItem call that fails with errTimeout, 0 for none
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID: 500,
		tables: make(map[int64]domain.Table),
		menu:   make(map[int64]domain.MenuItem),
		orders: make(map[int64]domain.Order),
	}
}

var roleIDs = map[string]int64{"admin": 1, "customer": 2, "kitchen": 3, "waiter": 4}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	if password != "secret" {
		return nil, &apiclient.Error{StatusCode: 401, Message: "bad credentials"}
	}
	return &domain.LoginResponse{
		Token: "tok-" + username,
		User:  domain.User{ID: roleIDs[username], Username: username, Role: domain.Role(username)},
	}, nil
}

func (f *fakeAPI) ListTables(ctx context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeAPI) CreateTable(ctx context.Context, in domain.TableInput) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t := domain.Table{ID: f.nextID, Number: in.Number, Capacity: in.Capacity, Status: domain.TableAvailable}
	f.tables[t.ID] = t
	return &t, nil
}

func (f *fakeAPI) UpdateTable(ctx context.Context, id int64, in domain.TableInput) (*domain.Table, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) SetTableStatus(ctx context.Context, id int64, status domain.TableStatus) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tables[id]
	t.Status = status
	f.tables[id] = t
	return &t, nil
}

func (f *fakeAPI) DeleteTable(ctx context.Context, id int64) error {
	return &apiclient.Error{StatusCode: 409, Message: "table has orders"}
}

func (f *fakeAPI) CreateMenuItem(ctx context.Context, in domain.MenuItemInput) (*domain.MenuItem, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) UpdateMenuItem(ctx context.Context, id int64, in domain.MenuItemInput) (*domain.MenuItem, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, id int64) error { return errNotImplemented }

func (f *fakeAPI) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, &apiclient.Error{StatusCode: 404, Message: "order not found"}
	}
	o.Items = append([]domain.OrderItem{}, o.Items...)
	return &o, nil
}

// CreateOrder remembers which token asked, so tests can see the session's
// token reached the API.
func (f *fakeAPI) CreateOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, apiclient.TokenFrom(ctx))
	f.nextID++
	o := domain.Order{ID: f.nextID, TableID: tableID, UserID: roleIDs["customer"], Status: domain.OrderOpen, CreatedAt: time.Now()}
	f.orders[o.ID] = o
	return &o, nil
}

func (f *fakeAPI) AddOrderItem(ctx context.Context, orderID int64, in domain.OrderItemCreateRequest) (*domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemCalls++
	if f.itemCalls == f.failItemAt {
		return nil, errTimeout
	}
	o := f.orders[orderID]
	m := f.menu[in.MenuItemID]
	f.nextID++
	it := domain.OrderItem{
		ID: f.nextID, OrderID: orderID, MenuItemID: m.ID, MenuItemName: m.Name, Quantity: in.Quantity,
		UnitPrice: m.Price, TotalPrice: m.Price * float64(in.Quantity), Status: domain.ItemPending, CreatedAt: time.Now(),
	}
	o.Items = append(o.Items, it)
	f.orders[orderID] = o
	return &it, nil
}

func (f *fakeAPI) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) CloseOrder(ctx context.Context, id int64, method domain.PaymentMethod) (*domain.Order, error) {
	return nil, errNotImplemented
}

func (f *fakeAPI) SetOrderItemStatus(ctx context.Context, id int64, status domain.OrderItemStatus) (*domain.OrderItem, error) {
	return &domain.OrderItem{ID: id, OrderID: 900, MenuItemID: 10, MenuItemName: "Soup", Quantity: 1, Status: status}, nil
}

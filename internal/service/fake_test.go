package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"frontdesk/internal/apiclient"
	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// fakeAPI is a tiny in-memory stand-in for the remote server.
type fakeAPI struct {
	mu      sync.Mutex
	nextID  int64
	tables  map[int64]domain.Table
	menu    map[int64]domain.MenuItem
	orders  map[int64]domain.Order
	calls   []string
	failOn  map[string]error
	failNth map[string]int // fail only the n-th call of a method, with errBoom
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		nextID:  100,
		tables:  make(map[int64]domain.Table),
		menu:    make(map[int64]domain.MenuItem),
		orders:  make(map[int64]domain.Order),
		failOn:  make(map[string]error),
		failNth: make(map[string]int),
	}
}

func (f *fakeAPI) call(name string) error {
	f.calls = append(f.calls, name)
	if n, ok := f.failNth[name]; ok {
		seen := 0
		for _, c := range f.calls {
			if c == name {
				seen++
			}
		}
		if seen == n {
			return errBoom
		}
	}
	return f.failOn[name]
}

func (f *fakeAPI) id() int64 { f.nextID++; return f.nextID }

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("Login"); err != nil {
		return nil, err
	}
	if password != "secret" {
		return nil, &apiclient.Error{StatusCode: 401, Message: "bad credentials"}
	}
	role := domain.Role(username)
	return &domain.LoginResponse{Token: "tok-" + username, User: domain.User{ID: 1, Username: username, Role: role}}, nil
}

func (f *fakeAPI) ListTables(ctx context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("ListTables"); err != nil {
		return nil, err
	}
	out := make([]domain.Table, 0, len(f.tables))
	for _, t := range f.tables {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeAPI) CreateTable(ctx context.Context, in domain.TableInput) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateTable"); err != nil {
		return nil, err
	}
	t := domain.Table{ID: f.id(), Number: in.Number, Capacity: in.Capacity, Status: domain.TableAvailable}
	f.tables[t.ID] = t
	return &t, nil
}

func (f *fakeAPI) UpdateTable(ctx context.Context, id int64, in domain.TableInput) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UpdateTable"); err != nil {
		return nil, err
	}
	t, ok := f.tables[id]
	if !ok {
		return nil, &apiclient.Error{StatusCode: 404, Message: "table not found"}
	}
	t.Number, t.Capacity = in.Number, in.Capacity
	f.tables[id] = t
	return &t, nil
}

func (f *fakeAPI) SetTableStatus(ctx context.Context, id int64, status domain.TableStatus) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("SetTableStatus"); err != nil {
		return nil, err
	}
	t := f.tables[id]
	t.Status = status
	f.tables[id] = t
	return &t, nil
}

func (f *fakeAPI) DeleteTable(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteTable"); err != nil {
		return err
	}
	delete(f.tables, id)
	return nil
}

func (f *fakeAPI) CreateMenuItem(ctx context.Context, in domain.MenuItemInput) (*domain.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateMenuItem"); err != nil {
		return nil, err
	}
	m := menuFromInput(f.id(), in)
	f.menu[m.ID] = m
	return &m, nil
}

func (f *fakeAPI) UpdateMenuItem(ctx context.Context, id int64, in domain.MenuItemInput) (*domain.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("UpdateMenuItem"); err != nil {
		return nil, err
	}
	m := menuFromInput(id, in)
	f.menu[id] = m
	return &m, nil
}

func menuFromInput(id int64, in domain.MenuItemInput) domain.MenuItem {
	return domain.MenuItem{
		ID: id, Name: in.Name, Description: in.Description, Price: in.Price, Category: in.Category,
		DrinkType: in.DrinkType, PrepTime: in.PrepTime, Difficulty: in.Difficulty, Available: in.Available,
	}
}

func (f *fakeAPI) DeleteMenuItem(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("DeleteMenuItem"); err != nil {
		return err
	}
	delete(f.menu, id)
	return nil
}

func (f *fakeAPI) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("GetOrder"); err != nil {
		return nil, err
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, &apiclient.Error{StatusCode: 404, Message: "order not found"}
	}
	o.Items = append([]domain.OrderItem{}, o.Items...)
	return &o, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CreateOrder"); err != nil {
		return nil, err
	}
	o := domain.Order{ID: f.id(), TableID: tableID, UserID: 1, Status: domain.OrderOpen, CreatedAt: time.Now()}
	f.orders[o.ID] = o
	if t, ok := f.tables[tableID]; ok {
		t.Status = domain.TableOccupied
		f.tables[tableID] = t
	}
	return &o, nil
}

func (f *fakeAPI) AddOrderItem(ctx context.Context, orderID int64, in domain.OrderItemCreateRequest) (*domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("AddOrderItem"); err != nil {
		return nil, err
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, &apiclient.Error{StatusCode: 404, Message: "order not found"}
	}
	m := f.menu[in.MenuItemID]
	it := domain.OrderItem{
		ID: f.id(), OrderID: orderID, MenuItemID: in.MenuItemID, MenuItemName: m.Name,
		Quantity: in.Quantity, UnitPrice: m.Price, TotalPrice: m.Price * float64(in.Quantity),
		Status: domain.ItemPending, CreatedAt: time.Now(),
	}
	o.Items = append(o.Items, it)
	o.Total += it.TotalPrice
	f.orders[orderID] = o
	return &it, nil
}

func (f *fakeAPI) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("SetOrderStatus"); err != nil {
		return nil, err
	}
	o := f.orders[id]
	o.Status = status
	f.orders[id] = o
	return &o, nil
}

func (f *fakeAPI) CloseOrder(ctx context.Context, id int64, method domain.PaymentMethod) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("CloseOrder"); err != nil {
		return nil, err
	}
	o := f.orders[id]
	now := time.Now()
	o.Status, o.PaymentMethod, o.ClosedAt = domain.OrderPaid, &method, &now
	f.orders[id] = o
	if t, ok := f.tables[o.TableID]; ok {
		t.Status = domain.TableAvailable
		f.tables[o.TableID] = t
	}
	return &o, nil
}

func (f *fakeAPI) SetOrderItemStatus(ctx context.Context, id int64, status domain.OrderItemStatus) (*domain.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.call("SetOrderItemStatus"); err != nil {
		return nil, err
	}
	for oid, o := range f.orders {
		for i := range o.Items {
			if o.Items[i].ID == id {
				o.Items[i].Status = status
				f.orders[oid] = o
				it := o.Items[i]
				return &it, nil
			}
		}
	}
	return nil, &apiclient.Error{StatusCode: 404, Message: "item not found"}
}

var errBoom = errors.New("boom")

// seed puts the same data into the fake server and the local store.
func seed(api *fakeAPI, store *repository.Store) {
	api.mu.Lock()
	api.tables[1] = domain.Table{ID: 1, Number: 1, Capacity: 2, Status: domain.TableAvailable}
	api.tables[2] = domain.Table{ID: 2, Number: 2, Capacity: 4, Status: domain.TableReserved}
	prep := 10
	no := false
	api.menu[10] = domain.MenuItem{ID: 10, Name: "Soup", Price: 4.5, Category: domain.CategoryFood, PrepTime: &prep}
	api.menu[11] = domain.MenuItem{ID: 11, Name: "Lemonade", Price: 2, Category: domain.CategoryDrink, DrinkType: domain.DrinkNonAlcoholic}
	api.menu[12] = domain.MenuItem{ID: 12, Name: "Steak", Price: 20, Category: domain.CategoryFood, Available: &no}
	tables := []domain.Table{api.tables[1], api.tables[2]}
	menu := []domain.MenuItem{api.menu[10], api.menu[11], api.menu[12]}
	api.mu.Unlock()

	store.ReplaceTables(tables)
	store.ReplaceMenu(menu)
	store.ReplaceOrders(nil)
}

package service

import (
	"context"
	"errors"

	"frontdesk/internal/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoTable           = errors.New("no table selected")
)

// API операции удалённого сервера, которые используют панели
type API interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResponse, error)

	ListTables(ctx context.Context) ([]domain.Table, error)
	CreateTable(ctx context.Context, in domain.TableInput) (*domain.Table, error)
	UpdateTable(ctx context.Context, id int64, in domain.TableInput) (*domain.Table, error)
	SetTableStatus(ctx context.Context, id int64, status domain.TableStatus) (*domain.Table, error)
	DeleteTable(ctx context.Context, id int64) error

	CreateMenuItem(ctx context.Context, in domain.MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, in domain.MenuItemInput) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error

	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, tableID int64) (*domain.Order, error)
	AddOrderItem(ctx context.Context, orderID int64, in domain.OrderItemCreateRequest) (*domain.OrderItem, error)
	SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	CloseOrder(ctx context.Context, id int64, method domain.PaymentMethod) (*domain.Order, error)

	SetOrderItemStatus(ctx context.Context, id int64, status domain.OrderItemStatus) (*domain.OrderItem, error)
}

// Display настройки отображения; суммы и комиссия не авторитетны
type Display struct {
	Currency         string
	WaiterCommission float64
}

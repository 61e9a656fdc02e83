package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"frontdesk/internal/domain"
)

func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	var out domain.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, domain.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Tables

func (c *Client) ListTables(ctx context.Context) ([]domain.Table, error) {
	var out []domain.Table
	if err := c.do(ctx, http.MethodGet, "/tables", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTable(ctx context.Context, in domain.TableInput) (*domain.Table, error) {
	var out domain.Table
	if err := c.do(ctx, http.MethodPost, "/tables", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTable(ctx context.Context, id int64, in domain.TableInput) (*domain.Table, error) {
	var out domain.Table
	if err := c.do(ctx, http.MethodPut, idPath("/tables", id, ""), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetTableStatus(ctx context.Context, id int64, status domain.TableStatus) (*domain.Table, error) {
	var out domain.Table
	err := c.do(ctx, http.MethodPatch, idPath("/tables", id, "/status"), nil, domain.TableStatusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTable(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/tables", id, ""), nil, nil, nil)
}

// Menu

func (c *Client) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu-items", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, in domain.MenuItemInput) (*domain.MenuItem, error) {
	var out domain.MenuItem
	if err := c.do(ctx, http.MethodPost, "/menu-items", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id int64, in domain.MenuItemInput) (*domain.MenuItem, error) {
	var out domain.MenuItem
	if err := c.do(ctx, http.MethodPut, idPath("/menu-items", id, ""), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/menu-items", id, ""), nil, nil, nil)
}

// Orders

func (c *Client) ListOrders(ctx context.Context, q domain.OrderQuery) ([]domain.Order, error) {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.TableID > 0 {
		v.Set("table_id", strconv.FormatInt(q.TableID, 10))
	}
	if q.UserID > 0 {
		v.Set("user_id", strconv.FormatInt(q.UserID, 10))
	}
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, idPath("/orders", id, ""), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, tableID int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, domain.OrderCreateRequest{TableID: tableID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddOrderItem(ctx context.Context, orderID int64, in domain.OrderItemCreateRequest) (*domain.OrderItem, error) {
	var out domain.OrderItem
	if err := c.do(ctx, http.MethodPost, idPath("/orders", orderID, "/items"), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPatch, idPath("/orders", id, "/status"), nil, domain.OrderStatusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CloseOrder(ctx context.Context, id int64, method domain.PaymentMethod) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPost, idPath("/orders", id, "/close"), nil, domain.CloseOrderRequest{PaymentMethod: method}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Order items

func (c *Client) ListOrderItems(ctx context.Context, statuses ...domain.OrderItemStatus) ([]domain.OrderItem, error) {
	v := url.Values{}
	if len(statuses) > 0 {
		parts := make([]string, len(statuses))
		for i, s := range statuses {
			parts[i] = string(s)
		}
		v.Set("status", strings.Join(parts, ","))
	}
	var out []domain.OrderItem
	if err := c.do(ctx, http.MethodGet, "/order-items", v, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetOrderItemStatus(ctx context.Context, id int64, status domain.OrderItemStatus) (*domain.OrderItem, error) {
	var out domain.OrderItem
	err := c.do(ctx, http.MethodPatch, idPath("/order-items", id, "/status"), nil, domain.OrderItemStatusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

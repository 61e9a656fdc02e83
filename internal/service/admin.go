package service

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/domain"
	"frontdesk/internal/repository"
)

// AdminService панель администратора: столики и меню
type AdminService struct {
	api     API
	store   *repository.Store
	display Display
	now     func() time.Time
}

func NewAdminService(api API, store *repository.Store, display Display) *AdminService {
	return &AdminService{api: api, store: store, display: display, now: time.Now}
}

// AdminView данные панели администратора
type AdminView struct {
	Tables       []domain.Table  `json:"tables"`
	Summary      TableSummary    `json:"summary"`
	Menu         []MenuSection   `json:"menu"`
	OpenOrders   int             `json:"open_orders"`
	UnpaidOrders int             `json:"unpaid_orders"`
	PaidToday    float64         `json:"paid_today"`
	Currency     string          `json:"currency"`
	Loaded       map[string]bool `json:"loaded"`
}

func (s *AdminService) View() AdminView {
	tables := s.store.Tables(repository.TableFilter{})
	menu := s.store.MenuItems(repository.MenuFilter{})
	SortMenu(menu, "name")
	orders := s.store.Orders(repository.OrderFilter{})

	v := AdminView{
		Tables:    tables,
		Summary:   SummarizeTables(tables),
		Menu:      GroupMenu(menu),
		PaidToday: PaidRevenue(orders, s.now()),
		Currency:  s.display.Currency,
		Loaded:    loaded(s.store),
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderOpen:
			v.OpenOrders++
		case domain.OrderUnpaid:
			v.UnpaidOrders++
		}
	}
	return v
}

func loaded(store *repository.Store) map[string]bool {
	out := make(map[string]bool, len(domain.AllTopics))
	for _, t := range domain.AllTopics {
		out[string(t)] = store.Loaded(t)
	}
	return out
}

func (s *AdminService) CreateTable(ctx context.Context, f TableForm) (*domain.Table, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	for _, t := range s.store.Tables(repository.TableFilter{}) {
		if t.Number == f.Number {
			return nil, fieldError("number", fmt.Sprintf("%d is already used", f.Number))
		}
	}
	t, err := s.api.CreateTable(ctx, domain.TableInput{Number: f.Number, Capacity: f.Capacity})
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	s.store.UpsertTable(*t)
	return t, nil
}

func (s *AdminService) UpdateTable(ctx context.Context, id int64, f TableForm) (*domain.Table, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	t, err := s.api.UpdateTable(ctx, id, domain.TableInput{Number: f.Number, Capacity: f.Capacity})
	if err != nil {
		return nil, fmt.Errorf("update table: %w", err)
	}
	s.store.UpsertTable(*t)
	return t, nil
}

func (s *AdminService) DeleteTable(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if t, err := s.store.Table(id); err == nil && t.Status == domain.TableOccupied {
		return fmt.Errorf("table %d is occupied: %w", t.Number, ErrInvalidTransition)
	}
	if err := s.api.DeleteTable(ctx, id); err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	s.store.DeleteTable(id)
	return nil
}

func (s *AdminService) CreateMenuItem(ctx context.Context, f MenuItemForm) (*domain.MenuItem, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	m, err := s.api.CreateMenuItem(ctx, f.input())
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	s.store.UpsertMenuItem(*m)
	return m, nil
}

func (s *AdminService) UpdateMenuItem(ctx context.Context, id int64, f MenuItemForm) (*domain.MenuItem, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	if err := Validate(f); err != nil {
		return nil, err
	}
	m, err := s.api.UpdateMenuItem(ctx, id, f.input())
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	s.store.UpsertMenuItem(*m)
	return m, nil
}

// SetAvailability flips the availability flag, keeping the other fields
// as last seen locally.
func (s *AdminService) SetAvailability(ctx context.Context, id int64, available bool) (*domain.MenuItem, error) {
	cur, err := s.store.MenuItem(id)
	if err != nil {
		return nil, err
	}
	in := domain.InputOf(cur)
	in.Available = &available
	m, err := s.api.UpdateMenuItem(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	s.store.UpsertMenuItem(*m)
	return m, nil
}

func (s *AdminService) DeleteMenuItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.api.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	s.store.DeleteMenuItem(id)
	return nil
}

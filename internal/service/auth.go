package service

import (
	"context"
	"fmt"
	"strings"

	"frontdesk/internal/domain"
)

// AuthService вход через удалённый API. Права проверяет сервер.
type AuthService struct {
	api API
}

func NewAuthService(api API) *AuthService { return &AuthService{api: api} }

func (s *AuthService) Login(ctx context.Context, f LoginForm) (*domain.LoginResponse, error) {
	f.Username = strings.TrimSpace(f.Username)
	if err := Validate(f); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, f.Username, f.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !resp.User.Role.Valid() {
		return nil, fmt.Errorf("login: unknown role %q: %w", resp.User.Role, ErrInvalidInput)
	}
	return resp, nil
}

// DashboardPath is where a role lands after login.
func DashboardPath(r domain.Role) string {
	switch r {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleKitchen:
		return "/kitchen"
	case domain.RoleWaiter:
		return "/waiter"
	}
	return "/customer"
}

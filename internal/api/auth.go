package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// AuthService — регистрация, вход и профиль.
type AuthService struct {
	client *Client
	tokens TokenStore
}

// Register создаёт пользователя. Токены при этом не выдаются.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var user domain.User
	err := s.client.Do(ctx, http.MethodPost, RegisterPath, nil, reg, &user)
	return user, err
}

// Login получает пару токенов и сохраняет её.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Credentials, error) {
	var creds domain.Credentials
	req := domain.LoginRequest{Username: username, Password: password}
	if err := s.client.Do(ctx, http.MethodPost, LoginPath, nil, req, &creds); err != nil {
		return domain.Credentials{}, err
	}
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return domain.Credentials{}, fmt.Errorf("login response has no tokens")
	}
	if err := s.tokens.Save(creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("save credentials: %w", err)
	}
	return creds, nil
}

// Logout удаляет сохранённые токены. Сервер не уведомляется.
func (s *AuthService) Logout() error {
	return s.tokens.Clear()
}

type profileEnvelope struct {
	User domain.User `json:"user"`
}

// Profile возвращает текущего пользователя.
func (s *AuthService) Profile(ctx context.Context) (domain.User, error) {
	var out profileEnvelope
	err := s.client.Do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &out)
	return out.User, err
}

// UpdateProfile частично обновляет профиль.
func (s *AuthService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error) {
	var out profileEnvelope
	err := s.client.Do(ctx, http.MethodPatch, "/auth/profile/", nil, update, &out)
	return out.User, err
}

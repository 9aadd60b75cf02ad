// Package auth manages the client session: registration, login, logout and
// the access token handed to the sync layer.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/validation"
	pkgapi "github.com/iudanet/fitsync/pkg/api"
)

//go:generate moq -out api_mock.go . API

var (
	// ErrNotAuthenticated пользователь не выполнил login
	ErrNotAuthenticated = errors.New("not authenticated, please run 'fitsync login' first")
	// ErrSessionExpired срок действия access token истек
	ErrSessionExpired = errors.New("session expired, please run 'fitsync login' again")
)

// API эндпоинты авторизации сервера
type API interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
}

// Service предоставляет функции авторизации
type Service struct {
	api     API
	storage storage.AuthStorage
	now     func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(api API, st storage.AuthStorage) *Service {
	return &Service{
		api:     api,
		storage: st,
		now:     time.Now,
	}
}

// Register регистрирует нового пользователя и возвращает его id.
// Сессия не создается, нужен отдельный Login.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Register(ctx, pkgapi.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}
	return resp.UserID, nil
}

// Login выполняет аутентификацию и сохраняет сессию локально
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	session := &storage.AuthData{
		Username:    username,
		UserID:      resp.UserID,
		AccessToken: resp.AccessToken,
		ExpiresAt:   s.now().Unix() + resp.ExpiresIn,
	}
	if err := s.storage.SaveAuth(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Logout удаляет локальную сессию. Повторный logout не ошибка.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.storage.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session текущая сессия. Истекшая сессия возвращается вместе с
// ErrSessionExpired, чтобы можно было показать имя пользователя.
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	session, err := s.storage.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if s.now().Unix() >= session.ExpiresAt {
		return session, ErrSessionExpired
	}
	return session, nil
}

// Token access token текущей сессии (TokenSource для синхронизации)
func (s *Service) Token(ctx context.Context) (string, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return session.AccessToken, nil
}

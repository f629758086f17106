package application

import (
	"context"
	"errors"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates callers by login. Passwords follow the same
// opaque-string contract as the rest of the service.
type AuthService struct {
	Repo repository.UserRepository
}

func NewAuthService(repo repository.UserRepository) *AuthService {
	return &AuthService{Repo: repo}
}

func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*entity.User, error) {
	user, err := s.Repo.FindByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/segyhp/kos-management/internal/auth"
	"github.com/segyhp/kos-management/internal/domain"
	"github.com/segyhp/kos-management/internal/repository"
	customError "github.com/segyhp/kos-management/pkg/errors"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    slog.Default().With("component", "auth_service"),
	}
}

// Login checks the admin's password and issues a bearer token. Unknown
// emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, request.Email)
	if errors.Is(err, customError.ErrUserNotFound) {
		return nil, customError.WrapInvalidCredentials()
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		s.log.WarnContext(ctx, "login failed", "user_id", user.ID)
		return nil, customError.WrapInvalidCredentials()
	}

	if !user.IsAdmin() {
		return nil, customError.WrapForbidden("admin access required")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix(), User: user}, nil
}

// CreateAdmin registers a back-office user with the admin role
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	if len(password) < 8 {
		return nil, customError.WrapValidation(errors.New("password must be at least 8 characters"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        optional(phone),
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "admin created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopfront/ecommerce-backend/internal/config"
	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,
		cfg:   cfg,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyAuthInvalidRegistration, err)
	}

	// Check if user already exists
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, newError(ErrAlreadyExists, i18n.KeyAuthUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyAuthInvalidLogin, err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, newError(ErrUnauthorized, i18n.KeyAuthInvalidCredentials)
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Name, user.IsAdmin, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.TokenTTL * 3600, // Convert hours to seconds
	}, nil
}

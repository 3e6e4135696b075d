// internal/services/user_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shopfront/ecommerce-backend/internal/i18n"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/utils"
)

type UserService struct {
	users repository.UserRepository
}

type UpdateMobileRequest struct {
	Mobile string `json:"mobile" validate:"mobile"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"email"`
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(i18n.KeyUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateMobile(ctx context.Context, userID uuid.UUID, req *UpdateMobileRequest) (*models.User, error) {
	if req.Mobile == "" {
		return nil, badRequest(i18n.KeyUserMobileRequired)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyUserInvalidMobile, err)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Mobile = req.Mobile
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateEmail(ctx context.Context, userID uuid.UUID, req *UpdateEmailRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return nil, badRequest(i18n.KeyUserEmailRequired)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, validationFailed(i18n.KeyUserInvalidEmail, err)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Email == req.Email {
		return user, nil
	}

	// Check email uniqueness
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, newError(ErrAlreadyExists, i18n.KeyUserEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user.Email = req.Email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAddress(ctx context.Context, userID uuid.UUID, address *models.Address) (*models.User, error) {
	if field := missingAddressField(address); field != "" {
		return nil, badRequest(i18n.KeyUserMissingField, field)
	}
	if err := utils.ValidateStruct(address); err != nil {
		return nil, validationFailed(i18n.KeyUserInvalidAddress, err)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Address = *address
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

package service

import (
	"context"
	"errors"
	"log"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"gorm.io/gorm"
)

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ResetPassword(ctx context.Context, email, phone, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, issuer TokenIssuer) AuthService {
	return &authService{userRepo: userRepo, issuer: issuer}
}

// Login matches the stored password as-is; credentials are kept in plain text.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResetPassword sets a new password for the account whose email and phone
// number both match.
func (s *authService) ResetPassword(ctx context.Context, email, phone, newPassword string) error {
	if newPassword == "" {
		return engine.ErrInvalidInput
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecoveryFailed
		}
		return err
	}
	if user.PhoneNumber == "" || user.PhoneNumber != phone {
		return ErrRecoveryFailed
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return err
	}
	log.Printf("[AuthService] password reset for user %s", user.ID)
	return nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Create(ctx context.Context, actor models.Actor, user models.User) (*models.User, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.User, error)
	List(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Create registers a new account. Only trainees carry credits; any opening
// balance given to another role is dropped.
func (s *userService) Create(ctx context.Context, actor models.Actor, user models.User) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	user.ID = ""
	user.Name = strings.TrimSpace(user.Name)
	user.Email = models.NormalizeEmail(user.Email)
	if user.Name == "" || user.Email == "" || user.Password == "" || !user.Role.Valid() || user.Credits < 0 {
		return nil, engine.ErrInvalidInput
	}
	if !user.IsTrainee() {
		user.Credits = 0
	}

	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, s.userRepo.GetDB(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) Get(ctx context.Context, actor models.Actor, id string) (*models.User, error) {
	if !actor.CanActFor(id) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor models.Actor, role models.Role) ([]models.User, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, engine.ErrInvalidInput
	}
	return s.userRepo.List(ctx, role)
}

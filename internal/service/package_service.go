package service

import (
	"context"
	"errors"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultPackages is the catalog a fresh install starts with.
var DefaultPackages = []models.CreditPackage{
	{Name: "Starter", Credits: 5, Price: decimal.NewFromInt(50)},
	{Name: "Value", Credits: 12, Price: decimal.NewFromInt(100)},
	{Name: "Pro", Credits: 30, Price: decimal.NewFromInt(220)},
}

type PackageService interface {
	List(ctx context.Context) ([]models.CreditPackage, error)
	Create(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error)
	Update(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error)
	// EnsureDefaults seeds DefaultPackages when the catalog is empty.
	EnsureDefaults(ctx context.Context) error
}

type packageService struct {
	packageRepo repository.PackageRepository
}

func NewPackageService(packageRepo repository.PackageRepository) PackageService {
	return &packageService{packageRepo: packageRepo}
}

func (s *packageService) List(ctx context.Context) ([]models.CreditPackage, error) {
	return s.packageRepo.List(ctx)
}

func (s *packageService) Create(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := engine.ValidatePackage(&pkg); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Create(ctx, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *packageService) Update(ctx context.Context, actor models.Actor, pkg models.CreditPackage) (*models.CreditPackage, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := engine.ValidatePackage(&pkg); err != nil {
		return nil, err
	}
	if err := s.packageRepo.Update(ctx, &pkg); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return s.packageRepo.FindByID(ctx, pkg.ID)
}

func (s *packageService) EnsureDefaults(ctx context.Context) error {
	count, err := s.packageRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, pkg := range DefaultPackages {
		if err := s.packageRepo.Create(ctx, &pkg); err != nil {
			return err
		}
	}
	return nil
}

package repository

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *models.CreditPackage) error
	Update(ctx context.Context, pkg *models.CreditPackage) error
	FindByID(ctx context.Context, id string) (*models.CreditPackage, error)
	List(ctx context.Context) ([]models.CreditPackage, error)
	Count(ctx context.Context) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.CreditPackage) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) Update(ctx context.Context, pkg *models.CreditPackage) error {
	res := r.db.WithContext(ctx).
		Model(pkg).
		Select("name", "credits", "price").
		Updates(pkg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id string) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) List(ctx context.Context) ([]models.CreditPackage, error) {
	var pkgs []models.CreditPackage
	if err := r.db.WithContext(ctx).Order("price ASC, name ASC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CreditPackage{}).Count(&count).Error
	return count, err
}

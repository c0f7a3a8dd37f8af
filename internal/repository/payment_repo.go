package repository

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
	FindByTrainee(ctx context.Context, traineeID string) ([]models.Payment, error)
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) FindByTrainee(ctx context.Context, traineeID string) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Order(`"timestamp" DESC`).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

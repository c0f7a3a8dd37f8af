package repository

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	Append(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error
	FindByTrainee(ctx context.Context, traineeID string, limit int) ([]models.LedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, tx *gorm.DB, entry *models.LedgerEntry) error {
	return tx.WithContext(ctx).Create(entry).Error
}

// FindByTrainee returns the newest entries first; limit <= 0 means no limit.
func (r *ledgerRepository) FindByTrainee(ctx context.Context, traineeID string, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	q := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

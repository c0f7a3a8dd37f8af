package repository

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.Attendance) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID string) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.AttendanceStatus) error
	FindBySession(ctx context.Context, tx *gorm.DB, sessionID string) ([]models.Attendance, error)
	FindByTrainee(ctx context.Context, traineeID string) ([]models.Attendance, error)
	GetDB() *gorm.DB
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *attendanceRepository) Create(ctx context.Context, tx *gorm.DB, record *models.Attendance) error {
	return tx.WithContext(ctx).Omit("Session").Create(record).Error
}

func (r *attendanceRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Delete(&models.Attendance{}, "id = ?", id).Error
}

func (r *attendanceRepository) DeleteBySession(ctx context.Context, tx *gorm.DB, sessionID string) error {
	return tx.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.Attendance{}).Error
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.AttendanceStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// FindBySession returns every record of the session, oldest first.
func (r *attendanceRepository) FindBySession(ctx context.Context, tx *gorm.DB, sessionID string) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := tx.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order(`"timestamp" ASC, id ASC`).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepository) FindByTrainee(ctx context.Context, traineeID string) ([]models.Attendance, error) {
	var records []models.Attendance
	if err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Order(`"timestamp" DESC`).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

package repository

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.Session) error
	Update(ctx context.Context, tx *gorm.DB, session *models.Session) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Session, error)
	FindBySlot(ctx context.Context, tx *gorm.DB, date, clock string) ([]models.Session, error)
	List(ctx context.Context, filter SessionFilter) ([]models.Session, error)
	GetDB() *gorm.DB
}

type SessionFilter struct {
	TrainerID string
	From      string
	To        string
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *sessionRepository) Create(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	return tx.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Update(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	return tx.WithContext(ctx).
		Model(session).
		Select("trainer_id", "name", "date", "time", "location", "max_capacity").
		Updates(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return tx.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByIDForUpdate locks the session row for the rest of tx. Every toggle on
// the session queues behind this lock.
func (r *sessionRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindBySlot returns the sessions scheduled at date and clock; name matching
// is left to the caller.
func (r *sessionRepository) FindBySlot(ctx context.Context, tx *gorm.DB, date, clock string) ([]models.Session, error) {
	var sessions []models.Session
	if err := tx.WithContext(ctx).
		Where(`date = ? AND "time" = ?`, date, clock).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, error) {
	var sessions []models.Session
	q := r.db.WithContext(ctx)
	if filter.TrainerID != "" {
		q = q.Where("trainer_id = ?", filter.TrainerID)
	}
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	if err := q.Order("created_at DESC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is one scheduled class occurrence. Date is YYYY-MM-DD and Time is HH:MM,
// both read as wall-clock values in the studio's time zone.
type Session struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TrainerID   string    `gorm:"type:varchar(36);not null;index" json:"trainer_id"`
	Name        string    `gorm:"not null" json:"name"`
	Date        string    `gorm:"type:varchar(10);not null" json:"date"`
	Time        string    `gorm:"type:varchar(5);not null" json:"time"`
	Location    string    `json:"location"`
	MaxCapacity int       `gorm:"not null;default:0" json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Session) TableName() string {
	return "class_sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Bounded reports whether the session enforces a seat limit.
func (s *Session) Bounded() bool {
	return s.MaxCapacity > 0
}

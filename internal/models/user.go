package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleTrainee Role = "TRAINEE"
)

// IsStaff reports whether the role may book and cancel on behalf of trainees.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleTrainer
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleTrainee:
		return true
	}
	return false
}

type User struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email       string    `gorm:"not null;uniqueIndex" json:"email"`
	Name        string    `gorm:"not null" json:"name"`
	Role        Role      `gorm:"type:varchar(10);not null" json:"role"`
	Password    string    `gorm:"not null" json:"password,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Credits     int       `gorm:"not null;default:0" json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// IsTrainee reports whether the user carries a credit balance.
func (u *User) IsTrainee() bool {
	return u != nil && u.Role == RoleTrainee
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

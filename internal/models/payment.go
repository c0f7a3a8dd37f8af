package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentPending PaymentStatus = "PENDING"
)

// Payment ids are uuids for in-app purchases and the gateway's own reference
// for confirmations received from it.
type Payment struct {
	ID        string          `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TraineeID string          `gorm:"type:varchar(36);not null;index" json:"trainee_id"`
	PackageID string          `gorm:"type:varchar(36)" json:"package_id,omitempty"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Credits   int             `gorm:"not null" json:"credits"`
	Timestamp time.Time       `gorm:"not null" json:"timestamp"`
	Status    PaymentStatus   `gorm:"type:varchar(10);not null" json:"status"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type CreditPackage struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Credits   int             `gorm:"not null" json:"credits"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *CreditPackage) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

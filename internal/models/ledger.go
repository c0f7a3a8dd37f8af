package models

import "time"

type LedgerReason string

const (
	ReasonBooking        LedgerReason = "BOOKING"
	ReasonCancellation   LedgerReason = "CANCELLATION"
	ReasonPurchase       LedgerReason = "PURCHASE"
	ReasonAdjustment     LedgerReason = "ADJUSTMENT"
	ReasonSessionDeleted LedgerReason = "SESSION_DELETED"
)

// LedgerEntry records one change to a trainee's credit balance.
// Balance is the balance after Delta was applied.
type LedgerEntry struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	TraineeID string       `gorm:"type:varchar(36);not null;index" json:"trainee_id"`
	Delta     int          `gorm:"not null" json:"delta"`
	Balance   int          `gorm:"not null" json:"balance"`
	Reason    LedgerReason `gorm:"type:varchar(20);not null" json:"reason"`
	SessionID *string      `gorm:"type:varchar(36)" json:"session_id,omitempty"`
	PaymentID *string      `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	Note      string       `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

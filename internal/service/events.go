package service

import (
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/shopspring/decimal"
)

const (
	EventAttendanceBooked     = "attendance.booked"
	EventAttendanceWaitlisted = "attendance.waitlisted"
	EventAttendanceCancelled  = "attendance.cancelled"
	EventAttendancePromoted   = "attendance.promoted"
	EventAttendanceAttended   = "attendance.attended"
	EventSessionCreated       = "session.created"
	EventSessionUpdated       = "session.updated"
	EventSessionDeleted       = "session.deleted"
	EventPaymentSucceeded     = "payment.succeeded"
	EventWalletAdjusted       = "wallet.adjusted"
)

type AttendanceEvent struct {
	AttendanceID string                  `json:"attendance_id"`
	SessionID    string                  `json:"session_id"`
	TraineeID    string                  `json:"trainee_id"`
	Status       models.AttendanceStatus `json:"status"`
	Method       models.AttendanceMethod `json:"method"`
	OccurredAt   time.Time               `json:"occurred_at"`
}

func attendanceEvent(a models.Attendance, at time.Time) AttendanceEvent {
	return AttendanceEvent{
		AttendanceID: a.ID,
		SessionID:    a.SessionID,
		TraineeID:    a.TraineeID,
		Status:       a.Status,
		Method:       a.Method,
		OccurredAt:   at,
	}
}

type SessionEvent struct {
	Session         models.Session `json:"session"`
	RemovedRecords  int            `json:"removed_records,omitempty"`
	PromotedRecords int            `json:"promoted_records,omitempty"`
	OccurredAt      time.Time      `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID  string          `json:"payment_id"`
	TraineeID  string          `json:"trainee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Credits    int             `json:"credits"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type WalletEvent struct {
	TraineeID  string    `json:"trainee_id"`
	Delta      int       `json:"delta"`
	Balance    int       `json:"balance"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type AttendanceMethod string

const (
	MethodApp    AttendanceMethod = "APP"
	MethodManual AttendanceMethod = "MANUAL"
)

type AttendanceStatus string

const (
	StatusBooked     AttendanceStatus = "BOOKED"
	StatusAttended   AttendanceStatus = "ATTENDED"
	StatusWaitlisted AttendanceStatus = "WAITLISTED"
)

// HoldsSeat reports whether a record with this status counts against capacity.
func (s AttendanceStatus) HoldsSeat() bool {
	return s == StatusBooked || s == StatusAttended
}

type Attendance struct {
	ID        string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SessionID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_pair" json:"session_id"`
	TraineeID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_pair;index" json:"trainee_id"`
	Timestamp time.Time        `gorm:"not null" json:"timestamp"`
	Method    AttendanceMethod `gorm:"type:varchar(10);not null" json:"method"`
	Status    AttendanceStatus `gorm:"type:varchar(12);not null" json:"status"`

	Session *Session `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

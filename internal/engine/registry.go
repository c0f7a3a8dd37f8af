package engine

import (
	"strings"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
)

// SessionKey is the identity two sessions may not share: trimmed, case-folded
// name plus date and time.
func SessionKey(name, date, clock string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(date) + "|" + strings.TrimSpace(clock)
}

func keyOf(s *models.Session) string {
	return SessionKey(s.Name, s.Date, s.Time)
}

// ValidateSession normalises s in place and rejects malformed definitions.
func ValidateSession(s *models.Session) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Date = strings.TrimSpace(s.Date)
	s.Time = strings.TrimSpace(s.Time)
	s.Location = strings.TrimSpace(s.Location)

	if s.Name == "" {
		return newError(CodeInvalidInput, "Session name is required.")
	}
	d, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return newError(CodeInvalidInput, "Session date must be YYYY-MM-DD.")
	}
	clock, err := time.Parse(TimeLayout, s.Time)
	if err != nil {
		return newError(CodeInvalidInput, "Session time must be HH:MM.")
	}
	// Stored and compared in canonical form: "9:30" becomes "09:30".
	s.Date = d.Format(DateLayout)
	s.Time = clock.Format(TimeLayout)
	if s.MaxCapacity < 0 {
		return newError(CodeInvalidInput, "Session capacity cannot be negative.")
	}
	return nil
}

// CheckUnique fails with ErrDuplicateSession when another session in existing
// (any id other than candidate's) has the same key.
func CheckUnique(candidate *models.Session, existing []models.Session) error {
	key := keyOf(candidate)
	for i := range existing {
		if existing[i].ID == candidate.ID && candidate.ID != "" {
			continue
		}
		if keyOf(&existing[i]) == key {
			return ErrDuplicateSession
		}
	}
	return nil
}

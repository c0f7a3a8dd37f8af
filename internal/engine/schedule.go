package engine

import (
	"fmt"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultNotice = 30 * time.Minute
)

// Policy carries the studio-wide knobs the rules depend on.
type Policy struct {
	Location *time.Location
	Notice   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Location: time.Local, Notice: DefaultNotice}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Policy) notice() time.Duration {
	if p.Notice <= 0 {
		return DefaultNotice
	}
	return p.Notice
}

// StartTime resolves the session's wall-clock date and time in loc.
func StartTime(s *models.Session, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.Time, loc)
	if err != nil {
		return time.Time{}, newError(CodeInvalidInput, "Invalid session date or time: %q %q.", s.Date, s.Time)
	}
	return t, nil
}

// CancellationDeadline is the last instant (exclusive) at which a registration
// for s may still be withdrawn.
func (p Policy) CancellationDeadline(s *models.Session) (time.Time, error) {
	start, err := StartTime(s, p.location())
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-p.notice()), nil
}

// CheckCancellable fails with ErrCancellationLocked once now reaches the deadline.
func (p Policy) CheckCancellable(s *models.Session, now time.Time) error {
	start, err := StartTime(s, p.location())
	if err != nil {
		return err
	}
	remaining := start.Sub(now)
	if remaining > p.notice() {
		return nil
	}
	if remaining <= 0 {
		return newError(CodeCancellationLocked, "Cancellation failed: this session has already started or finished.")
	}
	return newError(CodeCancellationLocked,
		"Cancellation failed: this session starts in %d minutes. %s notice required.",
		int(remaining/time.Minute), noticeLabel(p.notice()))
}

func noticeLabel(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return fmt.Sprintf("%dm", int(d/time.Minute))
}

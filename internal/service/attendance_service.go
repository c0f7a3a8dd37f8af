package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"gorm.io/gorm"
)

// Roster is a session together with its attendance records.
type Roster struct {
	Session  *models.Session
	Records  []models.Attendance
	Waitlist []models.Attendance
}

func (r *Roster) SeatsTaken() int {
	return engine.SeatsTaken(r.Records)
}

type AttendanceService interface {
	Toggle(ctx context.Context, actor models.Actor, sessionID, traineeID string) (engine.Result, error)
	CheckIn(ctx context.Context, actor models.Actor, sessionID, traineeID string) (*models.Attendance, error)
	Roster(ctx context.Context, sessionID string) (*Roster, error)
	ListByTrainee(ctx context.Context, actor models.Actor, traineeID string) ([]models.Attendance, error)
}

type attendanceService struct {
	ledger
	sessionRepo    repository.SessionRepository
	attendanceRepo repository.AttendanceRepository
	policy         engine.Policy
	publisher      Publisher
	clock          Clock
}

func NewAttendanceService(
	sessionRepo repository.SessionRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	policy engine.Policy,
	publisher Publisher,
	clock Clock,
) AttendanceService {
	return &attendanceService{
		ledger:         ledger{userRepo: userRepo, ledgerRepo: ledgerRepo},
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		policy:         policy,
		publisher:      publisher,
		clock:          clock,
	}
}

// Toggle books traineeID into the session or withdraws them. The session row
// is locked first and the trainee row second, so concurrent toggles on one
// session run one after another and the balance is read under lock.
func (s *attendanceService) Toggle(ctx context.Context, actor models.Actor, sessionID, traineeID string) (engine.Result, error) {
	if !actor.CanActFor(traineeID) {
		return engine.Failure(ErrForbidden), ErrForbidden
	}

	now := s.clock.now()
	var decision engine.Decision

	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			return notFound(err)
		}

		trainee, err := s.userRepo.FindByIDForUpdate(ctx, tx, traineeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		records, err := s.attendanceRepo.FindBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		decision, err = s.policy.Toggle(engine.ToggleInput{
			Session:   session,
			TraineeID: traineeID,
			Trainee:   trainee,
			Records:   records,
			Actor:     actor.Role,
			Now:       now,
		})
		if err != nil {
			return err
		}
		return s.applyDecision(ctx, tx, trainee, decision)
	})
	if err != nil {
		return engine.Failure(err), err
	}

	s.publishDecision(decision, now)
	return decision.Result, nil
}

func (s *attendanceService) applyDecision(ctx context.Context, tx *gorm.DB, trainee *models.User, d engine.Decision) error {
	var sessionID string
	if d.Removed != nil {
		sessionID = d.Removed.SessionID
		if err := s.attendanceRepo.Delete(ctx, tx, d.Removed.ID); err != nil {
			return err
		}
	}
	if d.Created != nil {
		sessionID = d.Created.SessionID
		if err := s.attendanceRepo.Create(ctx, tx, d.Created); err != nil {
			return err
		}
	}
	for _, p := range d.Promoted {
		if err := s.attendanceRepo.UpdateStatus(ctx, tx, p.ID, p.Status); err != nil {
			return err
		}
	}

	if d.Delta == 0 || trainee == nil {
		return nil
	}
	reason := models.ReasonBooking
	if d.Delta > 0 {
		reason = models.ReasonCancellation
	}
	return s.apply(ctx, tx, trainee, d.Delta, models.LedgerEntry{Reason: reason, SessionID: &sessionID})
}

func (s *attendanceService) publishDecision(d engine.Decision, now time.Time) {
	switch {
	case d.Removed != nil:
		publish(s.publisher, EventAttendanceCancelled, attendanceEvent(*d.Removed, now))
	case d.Created != nil && d.Created.Status == models.StatusWaitlisted:
		publish(s.publisher, EventAttendanceWaitlisted, attendanceEvent(*d.Created, now))
	case d.Created != nil:
		publish(s.publisher, EventAttendanceBooked, attendanceEvent(*d.Created, now))
	}
	for _, p := range d.Promoted {
		log.Printf("[AttendanceService] promoted trainee %s into session %s", p.TraineeID, p.SessionID)
		publish(s.publisher, EventAttendancePromoted, attendanceEvent(p, now))
	}
}

// CheckIn marks a booked trainee as attended. Only staff can check people in.
func (s *attendanceService) CheckIn(ctx context.Context, actor models.Actor, sessionID, traineeID string) (*models.Attendance, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}

	var result models.Attendance
	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, sessionID); err != nil {
			return notFound(err)
		}
		records, err := s.attendanceRepo.FindBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		result, err = engine.CheckIn(records, traineeID)
		if err != nil {
			return err
		}
		return s.attendanceRepo.UpdateStatus(ctx, tx, result.ID, result.Status)
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, EventAttendanceAttended, attendanceEvent(result, s.clock.now()))
	return &result, nil
}

func (s *attendanceService) Roster(ctx context.Context, sessionID string) (*Roster, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, notFound(err)
	}
	records, err := s.attendanceRepo.FindBySession(ctx, s.attendanceRepo.GetDB(), sessionID)
	if err != nil {
		return nil, err
	}
	return &Roster{
		Session:  session,
		Records:  records,
		Waitlist: engine.Waitlist(records),
	}, nil
}

func (s *attendanceService) ListByTrainee(ctx context.Context, actor models.Actor, traineeID string) ([]models.Attendance, error) {
	if !actor.CanActFor(traineeID) {
		return nil, ErrForbidden
	}
	return s.attendanceRepo.FindByTrainee(ctx, traineeID)
}

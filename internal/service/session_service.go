package service

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"gorm.io/gorm"
)

type SessionService interface {
	Create(ctx context.Context, actor models.Actor, session models.Session) (*models.Session, error)
	Update(ctx context.Context, actor models.Actor, session models.Session) (*models.Session, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	Get(ctx context.Context, id string) (*models.Session, error)
	List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error)
}

type sessionService struct {
	ledger
	sessionRepo    repository.SessionRepository
	attendanceRepo repository.AttendanceRepository
	refundOnDelete bool
	publisher      Publisher
	clock          Clock
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	refundOnDelete bool,
	publisher Publisher,
	clock Clock,
) SessionService {
	return &sessionService{
		ledger:         ledger{userRepo: userRepo, ledgerRepo: ledgerRepo},
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		refundOnDelete: refundOnDelete,
		publisher:      publisher,
		clock:          clock,
	}
}

func (s *sessionService) Create(ctx context.Context, actor models.Actor, session models.Session) (*models.Session, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if session.TrainerID == "" {
		session.TrainerID = actor.ID
	}
	if err := engine.ValidateSession(&session); err != nil {
		return nil, err
	}

	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkUnique(ctx, tx, &session); err != nil {
			return err
		}
		return s.sessionRepo.Create(ctx, tx, &session)
	})
	if err != nil {
		return nil, duplicate(err)
	}

	publish(s.publisher, EventSessionCreated, SessionEvent{Session: session, OccurredAt: s.clock.now()})
	return &session, nil
}

// Update replaces a session's definition. Seats added by a larger capacity are
// filled from the waitlist in booking order.
func (s *sessionService) Update(ctx context.Context, actor models.Actor, session models.Session) (*models.Session, error) {
	if !actor.Role.IsStaff() {
		return nil, ErrForbidden
	}
	if err := engine.ValidateSession(&session); err != nil {
		return nil, err
	}

	var promoted []models.Attendance
	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.sessionRepo.FindByIDForUpdate(ctx, tx, session.ID)
		if err != nil {
			return notFound(err)
		}
		if session.TrainerID == "" {
			session.TrainerID = current.TrainerID
		}
		session.CreatedAt = current.CreatedAt

		if err := s.checkUnique(ctx, tx, &session); err != nil {
			return err
		}
		if err := s.sessionRepo.Update(ctx, tx, &session); err != nil {
			return err
		}

		records, err := s.attendanceRepo.FindBySession(ctx, tx, session.ID)
		if err != nil {
			return err
		}
		promoted = engine.Promotions(&session, records)
		for _, p := range promoted {
			if err := s.attendanceRepo.UpdateStatus(ctx, tx, p.ID, p.Status); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, duplicate(err)
	}

	now := s.clock.now()
	publish(s.publisher, EventSessionUpdated, SessionEvent{Session: session, PromotedRecords: len(promoted), OccurredAt: now})
	for _, p := range promoted {
		publish(s.publisher, EventAttendancePromoted, attendanceEvent(p, now))
	}
	return &session, nil
}

// Delete removes the session and all of its attendance records. Credits spent
// on those records are returned only when refundOnDelete is set.
func (s *sessionService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if !actor.Role.IsStaff() {
		return ErrForbidden
	}

	var (
		session *models.Session
		removed []models.Attendance
	)
	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		session, err = s.sessionRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return notFound(err)
		}
		removed, err = s.attendanceRepo.FindBySession(ctx, tx, id)
		if err != nil {
			return err
		}
		if s.refundOnDelete {
			if err := s.refund(ctx, tx, id, removed); err != nil {
				return err
			}
		}
		if err := s.attendanceRepo.DeleteBySession(ctx, tx, id); err != nil {
			return err
		}
		return s.sessionRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("[SessionService] deleted session %s with %d attendance records", id, len(removed))
	publish(s.publisher, EventSessionDeleted, SessionEvent{Session: *session, RemovedRecords: len(removed), OccurredAt: s.clock.now()})
	return nil
}

// refund returns one credit per removed record. Trainee rows are locked in id
// order.
func (s *sessionService) refund(ctx context.Context, tx *gorm.DB, sessionID string, records []models.Attendance) error {
	for _, traineeID := range lockOrder(records) {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, traineeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		entry := models.LedgerEntry{Reason: models.ReasonSessionDeleted, SessionID: &sessionID}
		if err := s.apply(ctx, tx, user, engine.BookingCost, entry); err != nil {
			return err
		}
	}
	return nil
}

// lockOrder returns the distinct trainee ids of records, sorted.
func lockOrder(records []models.Attendance) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TraineeID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (s *sessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context, filter repository.SessionFilter) ([]models.Session, error) {
	return s.sessionRepo.List(ctx, filter)
}

func (s *sessionService) checkUnique(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	existing, err := s.sessionRepo.FindBySlot(ctx, tx, session.Date, session.Time)
	if err != nil {
		return err
	}
	return engine.CheckUnique(session, existing)
}

// duplicate maps a unique index violation on the session key to the rule
// error; the index catches inserts that race past checkUnique.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return engine.ErrDuplicateSession
	}
	return err
}

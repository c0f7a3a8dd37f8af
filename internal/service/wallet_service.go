package service

import (
	"context"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/repository"
	"gorm.io/gorm"
)

const historyLimit = 50

// ledger is the only code that writes a balance. Services call apply from
// inside their own transaction so the balance moves together with the record
// that caused it.
type ledger struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
}

// apply changes user's balance by delta and appends a ledger entry. user must
// have been read with a row lock in tx.
func (l ledger) apply(ctx context.Context, tx *gorm.DB, user *models.User, delta int, entry models.LedgerEntry) error {
	applied, err := engine.Adjust(user, delta)
	if err != nil {
		return err
	}
	if applied == 0 {
		return nil
	}
	if err := l.userRepo.UpdateCredits(ctx, tx, user.ID, user.Credits); err != nil {
		return err
	}
	entry.TraineeID = user.ID
	entry.Delta = applied
	entry.Balance = user.Credits
	return l.ledgerRepo.Append(ctx, tx, &entry)
}

type Wallet struct {
	Trainee *models.User
	History []models.LedgerEntry
}

type WalletService interface {
	Get(ctx context.Context, actor models.Actor, traineeID string) (*Wallet, error)
	Adjust(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error)
}

type walletService struct {
	ledger
	publisher Publisher
	clock     Clock
}

func NewWalletService(userRepo repository.UserRepository, ledgerRepo repository.LedgerRepository, publisher Publisher, clock Clock) WalletService {
	return &walletService{
		ledger:    ledger{userRepo: userRepo, ledgerRepo: ledgerRepo},
		publisher: publisher,
		clock:     clock,
	}
}

func (s *walletService) Get(ctx context.Context, actor models.Actor, traineeID string) (*Wallet, error) {
	if !actor.CanActFor(traineeID) {
		return nil, ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, traineeID)
	if err != nil {
		return nil, notFound(err)
	}
	if !user.IsTrainee() {
		return nil, engine.ErrInvalidUser
	}
	history, err := s.ledgerRepo.FindByTrainee(ctx, traineeID, historyLimit)
	if err != nil {
		return nil, err
	}
	return &Wallet{Trainee: user, History: history}, nil
}

// Adjust is the administrator's manual balance edit.
func (s *walletService) Adjust(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if delta == 0 {
		return nil, engine.ErrInvalidInput
	}

	var result *models.User
	err := s.userRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, traineeID)
		if err != nil {
			return notFound(err)
		}
		if !user.IsTrainee() {
			return engine.ErrInvalidUser
		}
		entry := models.LedgerEntry{Reason: models.ReasonAdjustment, Note: note}
		if err := s.apply(ctx, tx, user, delta, entry); err != nil {
			return err
		}
		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(s.publisher, EventWalletAdjusted, WalletEvent{
		TraineeID:  result.ID,
		Delta:      delta,
		Balance:    result.Credits,
		Note:       note,
		OccurredAt: s.clock.now(),
	})
	return result, nil
}

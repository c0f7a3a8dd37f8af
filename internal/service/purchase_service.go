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

type PurchaseService interface {
	// Purchase checks the request now and commits it after the payment delay.
	Purchase(ctx context.Context, actor models.Actor, packageID string) (*Pending, error)
	// Complete records a payment the gateway has already confirmed. A payment id
	// seen before fails with ErrPaymentExists and changes nothing.
	Complete(ctx context.Context, paymentID, traineeID, packageID string) (*models.Payment, error)
	History(ctx context.Context, actor models.Actor, traineeID string) ([]models.Payment, error)
}

type purchaseService struct {
	ledger
	paymentRepo repository.PaymentRepository
	packageRepo repository.PackageRepository
	delay       time.Duration
	publisher   Publisher
	clock       Clock
}

func NewPurchaseService(
	paymentRepo repository.PaymentRepository,
	packageRepo repository.PackageRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	delay time.Duration,
	publisher Publisher,
	clock Clock,
) PurchaseService {
	return &purchaseService{
		ledger:      ledger{userRepo: userRepo, ledgerRepo: ledgerRepo},
		paymentRepo: paymentRepo,
		packageRepo: packageRepo,
		delay:       delay,
		publisher:   publisher,
		clock:       clock,
	}
}

func (s *purchaseService) Purchase(ctx context.Context, actor models.Actor, packageID string) (*Pending, error) {
	if actor.Role != models.RoleTrainee {
		return nil, engine.ErrInvalidUser
	}
	pkg, err := s.findPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	trainee, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFound(err)
	}
	if !trainee.IsTrainee() {
		return nil, engine.ErrInvalidUser
	}

	// The commit must outlive the request that started it.
	commitCtx := context.WithoutCancel(ctx)
	return startPending(s.delay, func() (*models.Payment, error) {
		return s.commit(commitCtx, "", trainee.ID, *pkg)
	}), nil
}

func (s *purchaseService) Complete(ctx context.Context, paymentID, traineeID, packageID string) (*models.Payment, error) {
	if paymentID == "" {
		return nil, engine.ErrInvalidInput
	}
	pkg, err := s.findPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, paymentID, traineeID, *pkg)
}

func (s *purchaseService) commit(ctx context.Context, paymentID, traineeID string, pkg models.CreditPackage) (*models.Payment, error) {
	var payment models.Payment

	err := s.paymentRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if paymentID != "" {
			exists, err := s.paymentRepo.Exists(ctx, tx, paymentID)
			if err != nil {
				return err
			}
			if exists {
				return ErrPaymentExists
			}
		}

		trainee, err := s.userRepo.FindByIDForUpdate(ctx, tx, traineeID)
		if err != nil {
			return notFound(err)
		}
		if !trainee.IsTrainee() {
			return engine.ErrInvalidUser
		}

		payment = engine.NewPayment(trainee.ID, pkg, s.clock.now())
		if paymentID != "" {
			payment.ID = paymentID
		}
		if err := s.paymentRepo.Create(ctx, tx, &payment); err != nil {
			return err
		}
		entry := models.LedgerEntry{Reason: models.ReasonPurchase, PaymentID: &payment.ID}
		return s.apply(ctx, tx, trainee, pkg.Credits, entry)
	})
	if paymentID != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrPaymentExists
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[PurchaseService] trainee %s bought %d credits (payment %s)", payment.TraineeID, payment.Credits, payment.ID)
	publish(s.publisher, EventPaymentSucceeded, PaymentEvent{
		PaymentID:  payment.ID,
		TraineeID:  payment.TraineeID,
		Amount:     payment.Amount,
		Credits:    payment.Credits,
		OccurredAt: payment.Timestamp,
	})
	return &payment, nil
}

func (s *purchaseService) History(ctx context.Context, actor models.Actor, traineeID string) ([]models.Payment, error) {
	if !actor.CanActFor(traineeID) {
		return nil, ErrForbidden
	}
	return s.paymentRepo.FindByTrainee(ctx, traineeID)
}

func (s *purchaseService) findPackage(ctx context.Context, id string) (*models.CreditPackage, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if err := engine.ValidatePackage(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

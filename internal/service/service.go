package service

import (
	"errors"
	"log"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"gorm.io/gorm"
)

var (
	ErrForbidden          = errors.New("forbidden")
	ErrPackageNotFound    = errors.New("package not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRecoveryFailed     = errors.New("verification failed: check your email and phone number")
	ErrPurchaseCancelled  = errors.New("purchase cancelled before completion")
	ErrPaymentExists      = errors.New("payment already recorded")
)

// Publisher delivers domain events to whoever listens. A nil Publisher
// disables publishing.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func publish(p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("[Events] failed to publish %s: %v", routingKey, err)
	}
}

// notFound maps a missing row to the engine's not-found error and passes
// anything else through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return engine.ErrNotFound
	}
	return err
}

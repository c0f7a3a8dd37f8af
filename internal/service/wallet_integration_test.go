//go:build integration

package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustWallet(t *testing.T) {
	cleanTables()
	s := newStack(baseNow, false)
	trainee := createTrainee(t, "adjusted", 2)

	user, err := s.wallet.Adjust(t.Context(), admin, trainee.ID, 3, "goodwill")
	require.NoError(t, err)
	assert.Equal(t, 5, user.Credits)

	_, err = s.wallet.Adjust(t.Context(), admin, trainee.ID, -6, "too much")
	assert.ErrorIs(t, err, engine.ErrInsufficientCredits)
	assert.Equal(t, 5, balance(t, trainee.ID))

	_, err = s.wallet.Adjust(t.Context(), models.Actor{ID: "trainer", Role: models.RoleTrainer}, trainee.ID, 1, "")
	assert.ErrorIs(t, err, service.ErrForbidden)

	wallet, err := s.wallet.Get(t.Context(), models.Actor{ID: trainee.ID, Role: models.RoleTrainee}, trainee.ID)
	require.NoError(t, err)
	require.Len(t, wallet.History, 1)
	assert.Equal(t, models.ReasonAdjustment, wallet.History[0].Reason)
	assert.Equal(t, 3, wallet.History[0].Delta)
	assert.Equal(t, 5, wallet.History[0].Balance)
}

func TestPurchase(t *testing.T) {
	cleanTables()
	s := newStack(baseNow, false)
	trainee := createTrainee(t, "buyer", 0)
	pkg, err := s.packages.Create(t.Context(), admin, models.CreditPackage{Name: "Ten", Credits: 10, Price: decimal.NewFromInt(80)})
	require.NoError(t, err)

	actor := models.Actor{ID: trainee.ID, Role: models.RoleTrainee}
	pending, err := s.purchases.Purchase(t.Context(), actor, pkg.ID)
	require.NoError(t, err)

	payment, err := pending.Wait(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 10, payment.Credits)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, models.PaymentSuccess, payment.Status)
	assert.Equal(t, 10, balance(t, trainee.ID))

	history, err := s.purchases.History(t.Context(), actor, trainee.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestPurchaseCancelled(t *testing.T) {
	cleanTables()
	s := newStack(baseNow, false)
	trainee := createTrainee(t, "hesitant", 0)
	pkg, err := s.packages.Create(t.Context(), admin, models.CreditPackage{Name: "Five", Credits: 5, Price: decimal.NewFromInt(50)})
	require.NoError(t, err)

	// A longer delay keeps the task cancellable for the whole test.
	slow := newPurchaseService(time.Hour)
	pending, err := slow.Purchase(t.Context(), models.Actor{ID: trainee.ID, Role: models.RoleTrainee}, pkg.ID)
	require.NoError(t, err)
	assert.True(t, pending.Cancel())

	_, err = pending.Wait(t.Context())
	assert.ErrorIs(t, err, service.ErrPurchaseCancelled)
	assert.Equal(t, 0, balance(t, trainee.ID))
}

func TestCompleteIsIdempotent(t *testing.T) {
	cleanTables()
	s := newStack(baseNow, false)
	trainee := createTrainee(t, "gateway", 0)
	pkg, err := s.packages.Create(t.Context(), admin, models.CreditPackage{Name: "Twelve", Credits: 12, Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = s.purchases.Complete(t.Context(), "gw-123", trainee.ID, pkg.ID)
	require.NoError(t, err)
	_, err = s.purchases.Complete(t.Context(), "gw-123", trainee.ID, pkg.ID)
	assert.True(t, errors.Is(err, service.ErrPaymentExists))
	assert.Equal(t, 12, balance(t, trainee.ID))

	_, err = s.purchases.Complete(t.Context(), "gw-124", trainee.ID, "missing")
	assert.ErrorIs(t, err, service.ErrPackageNotFound)
}

func TestEnsureDefaultPackages(t *testing.T) {
	cleanTables()
	s := newStack(baseNow, false)

	require.NoError(t, s.packages.EnsureDefaults(t.Context()))
	require.NoError(t, s.packages.EnsureDefaults(t.Context()))

	pkgs, err := s.packages.List(t.Context())
	require.NoError(t, err)
	require.Len(t, pkgs, len(service.DefaultPackages))
	assert.Equal(t, "Starter", pkgs[0].Name)
}

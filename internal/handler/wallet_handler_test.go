package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/calgorix23-creator/AttendEase-v2/internal/dto"
	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWallet_Handler(t *testing.T) {
	wallet := &mockWalletService{
		getFn: func(ctx context.Context, actor models.Actor, traineeID string) (*service.Wallet, error) {
			return &service.Wallet{
				Trainee: &models.User{ID: traineeID, Credits: 7},
				History: []models.LedgerEntry{{ID: 1, TraineeID: traineeID, Delta: -1, Balance: 7, Reason: models.ReasonBooking}},
			}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/trainees/trainee-1/wallet", "", traineeActor, "id", "trainee-1")

	require.NoError(t, NewWalletHandler(wallet, nil).GetWallet(c))

	var resp dto.WalletResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Credits)
	require.Len(t, resp.History, 1)
	assert.Equal(t, models.ReasonBooking, resp.History[0].Reason)
}

func TestAdjustWallet_Handler(t *testing.T) {
	wallet := &mockWalletService{
		adjustFn: func(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error) {
			assert.Equal(t, 5, delta)
			assert.Equal(t, "promo", note)
			return &models.User{ID: traineeID, Role: models.RoleTrainee, Credits: 5, Password: "secret"}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/v1/trainees/t1/wallet/adjustments", `{"delta":5,"note":"promo"}`, adminActor, "id", "t1")

	require.NoError(t, NewWalletHandler(wallet, nil).AdjustWallet(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestAdjustWallet_Handler_ZeroDelta(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/v1/trainees/t1/wallet/adjustments", `{"delta":0}`, adminActor, "id", "t1")

	err := NewWalletHandler(nil, nil).AdjustWallet(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAdjustWallet_Handler_NegativeBalance(t *testing.T) {
	wallet := &mockWalletService{
		adjustFn: func(ctx context.Context, actor models.Actor, traineeID string, delta int, note string) (*models.User, error) {
			return nil, engine.ErrInsufficientCredits
		},
	}
	c, _ := newContext(http.MethodPost, "/api/v1/trainees/t1/wallet/adjustments", `{"delta":-50}`, adminActor, "id", "t1")

	err := NewWalletHandler(wallet, nil).AdjustWallet(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, he.Code)
}

func TestPurchase_Handler_MissingPackage(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/v1/purchases", `{}`, traineeActor)

	err := NewWalletHandler(nil, &mockPurchaseService{}).Purchase(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPurchase_Handler_UnknownPackage(t *testing.T) {
	purchases := &mockPurchaseService{
		purchaseFn: func(ctx context.Context, actor models.Actor, packageID string) (*service.Pending, error) {
			return nil, service.ErrPackageNotFound
		},
	}
	c, _ := newContext(http.MethodPost, "/api/v1/purchases", `{"package_id":"nope"}`, traineeActor)

	err := NewWalletHandler(nil, purchases).Purchase(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListPayments_Handler_Forbidden(t *testing.T) {
	purchases := &mockPurchaseService{
		historyFn: func(ctx context.Context, actor models.Actor, traineeID string) ([]models.Payment, error) {
			return nil, service.ErrForbidden
		},
	}
	c, _ := newContext(http.MethodGet, "/api/v1/trainees/other/payments", "", traineeActor, "id", "other")

	err := NewWalletHandler(nil, purchases).ListPayments(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestHTTPError_Unexpected(t *testing.T) {
	err := httpError(errors.New("disk on fire"))

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, "disk on fire", he.Message)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/calgorix23-creator/AttendEase-v2/internal/engine"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
	"github.com/calgorix23-creator/AttendEase-v2/pkg/database"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error to its response status. The original error
// is kept as the internal error so the error handler can report its code.
func httpError(err error) error {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrRecoveryFailed):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPackageNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPaymentExists),
		errors.Is(err, service.ErrPurchaseCancelled):
		status = http.StatusConflict
	case database.Unavailable(err):
		status = http.StatusServiceUnavailable
		msg = "storage unreachable"
	default:
		switch engine.CodeOf(err) {
		case engine.CodeNotFound:
			status = http.StatusNotFound
		case engine.CodeDuplicateSession, engine.CodeCancellationLocked:
			status = http.StatusConflict
		case engine.CodeInsufficientCredits:
			status = http.StatusPaymentRequired
		case engine.CodeInvalidUser:
			status = http.StatusUnprocessableEntity
		case engine.CodeInvalidInput:
			status = http.StatusBadRequest
		}
	}

	return echo.NewHTTPError(status, msg).SetInternal(err)
}

package engine

import (
	"strings"
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/google/uuid"
)

// ValidatePackage normalises pkg in place and rejects unusable catalog items.
func ValidatePackage(pkg *models.CreditPackage) error {
	pkg.Name = strings.TrimSpace(pkg.Name)
	if pkg.Name == "" {
		return newError(CodeInvalidInput, "Package name is required.")
	}
	if pkg.Credits <= 0 {
		return newError(CodeInvalidInput, "Package must grant at least one credit.")
	}
	if pkg.Price.IsNegative() {
		return newError(CodeInvalidInput, "Package price cannot be negative.")
	}
	return nil
}

// NewPayment builds the successful payment record for buying pkg.
func NewPayment(traineeID string, pkg models.CreditPackage, now time.Time) models.Payment {
	return models.Payment{
		ID:        uuid.NewString(),
		TraineeID: traineeID,
		PackageID: pkg.ID,
		Amount:    pkg.Price,
		Credits:   pkg.Credits,
		Timestamp: now,
		Status:    models.PaymentSuccess,
	}
}

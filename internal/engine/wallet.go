package engine

import "github.com/calgorix23-creator/AttendEase-v2/internal/models"

// BookingCost is what one registration takes from the wallet.
const BookingCost = 1

// Adjust applies delta to u's balance and reports the change actually applied.
// Only trainees carry a balance; anyone else is left untouched. A change that
// would leave the balance negative is refused.
func Adjust(u *models.User, delta int) (int, error) {
	if !u.IsTrainee() {
		return 0, nil
	}
	if u.Credits+delta < 0 {
		return 0, ErrInsufficientCredits
	}
	u.Credits += delta
	return delta, nil
}

func Credit(u *models.User, amount int) (int, error) {
	return Adjust(u, amount)
}

func Debit(u *models.User, amount int) (int, error) {
	return Adjust(u, -amount)
}

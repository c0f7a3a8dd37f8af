package models

// Actor is the authenticated caller on whose authority an operation runs.
type Actor struct {
	ID   string
	Role Role
}

// CanActFor reports whether the actor may operate on userID's bookings and wallet.
func (a Actor) CanActFor(userID string) bool {
	return a.Role.IsStaff() || a.ID == userID
}

package dto

import (
	"time"

	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/calgorix23-creator/AttendEase-v2/internal/service"
)

type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	PhoneNumber string      `json:"phone_number,omitempty"`
	Credits     int         `json:"credits"`
	CreatedAt   time.Time   `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type RosterResponse struct {
	Session        models.Session      `json:"session"`
	Records        []models.Attendance `json:"attendance"`
	Booked         int                 `json:"booked_count"`
	Attended       int                 `json:"attended_count"`
	Waitlisted     int                 `json:"waitlisted_count"`
	SeatsAvailable *int                `json:"seats_available,omitempty"`
}

type WalletResponse struct {
	TraineeID string               `json:"trainee_id"`
	Credits   int                  `json:"credits"`
	History   []models.LedgerEntry `json:"history"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Credits:     u.Credits,
		CreatedAt:   u.CreatedAt,
	}
}

func ToUserResponses(users []models.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}

// ToRosterResponse counts the records by status. SeatsAvailable is left out
// for sessions without a seat limit.
func ToRosterResponse(r *service.Roster) RosterResponse {
	resp := RosterResponse{Session: *r.Session, Records: r.Records}
	if resp.Records == nil {
		resp.Records = []models.Attendance{}
	}
	for _, rec := range r.Records {
		switch rec.Status {
		case models.StatusBooked:
			resp.Booked++
		case models.StatusAttended:
			resp.Attended++
		case models.StatusWaitlisted:
			resp.Waitlisted++
		}
	}
	if r.Session.Bounded() {
		seats := max(r.Session.MaxCapacity-r.SeatsTaken(), 0)
		resp.SeatsAvailable = &seats
	}
	return resp
}

func ToWalletResponse(w *service.Wallet) WalletResponse {
	history := w.History
	if history == nil {
		history = []models.LedgerEntry{}
	}
	return WalletResponse{TraineeID: w.Trainee.ID, Credits: w.Trainee.Credits, History: history}
}

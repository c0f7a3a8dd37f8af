package dto

import (
	"github.com/calgorix23-creator/AttendEase-v2/internal/models"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NewPassword string `json:"new_password"`
}

type SessionRequest struct {
	TrainerID   string `json:"trainer_id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	MaxCapacity int    `json:"max_capacity"`
}

func (r SessionRequest) ToModel(id string) models.Session {
	return models.Session{
		ID:          id,
		TrainerID:   r.TrainerID,
		Name:        r.Name,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		MaxCapacity: r.MaxCapacity,
	}
}

// ToggleRequest names the trainee to toggle. Trainees may leave it empty to
// act for themselves.
type ToggleRequest struct {
	TraineeID string `json:"trainee_id"`
}

type AdjustWalletRequest struct {
	Delta int    `json:"delta"`
	Note  string `json:"note"`
}

type PackageRequest struct {
	Name    string          `json:"name"`
	Credits int             `json:"credits"`
	Price   decimal.Decimal `json:"price"`
}

func (r PackageRequest) ToModel(id string) models.CreditPackage {
	return models.CreditPackage{ID: id, Name: r.Name, Credits: r.Credits, Price: r.Price}
}

type PurchaseRequest struct {
	PackageID string `json:"package_id"`
}

type CreateUserRequest struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	Password    string      `json:"password"`
	PhoneNumber string      `json:"phone_number"`
	Credits     int         `json:"credits"`
}

func (r CreateUserRequest) ToModel() models.User {
	return models.User{
		Email:       r.Email,
		Name:        r.Name,
		Role:        r.Role,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
		Credits:     r.Credits,
	}
}

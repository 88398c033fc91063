package staff

import (
	"errors"
	"time"

	"restaurant-pos/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrFullNameRequired  = errors.New("staff full name is required")
	ErrLocationRequired  = errors.New("staff location is required")
	ErrInvalidHourlyRate = errors.New("hourly rate cannot be negative")
)

type Member struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	LocationID   uuid.UUID
	RestaurantID *uuid.UUID
	FullName     string
	Email        string
	Role         user.Role
	Phone        string
	HourlyRate   *float64
	IsActive     bool
	HiredAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateInput registers a staff member. A non-empty Password also creates a sign-in
// identity and profile for them.
type CreateInput struct {
	LocationID uuid.UUID
	FullName   string
	Email      string
	Password   string
	Role       user.Role
	Phone      string
	HourlyRate *float64
	HiredAt    *time.Time
}

func (in CreateInput) Validate() error {
	if in.LocationID == uuid.Nil {
		return ErrLocationRequired
	}
	if in.FullName == "" {
		return ErrFullNameRequired
	}
	if in.Email != "" || in.Password != "" {
		if _, err := user.NewEmail(in.Email); err != nil {
			return err
		}
	}
	if in.Password != "" {
		if _, err := user.NewPassword(in.Password); err != nil {
			return err
		}
	}
	if !in.Role.IsValid() {
		return user.ErrInvalidRole
	}
	return validateRate(in.HourlyRate)
}

type UpdateInput struct {
	FullName   *string
	Email      *string
	Role       *user.Role
	Phone      *string
	HourlyRate *float64
	IsActive   *bool
}

func (in UpdateInput) Validate() error {
	if in.FullName != nil && *in.FullName == "" {
		return ErrFullNameRequired
	}
	if in.Email != nil {
		if _, err := user.NewEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.Role != nil && !in.Role.IsValid() {
		return user.ErrInvalidRole
	}
	return validateRate(in.HourlyRate)
}

func validateRate(rate *float64) error {
	if rate != nil && *rate < 0 {
		return ErrInvalidHourlyRate
	}
	return nil
}

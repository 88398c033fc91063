package location

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNameRequired   = errors.New("location name is required")
	ErrInvalidTaxRate = errors.New("tax rate must be between 0 and 100")
	ErrInvalidStatus  = errors.New("invalid location status")
	ErrNoRestaurant   = errors.New("restaurant is required")
)

type Location struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Address      string
	Phone        string
	Timezone     string
	TaxRate      float64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (l Location) IsActive() bool {
	return l.Status == StatusActive
}

// TimeZone resolves Timezone, falling back to UTC when the name is empty or unknown.
func (l Location) TimeZone() *time.Location {
	if l.Timezone == "" {
		return time.UTC
	}
	tz, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return tz
}

type CreateInput struct {
	RestaurantID uuid.UUID
	Name         string
	Address      string
	Phone        string
	Timezone     string
	TaxRate      float64
	Status       Status
}

func (in CreateInput) Validate() error {
	if in.RestaurantID == uuid.Nil {
		return ErrNoRestaurant
	}
	if in.Name == "" {
		return ErrNameRequired
	}
	if err := validateTaxRate(in.TaxRate); err != nil {
		return err
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateInput carries only the fields the caller wants to change.
type UpdateInput struct {
	Name     *string
	Address  *string
	Phone    *string
	Timezone *string
	TaxRate  *float64
	Status   *Status
}

func (in UpdateInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return ErrNameRequired
	}
	if in.TaxRate != nil {
		if err := validateTaxRate(*in.TaxRate); err != nil {
			return err
		}
	}
	if in.Status != nil && !in.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

func validateTaxRate(rate float64) error {
	if rate < 0 || rate > 100 {
		return ErrInvalidTaxRate
	}
	return nil
}

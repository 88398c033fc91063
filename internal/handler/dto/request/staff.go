package request

import (
	"time"

	"restaurant-pos/internal/domain/staff"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/pkg/patch"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	LocationID uuid.UUID  `json:"location_id" binding:"required"`
	FullName   string     `json:"full_name" binding:"required"`
	Email      string     `json:"email,omitempty" binding:"omitempty,email"`
	Password   string     `json:"password,omitempty" binding:"omitempty,min=6"`
	Role       string     `json:"role,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	HourlyRate *float64   `json:"hourly_rate,omitempty" binding:"omitempty,gte=0"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
}

func (r CreateStaffRequest) ToDomain() staff.CreateInput {
	return staff.CreateInput{
		LocationID: r.LocationID,
		FullName:   r.FullName,
		Email:      r.Email,
		Password:   r.Password,
		Role:       user.Role(r.Role),
		Phone:      r.Phone,
		HourlyRate: r.HourlyRate,
		HiredAt:    r.HiredAt,
	}
}

type UpdateStaffRequest struct {
	FullName   *string  `json:"full_name,omitempty"`
	Email      *string  `json:"email,omitempty" binding:"omitempty,email"`
	Role       *string  `json:"role,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" binding:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active,omitempty"`
}

func (r UpdateStaffRequest) ToDomain() staff.UpdateInput {
	return staff.UpdateInput{
		FullName:   r.FullName,
		Email:      r.Email,
		Role:       patch.Convert[string, user.Role](r.Role),
		Phone:      r.Phone,
		HourlyRate: r.HourlyRate,
		IsActive:   r.IsActive,
	}
}

package response

import (
	"time"

	"restaurant-pos/internal/domain/staff"

	"github.com/google/uuid"
)

type StaffResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	LocationID   uuid.UUID  `json:"locationId"`
	RestaurantID *uuid.UUID `json:"restaurantId,omitempty"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Phone        string     `json:"phone"`
	HourlyRate   *float64   `json:"hourlyRate,omitempty"`
	IsActive     bool       `json:"isActive"`
	HiredAt      *time.Time `json:"hiredAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func FromStaff(m staff.Member) StaffResponse {
	return copyAs[StaffResponse](&m)
}

func FromStaffList(ms []staff.Member) []StaffResponse {
	return copyAll[StaffResponse](ms)
}

package response

import (
	"time"

	"restaurant-pos/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID                   uuid.UUID   `json:"id"`
	Email                string      `json:"email"`
	FullName             string      `json:"fullName"`
	Role                 string      `json:"role"`
	RestaurantID         *uuid.UUID  `json:"restaurantId,omitempty"`
	DefaultLocationID    *uuid.UUID  `json:"defaultLocationId,omitempty"`
	ManagedRestaurantIDs []uuid.UUID `json:"managedRestaurantIds"`
	Language             string      `json:"language"`
	IsActive             bool        `json:"isActive"`
	LastLoginAt          *time.Time  `json:"lastLoginAt,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
}

func FromUser(u user.User) UserResponse {
	resp := copyAs[UserResponse](&u)
	if resp.ManagedRestaurantIDs == nil {
		resp.ManagedRestaurantIDs = []uuid.UUID{}
	}
	return resp
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

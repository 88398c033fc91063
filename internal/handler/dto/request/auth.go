package request

import (
	"restaurant-pos/internal/domain/user"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=6"`
	FullName     string     `json:"full_name" binding:"required"`
	Role         string     `json:"role,omitempty"`
	RestaurantID *uuid.UUID `json:"restaurant_id,omitempty"`
	Language     string     `json:"language,omitempty"`
}

func (r SignUpRequest) ToDomain() user.SignUpInput {
	return user.SignUpInput{
		Email:        r.Email,
		Password:     r.Password,
		FullName:     r.FullName,
		Role:         user.Role(r.Role),
		RestaurantID: r.RestaurantID,
		Language:     r.Language,
	}
}

// UpdateProfileRequest changes the signed-in operator's own profile. Absent fields are kept.
type UpdateProfileRequest struct {
	Role     *string `json:"role,omitempty"`
	Language *string `json:"language,omitempty"`
}

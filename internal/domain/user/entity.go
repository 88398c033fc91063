package user

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the signed-in operator composed from the identity account and its profile row.
type User struct {
	ID                   uuid.UUID
	Email                string
	FullName             string
	Role                 Role
	RestaurantID         *uuid.UUID
	DefaultLocationID    *uuid.UUID
	ManagedRestaurantIDs []uuid.UUID
	Language             string
	IsActive             bool
	LastLoginAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Profile is the input for creating the profile row that backs a User.
type Profile struct {
	UserID       uuid.UUID
	Email        string
	FullName     string
	Role         Role
	RestaurantID *uuid.UUID
	Language     string
}

type SignUpInput struct {
	Email        string
	Password     string
	FullName     string
	Role         Role
	RestaurantID *uuid.UUID
	Language     string
}

func (in SignUpInput) Validate() error {
	if _, err := NewEmail(in.Email); err != nil {
		return err
	}
	if _, err := NewPassword(in.Password); err != nil {
		return err
	}
	if in.FullName == "" {
		return ErrFullNameEmpty
	}
	if in.Role != "" && !in.Role.IsValid() {
		return ErrInvalidRole
	}
	if in.Language != "" {
		if _, err := NewLanguage(in.Language); err != nil {
			return err
		}
	}
	return nil
}

func (u User) ManagesRestaurant(id uuid.UUID) bool {
	return slices.Contains(u.ManagedRestaurantIDs, id)
}

// CanAccessRestaurant reports whether u may operate on data of the given restaurant.
func (u User) CanAccessRestaurant(id uuid.UUID) bool {
	switch {
	case u.Role == RoleSuperAdmin:
		return true
	case u.Role == RoleSubSuperAdmin:
		return len(u.ManagedRestaurantIDs) == 0 || u.ManagesRestaurant(id)
	default:
		return u.RestaurantID != nil && *u.RestaurantID == id
	}
}

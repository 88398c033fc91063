//go:build unit || e2e

package builder

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/memory"
	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type UserBuilder struct {
	Email                string
	Password             string
	FullName             string
	Role                 user.Role
	RestaurantID         *uuid.UUID
	DefaultLocationID    *uuid.UUID
	ManagedRestaurantIDs []uuid.UUID
	Language             string
	IsActive             bool
}

func NewUserBuilder() *UserBuilder {
	restaurantID := uuid.New()
	return &UserBuilder{
		Email:        "test@example.com",
		Password:     "password123",
		FullName:     "Test Operator",
		Role:         user.RoleManager,
		RestaurantID: &restaurantID,
		Language:     user.DefaultLanguage,
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() user.User {
	return user.User{
		ID:                   uuid.New(),
		Email:                u.Email,
		FullName:             u.FullName,
		Role:                 u.Role,
		RestaurantID:         u.RestaurantID,
		DefaultLocationID:    u.DefaultLocationID,
		ManagedRestaurantIDs: u.ManagedRestaurantIDs,
		Language:             u.Language,
		IsActive:             u.IsActive,
	}
}

// BuildProfile returns the profiles row for an identity with the given id.
func (u *UserBuilder) BuildProfile(id string) wire.Record {
	rec := converter.ProfileToRecord(user.Profile{
		UserID:       uuid.MustParse(id),
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         u.Role,
		RestaurantID: u.RestaurantID,
		Language:     u.Language,
	})
	managed := make([]string, len(u.ManagedRestaurantIDs))
	for i, m := range u.ManagedRestaurantIDs {
		managed[i] = m.String()
	}
	rec["managed_restaurant_ids"] = managed
	rec["is_active"] = u.IsActive
	if u.DefaultLocationID != nil {
		rec["default_location_id"] = u.DefaultLocationID.String()
	}
	return rec
}

// Seed registers the identity and its profile on a memory backend and returns the user id.
func (u *UserBuilder) Seed(t *testing.T, b *memory.Backend) uuid.UUID {
	t.Helper()
	acct, err := b.SignUp(context.Background(), u.Email, u.Password)
	require.NoError(t, err)
	require.NoError(t, b.Seed(wire.TableProfiles, u.BuildProfile(acct.UserID)))
	return uuid.MustParse(acct.UserID)
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role user.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithRestaurantID(id uuid.UUID) *UserBuilder {
	u.RestaurantID = &id
	return u
}

func (u *UserBuilder) WithoutRestaurant() *UserBuilder {
	u.RestaurantID = nil
	return u
}

func (u *UserBuilder) WithDefaultLocation(id uuid.UUID) *UserBuilder {
	u.DefaultLocationID = &id
	return u
}

func (u *UserBuilder) Managing(ids ...uuid.UUID) *UserBuilder {
	u.ManagedRestaurantIDs = ids
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

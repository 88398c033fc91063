package location

import (
	"slices"
	"strings"

	"restaurant-pos/internal/domain/user"

	"github.com/google/uuid"
)

// Scope is the restaurant filter a caller's location listing runs under.
type Scope struct {
	All           bool
	RestaurantIDs []uuid.UUID
}

// ScopeFor derives the listing filter from the caller's role. A zero Scope with no
// restaurant ids means the caller can see nothing and no query should be issued.
func ScopeFor(u user.User) Scope {
	switch u.Role {
	case user.RoleSuperAdmin:
		return Scope{All: true}
	case user.RoleSubSuperAdmin:
		if len(u.ManagedRestaurantIDs) > 0 {
			return Scope{RestaurantIDs: slices.Clone(u.ManagedRestaurantIDs)}
		}
		return Scope{All: true}
	default:
		if u.RestaurantID == nil {
			return Scope{}
		}
		return Scope{RestaurantIDs: []uuid.UUID{*u.RestaurantID}}
	}
}

func (s Scope) IsEmpty() bool {
	return !s.All && len(s.RestaurantIDs) == 0
}

func (s Scope) Allows(restaurantID uuid.UUID) bool {
	return s.All || slices.Contains(s.RestaurantIDs, restaurantID)
}

func SortByName(locs []Location) {
	slices.SortStableFunc(locs, func(a, b Location) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// SelectDefault picks the location a terminal should work in after a fetch: the stored
// default when present in locs, else the first active one, else the first one.
func SelectDefault(locs []Location, defaultID *uuid.UUID) *Location {
	if len(locs) == 0 {
		return nil
	}
	if defaultID != nil {
		for i := range locs {
			if locs[i].ID == *defaultID {
				l := locs[i]
				return &l
			}
		}
	}
	for i := range locs {
		if locs[i].IsActive() {
			l := locs[i]
			return &l
		}
	}
	l := locs[0]
	return &l
}

package converter

import (
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/wire"
)

func UserFromProfile(rec wire.Record) (user.User, error) {
	r := newReader(rec, wire.TableProfiles)
	u := user.User{
		ID:                   r.uuid("id"),
		Email:                r.str("email"),
		FullName:             r.str("full_name"),
		Role:                 user.Role(r.str("role")),
		RestaurantID:         r.uuidPtr("restaurant_id"),
		DefaultLocationID:    r.uuidPtr("default_location_id"),
		ManagedRestaurantIDs: r.uuidList("managed_restaurant_ids"),
		Language:             r.str("language"),
		IsActive:             r.bool("is_active"),
		LastLoginAt:          r.timePtr("last_login_at"),
		CreatedAt:            r.time("created_at"),
		UpdatedAt:            r.time("updated_at"),
	}
	if r.err != nil {
		return user.User{}, r.err
	}
	if u.Language == "" {
		u.Language = user.DefaultLanguage
	}
	return u, nil
}

func ProfileToRecord(p user.Profile) wire.Record {
	role := p.Role
	if role == "" {
		role = user.RoleStaff
	}
	lang := p.Language
	if lang == "" {
		lang = user.DefaultLanguage
	}
	return wire.Record{
		"id":                     p.UserID.String(),
		"email":                  p.Email,
		"full_name":              p.FullName,
		"role":                   role.String(),
		"restaurant_id":          uuidOrNil(p.RestaurantID),
		"managed_restaurant_ids": []string{},
		"language":               lang,
		"is_active":              true,
	}
}

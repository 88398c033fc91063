package converter

import (
	"restaurant-pos/internal/domain/staff"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/patch"

	"github.com/google/uuid"
)

func StaffFromRecord(rec wire.Record) (staff.Member, error) {
	r := newReader(rec, wire.TableStaffMembers)
	m := staff.Member{
		ID:           r.uuid("id"),
		UserID:       r.uuidPtr("user_id"),
		LocationID:   r.uuid("location_id"),
		RestaurantID: r.uuidPtr("restaurant_id"),
		FullName:     r.str("full_name"),
		Email:        r.str("email"),
		Role:         user.Role(r.str("role")),
		Phone:        r.str("phone"),
		HourlyRate:   r.floatPtr("hourly_rate"),
		IsActive:     r.bool("is_active"),
		HiredAt:      r.timePtr("hired_at"),
		CreatedAt:    r.time("created_at"),
		UpdatedAt:    r.time("updated_at"),
	}
	if r.err != nil {
		return staff.Member{}, r.err
	}
	return m, nil
}

func StaffFromRecords(recs []wire.Record) ([]staff.Member, error) {
	return mapAll(recs, StaffFromRecord)
}

func StaffCreateToRecord(in staff.CreateInput, restaurantID, userID *uuid.UUID) wire.Record {
	return wire.Record{
		"user_id":       uuidOrNil(userID),
		"location_id":   in.LocationID.String(),
		"restaurant_id": uuidOrNil(restaurantID),
		"full_name":     in.FullName,
		"email":         in.Email,
		"role":          in.Role.String(),
		"phone":         in.Phone,
		"hourly_rate":   floatOrNil(in.HourlyRate),
		"is_active":     true,
		"hired_at":      timeOrNil(in.HiredAt),
	}
}

func StaffPatchToRecord(in staff.UpdateInput) wire.Record {
	rec := wire.Record{}
	patch.Set(rec, "full_name", in.FullName)
	patch.Set(rec, "email", in.Email)
	patch.Set(rec, "phone", in.Phone)
	patch.Set(rec, "hourly_rate", in.HourlyRate)
	patch.Set(rec, "is_active", in.IsActive)
	if in.Role != nil {
		rec["role"] = in.Role.String()
	}
	return rec
}

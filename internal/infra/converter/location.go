package converter

import (
	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/patch"
)

func LocationFromRecord(rec wire.Record) (location.Location, error) {
	r := newReader(rec, wire.TableLocations)
	l := location.Location{
		ID:           r.uuid("id"),
		RestaurantID: r.uuid("restaurant_id"),
		Name:         r.str("name"),
		Address:      r.str("address"),
		Phone:        r.str("phone"),
		Timezone:     r.str("timezone"),
		TaxRate:      r.float("tax_rate"),
		Status:       location.Status(r.str("status")),
		CreatedAt:    r.time("created_at"),
		UpdatedAt:    r.time("updated_at"),
	}
	if r.err != nil {
		return location.Location{}, r.err
	}
	return l, nil
}

func LocationsFromRecords(recs []wire.Record) ([]location.Location, error) {
	return mapAll(recs, LocationFromRecord)
}

func LocationCreateToRecord(in location.CreateInput) wire.Record {
	status := in.Status
	if status == "" {
		status = location.StatusActive
	}
	tz := in.Timezone
	if tz == "" {
		tz = "UTC"
	}
	return wire.Record{
		"restaurant_id": in.RestaurantID.String(),
		"name":          in.Name,
		"address":       in.Address,
		"phone":         in.Phone,
		"timezone":      tz,
		"tax_rate":      in.TaxRate,
		"status":        status.String(),
	}
}

func LocationPatchToRecord(in location.UpdateInput) wire.Record {
	rec := wire.Record{}
	patch.Set(rec, "name", in.Name)
	patch.Set(rec, "address", in.Address)
	patch.Set(rec, "phone", in.Phone)
	patch.Set(rec, "timezone", in.Timezone)
	patch.Set(rec, "tax_rate", in.TaxRate)
	if in.Status != nil {
		rec["status"] = in.Status.String()
	}
	return rec
}

func mapAll[T any](recs []wire.Record, fn func(wire.Record) (T, error)) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := fn(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

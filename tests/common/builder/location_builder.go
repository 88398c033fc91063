//go:build unit || e2e

package builder

import (
	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
)

type LocationBuilder struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Timezone     string
	TaxRate      float64
	Status       location.Status
}

func NewLocationBuilder(restaurantID uuid.UUID) *LocationBuilder {
	return &LocationBuilder{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         "Downtown",
		Timezone:     "UTC",
		TaxRate:      10,
		Status:       location.StatusActive,
	}
}

func (l *LocationBuilder) WithName(name string) *LocationBuilder {
	l.Name = name
	return l
}

func (l *LocationBuilder) WithTaxRate(rate float64) *LocationBuilder {
	l.TaxRate = rate
	return l
}

func (l *LocationBuilder) AsInactive() *LocationBuilder {
	l.Status = location.StatusInactive
	return l
}

func (l *LocationBuilder) BuildRecord() wire.Record {
	return wire.Record{
		"id":            l.ID.String(),
		"restaurant_id": l.RestaurantID.String(),
		"name":          l.Name,
		"address":       "",
		"phone":         "",
		"timezone":      l.Timezone,
		"tax_rate":      l.TaxRate,
		"status":        l.Status.String(),
		"created_at":    "2026-01-01T00:00:00Z",
	}
}

//go:build unit || e2e

package builder

import (
	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
)

type MenuItemBuilder struct {
	ID                uuid.UUID
	LocationID        uuid.UUID
	Name              string
	Category          string
	Price             float64
	IsAvailable       bool
	TrackInventory    bool
	StockQuantity     int
	LowStockThreshold int
}

func NewMenuItemBuilder(locationID uuid.UUID) *MenuItemBuilder {
	return &MenuItemBuilder{
		ID:                uuid.New(),
		LocationID:        locationID,
		Name:              "Carnitas Taco",
		Category:          "tacos",
		Price:             4.5,
		IsAvailable:       true,
		TrackInventory:    true,
		StockQuantity:     20,
		LowStockThreshold: 5,
	}
}

func (m *MenuItemBuilder) WithStock(n int) *MenuItemBuilder {
	m.StockQuantity = n
	return m
}

func (m *MenuItemBuilder) Untracked() *MenuItemBuilder {
	m.TrackInventory = false
	return m
}

func (m *MenuItemBuilder) BuildRecord() wire.Record {
	return wire.Record{
		"id":                  m.ID.String(),
		"location_id":         m.LocationID.String(),
		"name":                m.Name,
		"description":         "",
		"category":            m.Category,
		"price":               m.Price,
		"is_available":        m.IsAvailable,
		"track_inventory":     m.TrackInventory,
		"stock_quantity":      m.StockQuantity,
		"low_stock_threshold": m.LowStockThreshold,
		"version":             1,
		"created_at":          "2026-01-01T00:00:00Z",
	}
}

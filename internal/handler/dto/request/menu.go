package request

import (
	"restaurant-pos/internal/domain/menu"
	"restaurant-pos/internal/pkg/patch"

	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	LocationID        uuid.UUID `json:"location_id"`
	Name              string    `json:"name" binding:"required"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Price             float64   `json:"price" binding:"gte=0"`
	Cost              *float64  `json:"cost,omitempty" binding:"omitempty,gte=0"`
	IsAvailable       *bool     `json:"is_available,omitempty"`
	TrackInventory    bool      `json:"track_inventory"`
	StockQuantity     int       `json:"stock_quantity" binding:"gte=0"`
	LowStockThreshold int       `json:"low_stock_threshold" binding:"gte=0"`
}

// ToDomain defaults availability to true when the field is absent.
func (r CreateMenuItemRequest) ToDomain() menu.CreateInput {
	return menu.CreateInput{
		LocationID:        r.LocationID,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Price:             r.Price,
		Cost:              r.Cost,
		IsAvailable:       patch.Coalesce(r.IsAvailable, true),
		TrackInventory:    r.TrackInventory,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
	}
}

type UpdateMenuItemRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Price             *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Cost              *float64 `json:"cost,omitempty" binding:"omitempty,gte=0"`
	IsAvailable       *bool    `json:"is_available,omitempty"`
	TrackInventory    *bool    `json:"track_inventory,omitempty"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty" binding:"omitempty,gte=0"`
}

func (r UpdateMenuItemRequest) ToDomain() menu.UpdateInput {
	return menu.UpdateInput{
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Price:             r.Price,
		Cost:              r.Cost,
		IsAvailable:       r.IsAvailable,
		TrackInventory:    r.TrackInventory,
		LowStockThreshold: r.LowStockThreshold,
	}
}

// StockQuantityRequest is the body of restock and waste.
type StockQuantityRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason"`
}

type StockAdjustRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

package menu

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNameRequired     = errors.New("menu item name is required")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeCost     = errors.New("cost cannot be negative")
	ErrNegativeStock    = errors.New("stock level cannot be negative")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrZeroAdjustment   = errors.New("adjustment must not be zero")
	ErrNotTracked       = errors.New("inventory is not tracked for this item")
	ErrLocationRequired = errors.New("menu item location is required")
)

type Item struct {
	ID                uuid.UUID
	LocationID        uuid.UUID
	Name              string
	Description       string
	Category          string
	Price             float64
	Cost              *float64
	IsAvailable       bool
	TrackInventory    bool
	StockQuantity     int
	LowStockThreshold int
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (i Item) IsLowStock() bool {
	return i.TrackInventory && i.StockQuantity <= i.LowStockThreshold
}

type CreateInput struct {
	LocationID        uuid.UUID
	Name              string
	Description       string
	Category          string
	Price             float64
	Cost              *float64
	IsAvailable       bool
	TrackInventory    bool
	StockQuantity     int
	LowStockThreshold int
}

func (in CreateInput) Validate() error {
	if in.LocationID == uuid.Nil {
		return ErrLocationRequired
	}
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Cost != nil && *in.Cost < 0 {
		return ErrNegativeCost
	}
	if in.StockQuantity < 0 || in.LowStockThreshold < 0 {
		return ErrNegativeStock
	}
	return nil
}

type UpdateInput struct {
	Name              *string
	Description       *string
	Category          *string
	Price             *float64
	Cost              *float64
	IsAvailable       *bool
	TrackInventory    *bool
	LowStockThreshold *int
}

func (in UpdateInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return ErrNameRequired
	}
	if in.Price != nil && *in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Cost != nil && *in.Cost < 0 {
		return ErrNegativeCost
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return ErrNegativeStock
	}
	return nil
}

type Transaction struct {
	ID             uuid.UUID
	MenuItemID     uuid.UUID
	LocationID     uuid.UUID
	Type           TransactionType
	QuantityChange int
	PreviousStock  int
	NewStock       int
	Reason         string
	PerformedBy    uuid.UUID
	CreatedAt      time.Time
}

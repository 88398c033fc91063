package response

import (
	"time"

	"restaurant-pos/internal/domain/menu"

	"github.com/google/uuid"
)

type MenuItemResponse struct {
	ID                uuid.UUID `json:"id"`
	LocationID        uuid.UUID `json:"locationId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Price             float64   `json:"price"`
	Cost              *float64  `json:"cost,omitempty"`
	IsAvailable       bool      `json:"isAvailable"`
	TrackInventory    bool      `json:"trackInventory"`
	StockQuantity     int       `json:"stockQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	IsLowStock        bool      `json:"isLowStock"`
	Version           int       `json:"version"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type InventoryTransactionResponse struct {
	ID             uuid.UUID `json:"id"`
	MenuItemID     uuid.UUID `json:"menuItemId"`
	LocationID     uuid.UUID `json:"locationId"`
	Type           string    `json:"transactionType"`
	QuantityChange int       `json:"quantityChange"`
	PreviousStock  int       `json:"previousStock"`
	NewStock       int       `json:"newStock"`
	Reason         string    `json:"reason"`
	PerformedBy    uuid.UUID `json:"performedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromMenuItem(i menu.Item) MenuItemResponse {
	resp := copyAs[MenuItemResponse](&i)
	resp.IsLowStock = i.IsLowStock()
	return resp
}

func FromMenuItems(items []menu.Item) []MenuItemResponse {
	out := make([]MenuItemResponse, len(items))
	for i, it := range items {
		out[i] = FromMenuItem(it)
	}
	return out
}

func FromTransactions(txs []menu.Transaction) []InventoryTransactionResponse {
	return copyAll[InventoryTransactionResponse](txs)
}

package response

import (
	"time"

	"restaurant-pos/internal/domain/order"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	MenuItemID uuid.UUID `json:"menuItemId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unitPrice"`
	Notes      string    `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	LocationID     uuid.UUID           `json:"locationId"`
	OrderNumber    string              `json:"orderNumber"`
	CustomerName   string              `json:"customerName"`
	TableNumber    string              `json:"tableNumber"`
	Type           string              `json:"orderType"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"paymentStatus"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       float64             `json:"subtotal"`
	TaxAmount      float64             `json:"taxAmount"`
	TipAmount      float64             `json:"tipAmount"`
	DiscountAmount float64             `json:"discountAmount"`
	Total          float64             `json:"total"`
	Notes          string              `json:"notes"`
	CreatedBy      *uuid.UUID          `json:"createdBy,omitempty"`
	Version        int                 `json:"version"`
	SyncState      string              `json:"syncState"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func FromOrder(o order.Order) OrderResponse {
	return copyAs[OrderResponse](&o)
}

func FromOrders(orders []order.Order) []OrderResponse {
	return copyAll[OrderResponse](orders)
}

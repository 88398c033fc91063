package request

import (
	"restaurant-pos/internal/domain/order"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64   `json:"unit_price" binding:"gte=0"`
	Notes      string    `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	LocationID     uuid.UUID          `json:"location_id"`
	CustomerName   string             `json:"customer_name"`
	TableNumber    string             `json:"table_number"`
	OrderType      string             `json:"order_type,omitempty" binding:"omitempty,oneof=dine-in takeout delivery"`
	Items          []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TipAmount      float64            `json:"tip_amount" binding:"gte=0"`
	DiscountAmount float64            `json:"discount_amount" binding:"gte=0"`
	Notes          string             `json:"notes"`
}

func (r CreateOrderRequest) ToDomain() order.CreateInput {
	items := make([]order.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = order.Item{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Notes:      it.Notes,
		}
	}
	return order.CreateInput{
		LocationID:     r.LocationID,
		CustomerName:   r.CustomerName,
		TableNumber:    r.TableNumber,
		Type:           order.Type(r.OrderType),
		Items:          items,
		TipAmount:      r.TipAmount,
		DiscountAmount: r.DiscountAmount,
		Notes:          r.Notes,
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending preparing ready completed cancelled"`
}

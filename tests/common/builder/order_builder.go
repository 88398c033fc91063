//go:build unit || e2e

package builder

import (
	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID            uuid.UUID
	LocationID    uuid.UUID
	Number        string
	Items         []order.Item
	Status        order.Status
	PaymentStatus order.PaymentStatus
	CreatedAt     string
}

func NewOrderBuilder(locationID uuid.UUID) *OrderBuilder {
	return &OrderBuilder{
		ID:         uuid.New(),
		LocationID: locationID,
		Number:     "260501-1200-0001",
		Items: []order.Item{
			{MenuItemID: uuid.New(), Name: "Carnitas Taco", Quantity: 2, UnitPrice: 4.5},
		},
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
		CreatedAt:     "2026-05-01T12:00:00Z",
	}
}

func (o *OrderBuilder) WithStatus(s order.Status) *OrderBuilder {
	o.Status = s
	return o
}

func (o *OrderBuilder) WithPaymentStatus(s order.PaymentStatus) *OrderBuilder {
	o.PaymentStatus = s
	return o
}

func (o *OrderBuilder) CreatedAtTime(iso string) *OrderBuilder {
	o.CreatedAt = iso
	return o
}

func (o *OrderBuilder) BuildRecord() wire.Record {
	totals := order.CalculateTotals(o.Items, 10, 0, 0)
	rec := converter.OrderToRecord(order.Order{
		LocationID:    o.LocationID,
		OrderNumber:   o.Number,
		Type:          order.TypeDineIn,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Items:         o.Items,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
	})
	rec["id"] = o.ID.String()
	rec["created_at"] = o.CreatedAt
	return rec
}

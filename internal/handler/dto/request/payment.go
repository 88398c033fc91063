package request

import (
	"restaurant-pos/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaymentMethod string    `json:"payment_method" binding:"required,oneof=cash card mobile gift-card"`
	TipAmount     *float64  `json:"tip_amount,omitempty" binding:"omitempty,gte=0"`
	TipPercentage *float64  `json:"tip_percentage,omitempty" binding:"omitempty,gte=0,lte=100"`
	TaxAmount     *float64  `json:"tax_amount,omitempty" binding:"omitempty,gte=0"`
	TaxRate       *float64  `json:"tax_rate,omitempty" binding:"omitempty,gte=0,lte=100"`
}

func (r PaymentRequest) ToDomain() payment.Request {
	return payment.Request{
		OrderID:       r.OrderID,
		Amount:        r.Amount,
		Method:        payment.Method(r.PaymentMethod),
		TipAmount:     r.TipAmount,
		TipPercentage: r.TipPercentage,
		TaxAmount:     r.TaxAmount,
		TaxRate:       r.TaxRate,
	}
}

type SplitPartRequest struct {
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string   `json:"payment_method" binding:"required,oneof=cash card mobile gift-card"`
	TipAmount     *float64 `json:"tip_amount,omitempty" binding:"omitempty,gte=0"`
	TipPercentage *float64 `json:"tip_percentage,omitempty" binding:"omitempty,gte=0,lte=100"`
}

type SplitPaymentRequest struct {
	OrderID uuid.UUID          `json:"order_id" binding:"required"`
	Parts   []SplitPartRequest `json:"parts" binding:"required,min=1,dive"`
}

func (r SplitPaymentRequest) ToDomain() payment.SplitRequest {
	parts := make([]payment.SplitPart, len(r.Parts))
	for i, p := range r.Parts {
		parts[i] = payment.SplitPart{
			Amount:        p.Amount,
			Method:        payment.Method(p.PaymentMethod),
			TipAmount:     p.TipAmount,
			TipPercentage: p.TipPercentage,
		}
	}
	return payment.SplitRequest{OrderID: r.OrderID, Parts: parts}
}

type ConnectivityRequest struct {
	Offline *bool `json:"offline" binding:"required"`
}

package response

import (
	"time"

	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/usecase"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID            uuid.UUID  `json:"id"`
	OrderID       uuid.UUID  `json:"orderId"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"paymentMethod"`
	TipAmount     float64    `json:"tipAmount"`
	TipPercentage *float64   `json:"tipPercentage,omitempty"`
	TaxAmount     float64    `json:"taxAmount"`
	TaxRate       *float64   `json:"taxRate,omitempty"`
	Status        string     `json:"status"`
	ProcessedBy   *uuid.UUID `json:"processedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type OfflinePaymentResponse struct {
	ID            string    `json:"id"`
	OrderID       uuid.UUID `json:"orderId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TipAmount     *float64  `json:"tipAmount,omitempty"`
	TipPercentage *float64  `json:"tipPercentage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PaymentResultResponse struct {
	Offline         bool                     `json:"offline"`
	Payments        []PaymentResponse        `json:"payments"`
	OfflinePayments []OfflinePaymentResponse `json:"offlinePayments"`
	Order           OrderResponse            `json:"order"`
}

func FromOfflinePayments(ps []payment.OfflinePayment) []OfflinePaymentResponse {
	return copyAll[OfflinePaymentResponse](ps)
}

func FromPaymentResult(r usecase.PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		Offline:         r.Offline,
		Payments:        copyAll[PaymentResponse](r.Payments),
		OfflinePayments: FromOfflinePayments(r.OfflinePayments),
		Order:           FromOrder(r.Order),
	}
}

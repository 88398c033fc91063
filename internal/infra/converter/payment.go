package converter

import (
	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
)

func PaymentFromRecord(rec wire.Record) (payment.Payment, error) {
	r := newReader(rec, wire.TableOrderPayments)
	p := payment.Payment{
		ID:            r.uuid("id"),
		OrderID:       r.uuid("order_id"),
		Amount:        r.float("amount"),
		Method:        payment.Method(r.str("payment_method")),
		TipAmount:     r.float("tip_amount"),
		TipPercentage: r.floatPtr("tip_percentage"),
		TaxAmount:     r.float("tax_amount"),
		TaxRate:       r.floatPtr("tax_rate"),
		Status:        payment.Status(r.str("status")),
		ProcessedBy:   r.uuidPtr("processed_by"),
		CreatedAt:     r.time("created_at"),
	}
	if r.err != nil {
		return payment.Payment{}, r.err
	}
	return p, nil
}

func PaymentToRecord(req payment.Request, processedBy *uuid.UUID) wire.Record {
	return wire.Record{
		"order_id":       req.OrderID.String(),
		"amount":         req.Amount,
		"payment_method": req.Method.String(),
		"tip_amount":     req.Tip(),
		"tip_percentage": floatOrNil(req.TipPercentage),
		"tax_amount":     req.Tax(),
		"tax_rate":       floatOrNil(req.TaxRate),
		"status":         string(payment.StatusCompleted),
		"processed_by":   uuidOrNil(processedBy),
	}
}

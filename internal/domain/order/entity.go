package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be greater than zero")
	ErrNegativePrice     = errors.New("item price cannot be negative")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrInvalidType       = errors.New("invalid order type")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrNotPayable        = errors.New("order cannot accept payment")
	ErrLocationRequired  = errors.New("order location is required")
)

type Item struct {
	MenuItemID uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	Notes      string
}

func (i Item) LineTotal() float64 {
	return RoundMoney(float64(i.Quantity) * i.UnitPrice)
}

type Order struct {
	ID             uuid.UUID
	LocationID     uuid.UUID
	OrderNumber    string
	CustomerName   string
	TableNumber    string
	Type           Type
	Status         Status
	PaymentStatus  PaymentStatus
	Items          []Item
	Subtotal       float64
	TaxAmount      float64
	TipAmount      float64
	DiscountAmount float64
	Total          float64
	Notes          string
	CreatedBy      *uuid.UUID
	Version        int
	SyncState      SyncState
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (o Order) IsPendingConfirmation() bool {
	return o.SyncState == SyncPendingConfirmation
}

func (o Order) CanAcceptPayment() error {
	if o.Status == StatusCancelled || o.PaymentStatus == PaymentPaid || o.PaymentStatus == PaymentRefunded {
		return ErrNotPayable
	}
	return nil
}

// MarkPaidTentatively returns a copy settled locally while the payment waits for replay.
func (o Order) MarkPaidTentatively(now time.Time) Order {
	o.Status = StatusCompleted
	o.PaymentStatus = PaymentPaid
	o.SyncState = SyncPendingConfirmation
	o.UpdatedAt = now
	return o
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusReady, StatusCompleted, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

type CreateInput struct {
	LocationID     uuid.UUID
	CustomerName   string
	TableNumber    string
	Type           Type
	Items          []Item
	TipAmount      float64
	DiscountAmount float64
	Notes          string
}

func (in CreateInput) Validate() error {
	if in.LocationID == uuid.Nil {
		return ErrLocationRequired
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if len(in.Items) == 0 {
		return ErrNoItems
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if it.UnitPrice < 0 {
			return ErrNegativePrice
		}
	}
	if in.TipAmount < 0 || in.DiscountAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

type Totals struct {
	Subtotal       float64
	TaxAmount      float64
	TipAmount      float64
	DiscountAmount float64
	Total          float64
}

// CalculateTotals prices items at taxRate percent. Discount applies after tax and the total
// never goes below zero.
func CalculateTotals(items []Item, taxRate, tip, discount float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	subtotal = RoundMoney(subtotal)
	tax := RoundMoney(subtotal * taxRate / 100)
	total := RoundMoney(subtotal + tax + tip - discount)
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		TipAmount:      RoundMoney(tip),
		DiscountAmount: RoundMoney(discount),
		Total:          total,
	}
}

// NewOrderNumber formats a human readable ticket number from the creation time and a
// caller-supplied sequence.
func NewOrderNumber(now time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d", now.Format("060102-1504"), seq%10000)
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

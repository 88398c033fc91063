package payment

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"restaurant-pos/internal/domain/order"

	"github.com/google/uuid"
)

var (
	ErrOrderRequired = errors.New("payment order is required")
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrNegativeTip   = errors.New("tip cannot be negative")
	ErrInvalidRate   = errors.New("percentage must be between 0 and 100")
	ErrNoSplitParts  = errors.New("split payment needs at least one part")
)

const OfflineIDPrefix = "offline_"

type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Amount        float64
	Method        Method
	TipAmount     float64
	TipPercentage *float64
	TaxAmount     float64
	TaxRate       *float64
	Status        Status
	ProcessedBy   *uuid.UUID
	CreatedAt     time.Time
}

// Request is one payment against an order as entered at the terminal.
type Request struct {
	OrderID       uuid.UUID
	Amount        float64
	Method        Method
	TipAmount     *float64
	TipPercentage *float64
	TaxAmount     *float64
	TaxRate       *float64
}

func (r Request) Validate() error {
	if r.OrderID == uuid.Nil {
		return ErrOrderRequired
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !r.Method.IsValid() {
		return ErrInvalidMethod
	}
	if r.TipAmount != nil && *r.TipAmount < 0 {
		return ErrNegativeTip
	}
	if r.TaxAmount != nil && *r.TaxAmount < 0 {
		return ErrInvalidAmount
	}
	for _, pct := range []*float64{r.TipPercentage, r.TaxRate} {
		if pct != nil && (*pct < 0 || *pct > 100) {
			return ErrInvalidRate
		}
	}
	return nil
}

// Tip is the explicit tip amount, else the tip percentage applied to Amount.
func (r Request) Tip() float64 {
	return resolve(r.TipAmount, r.TipPercentage, r.Amount)
}

func (r Request) Tax() float64 {
	return resolve(r.TaxAmount, r.TaxRate, r.Amount)
}

func resolve(amount, pct *float64, base float64) float64 {
	switch {
	case amount != nil:
		return order.RoundMoney(*amount)
	case pct != nil:
		return order.RoundMoney(base * *pct / 100)
	default:
		return 0
	}
}

type SplitPart struct {
	Amount        float64
	Method        Method
	TipAmount     *float64
	TipPercentage *float64
}

type SplitRequest struct {
	OrderID uuid.UUID
	Parts   []SplitPart
}

// Requests expands the split into one Request per part, in entry order.
func (s SplitRequest) Requests() ([]Request, error) {
	if len(s.Parts) == 0 {
		return nil, ErrNoSplitParts
	}
	out := make([]Request, 0, len(s.Parts))
	for i, p := range s.Parts {
		r := Request{
			OrderID:       s.OrderID,
			Amount:        p.Amount,
			Method:        p.Method,
			TipAmount:     p.TipAmount,
			TipPercentage: p.TipPercentage,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("split part %d: %w", i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// OfflinePayment is a payment captured while the terminal could not reach the backend.
// It is persisted locally as JSON until it has been replayed.
type OfflinePayment struct {
	ID            string    `json:"id"`
	OrderID       uuid.UUID `json:"orderId"`
	Amount        float64   `json:"amount"`
	PaymentMethod Method    `json:"paymentMethod"`
	TipAmount     *float64  `json:"tipAmount,omitempty"`
	TipPercentage *float64  `json:"tipPercentage,omitempty"`
	TaxAmount     *float64  `json:"taxAmount,omitempty"`
	TaxRate       *float64  `json:"taxRate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewOfflinePayment(r Request, now time.Time) OfflinePayment {
	return OfflinePayment{
		ID:            NewOfflineID(now),
		OrderID:       r.OrderID,
		Amount:        r.Amount,
		PaymentMethod: r.Method,
		TipAmount:     r.TipAmount,
		TipPercentage: r.TipPercentage,
		TaxAmount:     r.TaxAmount,
		TaxRate:       r.TaxRate,
		CreatedAt:     now,
	}
}

// NewOfflineID returns offline_<unix-ms>_<random> so ids generated in the same millisecond
// on one terminal do not collide.
func NewOfflineID(now time.Time) string {
	suffix := strconv.FormatUint(rand.Uint64()>>16, 36)
	return OfflineIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}

func (p OfflinePayment) Request() Request {
	return Request{
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Method:        p.PaymentMethod,
		TipAmount:     p.TipAmount,
		TipPercentage: p.TipPercentage,
		TaxAmount:     p.TaxAmount,
		TaxRate:       p.TaxRate,
	}
}

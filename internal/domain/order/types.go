package order

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentUnpaid, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

type Type string

const (
	TypeDineIn   Type = "dine-in"
	TypeTakeout  Type = "takeout"
	TypeDelivery Type = "delivery"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDineIn, TypeTakeout, TypeDelivery:
		return true
	default:
		return false
	}
}

// SyncState tells whether the local copy of an order reflects backend state or a tentative
// change made while offline.
type SyncState string

const (
	SyncConfirmed           SyncState = "confirmed"
	SyncPendingConfirmation SyncState = "pending-confirmation"
)

package menu

type TransactionType string

const (
	TransactionRestock    TransactionType = "restock"
	TransactionAdjustment TransactionType = "adjustment"
	TransactionWaste      TransactionType = "waste"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionRestock, TransactionAdjustment, TransactionWaste:
		return true
	default:
		return false
	}
}

package payment

type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodMobile   Method = "mobile"
	MethodGiftCard Method = "gift-card"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodMobile, MethodGiftCard:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusRefunded  Status = "refunded"
)

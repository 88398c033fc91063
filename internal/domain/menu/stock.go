package menu

// StockChange is the outcome of applying one inventory movement to a cached stock level.
type StockChange struct {
	Type           TransactionType
	PreviousStock  int
	NewStock       int
	QuantityChange int
}

// Restock adds quantity units.
func Restock(current, quantity int) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, ErrInvalidQuantity
	}
	return StockChange{
		Type:           TransactionRestock,
		PreviousStock:  current,
		NewStock:       current + quantity,
		QuantityChange: quantity,
	}, nil
}

// Adjust applies a signed manual correction. The result may not go below zero.
func Adjust(current, delta int) (StockChange, error) {
	if delta == 0 {
		return StockChange{}, ErrZeroAdjustment
	}
	next := current + delta
	if next < 0 {
		return StockChange{}, ErrNegativeStock
	}
	return StockChange{
		Type:           TransactionAdjustment,
		PreviousStock:  current,
		NewStock:       next,
		QuantityChange: delta,
	}, nil
}

// Waste removes quantity units, clamping stock at zero. QuantityChange always records the
// full amount reported as wasted.
func Waste(current, quantity int) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, ErrInvalidQuantity
	}
	return StockChange{
		Type:           TransactionWaste,
		PreviousStock:  current,
		NewStock:       max(current-quantity, 0),
		QuantityChange: -quantity,
	}, nil
}

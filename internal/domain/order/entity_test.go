//go:build unit

package order_test

import (
	"testing"
	"time"

	"restaurant-pos/internal/domain/order"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	items := []order.Item{
		{MenuItemID: uuid.New(), Name: "Taco", Quantity: 3, UnitPrice: 2.5},
		{MenuItemID: uuid.New(), Name: "Horchata", Quantity: 1, UnitPrice: 3.25},
	}

	got := order.CalculateTotals(items, 8.25, 2, 1)
	want := order.Totals{Subtotal: 10.75, TaxAmount: 0.89, TipAmount: 2, DiscountAmount: 1, Total: 12.64}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Totals mismatch (-want +got):\n%s", diff)
	}

	t.Run("割引で合計はマイナスにならない", func(t *testing.T) {
		got := order.CalculateTotals(items, 0, 0, 100)
		assert.Equal(t, 0.0, got.Total)
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to order.Status
		ok       bool
	}{
		{order.StatusPending, order.StatusPreparing, true},
		{order.StatusPreparing, order.StatusReady, true},
		{order.StatusReady, order.StatusCompleted, true},
		{order.StatusPending, order.StatusCancelled, true},
		{order.StatusReady, order.StatusPending, false},
		{order.StatusCompleted, order.StatusCancelled, false},
		{order.StatusCancelled, order.StatusPending, false},
	}
	for _, c := range cases {
		t.Run(string(c.from)+"->"+string(c.to), func(t *testing.T) {
			err := order.CanTransition(c.from, c.to)
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		})
	}

	assert.ErrorIs(t, order.CanTransition(order.StatusPending, "lost"), order.ErrInvalidStatus)
}

func TestOrder_MarkPaidTentatively(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	o := order.Order{ID: uuid.New(), Status: order.StatusReady, PaymentStatus: order.PaymentUnpaid, SyncState: order.SyncConfirmed}

	paid := o.MarkPaidTentatively(now)

	assert.Equal(t, order.StatusCompleted, paid.Status)
	assert.Equal(t, order.PaymentPaid, paid.PaymentStatus)
	assert.True(t, paid.IsPendingConfirmation())
	assert.Equal(t, now, paid.UpdatedAt)
	assert.Equal(t, order.StatusReady, o.Status, "original is untouched")
	assert.ErrorIs(t, paid.CanAcceptPayment(), order.ErrNotPayable)
}

func TestCreateInput_Validate(t *testing.T) {
	base := order.CreateInput{
		LocationID: uuid.New(),
		Type:       order.TypeDineIn,
		Items:      []order.Item{{MenuItemID: uuid.New(), Name: "Taco", Quantity: 1, UnitPrice: 2.5}},
	}
	require.NoError(t, base.Validate())

	noItems := base
	noItems.Items = nil
	assert.ErrorIs(t, noItems.Validate(), order.ErrNoItems)

	badType := base
	badType.Type = "drive-thru"
	assert.ErrorIs(t, badType.Validate(), order.ErrInvalidType)

	badQty := base
	badQty.Items = []order.Item{{Name: "Taco", Quantity: 0}}
	assert.ErrorIs(t, badQty.Validate(), order.ErrInvalidQuantity)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "260501-1930-0042", order.NewOrderNumber(now, 42))
}

//go:build unit

package menu_test

import (
	"testing"

	"restaurant-pos/internal/domain/menu"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockChanges(t *testing.T) {
	cases := []struct {
		name  string
		apply func() (menu.StockChange, error)
		want  menu.StockChange
		errIs error
	}{
		{
			name:  "入荷",
			apply: func() (menu.StockChange, error) { return menu.Restock(5, 10) },
			want:  menu.StockChange{Type: menu.TransactionRestock, PreviousStock: 5, NewStock: 15, QuantityChange: 10},
		},
		{
			name:  "入荷数ゼロNG",
			apply: func() (menu.StockChange, error) { return menu.Restock(5, 0) },
			errIs: menu.ErrInvalidQuantity,
		},
		{
			name:  "手動調整マイナス",
			apply: func() (menu.StockChange, error) { return menu.Adjust(5, -3) },
			want:  menu.StockChange{Type: menu.TransactionAdjustment, PreviousStock: 5, NewStock: 2, QuantityChange: -3},
		},
		{
			name:  "手動調整で負の在庫NG",
			apply: func() (menu.StockChange, error) { return menu.Adjust(2, -3) },
			errIs: menu.ErrNegativeStock,
		},
		{
			name:  "手動調整ゼロNG",
			apply: func() (menu.StockChange, error) { return menu.Adjust(2, 0) },
			errIs: menu.ErrZeroAdjustment,
		},
		{
			name:  "廃棄",
			apply: func() (menu.StockChange, error) { return menu.Waste(5, 2) },
			want:  menu.StockChange{Type: menu.TransactionWaste, PreviousStock: 5, NewStock: 3, QuantityChange: -2},
		},
		{
			name:  "廃棄は在庫ゼロで止まる",
			apply: func() (menu.StockChange, error) { return menu.Waste(5, 8) },
			want:  menu.StockChange{Type: menu.TransactionWaste, PreviousStock: 5, NewStock: 0, QuantityChange: -8},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.apply()
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("StockChange mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestItem_IsLowStock(t *testing.T) {
	assert.True(t, menu.Item{TrackInventory: true, StockQuantity: 2, LowStockThreshold: 2}.IsLowStock())
	assert.False(t, menu.Item{TrackInventory: false, StockQuantity: 0, LowStockThreshold: 2}.IsLowStock())
	assert.False(t, menu.Item{TrackInventory: true, StockQuantity: 3, LowStockThreshold: 2}.IsLowStock())
}

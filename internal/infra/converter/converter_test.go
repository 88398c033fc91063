//go:build unit

package converter

import (
	"testing"
	"time"

	"restaurant-pos/internal/domain/menu"
	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromProfile(t *testing.T) {
	id, rest, loc, managed := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	t.Run("JSON wire の値", func(t *testing.T) {
		u, err := UserFromProfile(wire.Record{
			"id":                     id.String(),
			"email":                  "mgr@example.com",
			"full_name":              "Mia Manager",
			"role":                   "manager",
			"restaurant_id":          rest.String(),
			"default_location_id":    loc.String(),
			"managed_restaurant_ids": []any{managed.String()},
			"language":               "es",
			"is_active":              true,
			"last_login_at":          "2026-03-01T10:15:30.5Z",
			"created_at":             "2026-01-01T00:00:00Z",
			"updated_at":             nil,
		})
		require.NoError(t, err)

		want := user.User{
			ID:                   id,
			Email:                "mgr@example.com",
			FullName:             "Mia Manager",
			Role:                 user.RoleManager,
			RestaurantID:         &rest,
			DefaultLocationID:    &loc,
			ManagedRestaurantIDs: []uuid.UUID{managed},
			Language:             "es",
			IsActive:             true,
			LastLoginAt:          ptr.Of(time.Date(2026, 3, 1, 10, 15, 30, 500000000, time.UTC)),
			CreatedAt:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if diff := cmp.Diff(want, u); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Postgres の値", func(t *testing.T) {
		created := time.Date(2026, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*3600))
		u, err := UserFromProfile(wire.Record{
			"id":                     id.String(),
			"role":                   "staff",
			"managed_restaurant_ids": []string{},
			"created_at":             created,
		})
		require.NoError(t, err)
		assert.Equal(t, created.UTC(), u.CreatedAt)
		assert.Equal(t, user.DefaultLanguage, u.Language)
		assert.Nil(t, u.RestaurantID)
		assert.Empty(t, u.ManagedRestaurantIDs)
	})

	t.Run("不正なIDはエラー", func(t *testing.T) {
		_, err := UserFromProfile(wire.Record{"id": "not-a-uuid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "profiles.id")
	})
}

func TestOrderRoundTrip(t *testing.T) {
	locID, itemID, creator := uuid.New(), uuid.New(), uuid.New()
	o := order.Order{
		LocationID:    locID,
		OrderNumber:   "260501-1930-0001",
		Type:          order.TypeTakeout,
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
		Items:         []order.Item{{MenuItemID: itemID, Name: "Taco", Quantity: 2, UnitPrice: 2.5}},
		Subtotal:      5,
		Total:         5,
		CreatedBy:     &creator,
	}

	rec := OrderToRecord(o)
	assert.Equal(t, locID.String(), rec["location_id"])
	assert.Equal(t, 1, rec["version"])

	// simulate what comes back over the wire
	rec["id"] = uuid.NewString()
	rec["items"] = []any{map[string]any{
		"menu_item_id": itemID.String(),
		"name":         "Taco",
		"quantity":     2.0,
		"unit_price":   2.5,
		"notes":        "",
	}}
	rec["created_at"] = "2026-05-01T19:30:00Z"

	got, err := OrderFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, o.Items, got.Items)
	assert.Equal(t, order.SyncConfirmed, got.SyncState)
	assert.Equal(t, &creator, got.CreatedBy)
	assert.Equal(t, order.TypeTakeout, got.Type)
}

func TestOrderFromRecord_BadItems(t *testing.T) {
	_, err := OrderFromRecord(wire.Record{
		"id":          uuid.NewString(),
		"location_id": uuid.NewString(),
		"items":       "oops",
	})
	assert.Error(t, err)
}

func TestMenuItemFromRecord_IntegerKinds(t *testing.T) {
	rec := wire.Record{
		"id":                  uuid.NewString(),
		"location_id":         uuid.NewString(),
		"name":                "Horchata",
		"price":               3.25,
		"stock_quantity":      int32(7),
		"low_stock_threshold": int64(2),
		"version":             3.0,
		"track_inventory":     true,
	}

	it, err := MenuItemFromRecord(rec)

	require.NoError(t, err)
	assert.Equal(t, 7, it.StockQuantity)
	assert.Equal(t, 2, it.LowStockThreshold)
	assert.Equal(t, 3, it.Version)
	assert.Nil(t, it.Cost)
}

func TestTransactionToRecord(t *testing.T) {
	item := menu.Item{ID: uuid.New(), LocationID: uuid.New(), StockQuantity: 5}
	actor := uuid.New()
	change, err := menu.Waste(5, 8)
	require.NoError(t, err)

	rec := TransactionToRecord(item, change, "dropped tray", actor)

	assert.Equal(t, "waste", rec["transaction_type"])
	assert.Equal(t, -8, rec["quantity_change"])
	assert.Equal(t, 0, rec["new_stock"])
	assert.Equal(t, actor.String(), rec["performed_by"])
}

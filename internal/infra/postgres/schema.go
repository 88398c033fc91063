package postgres

import (
	"restaurant-pos/internal/infra/wire"
)

type tableSchema struct {
	columns      map[string]struct{}
	hasUpdatedAt bool
}

func newSchema(hasUpdatedAt bool, cols ...string) tableSchema {
	s := tableSchema{columns: make(map[string]struct{}, len(cols)), hasUpdatedAt: hasUpdatedAt}
	for _, c := range cols {
		s.columns[c] = struct{}{}
	}
	return s
}

func (s tableSchema) has(col string) bool {
	_, ok := s.columns[col]
	return ok
}

// schemas mirrors migrations/001_initial_schema.sql. Only these tables and columns can be
// reached through Tables; identity tables are private to Identity.
var schemas = map[string]tableSchema{
	wire.TableProfiles: newSchema(true,
		"id", "email", "full_name", "role", "restaurant_id", "default_location_id",
		"managed_restaurant_ids", "language", "is_active", "last_login_at", "created_at", "updated_at"),
	wire.TableLocations: newSchema(true,
		"id", "restaurant_id", "name", "address", "phone", "timezone", "tax_rate", "status",
		"created_at", "updated_at"),
	wire.TableMenuItems: newSchema(true,
		"id", "location_id", "name", "description", "category", "price", "cost", "is_available",
		"track_inventory", "stock_quantity", "low_stock_threshold", "version", "created_at", "updated_at"),
	wire.TableOrders: newSchema(true,
		"id", "location_id", "order_number", "customer_name", "table_number", "order_type", "status",
		"payment_status", "items", "subtotal", "tax_amount", "tip_amount", "discount_amount", "total",
		"notes", "created_by", "version", "created_at", "updated_at"),
	wire.TableOrderPayments: newSchema(false,
		"id", "order_id", "amount", "payment_method", "tip_amount", "tip_percentage", "tax_amount",
		"tax_rate", "status", "processed_by", "created_at"),
	wire.TableInventoryTransactions: newSchema(false,
		"id", "menu_item_id", "location_id", "transaction_type", "quantity_change", "previous_stock",
		"new_stock", "reason", "performed_by", "created_at"),
	wire.TableStaffMembers: newSchema(true,
		"id", "user_id", "location_id", "restaurant_id", "full_name", "email", "role", "phone",
		"hourly_rate", "is_active", "hired_at", "created_at", "updated_at"),
}

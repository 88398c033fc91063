package converter

import (
	"restaurant-pos/internal/domain/menu"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/patch"

	"github.com/google/uuid"
)

func MenuItemFromRecord(rec wire.Record) (menu.Item, error) {
	r := newReader(rec, wire.TableMenuItems)
	it := menu.Item{
		ID:                r.uuid("id"),
		LocationID:        r.uuid("location_id"),
		Name:              r.str("name"),
		Description:       r.str("description"),
		Category:          r.str("category"),
		Price:             r.float("price"),
		Cost:              r.floatPtr("cost"),
		IsAvailable:       r.bool("is_available"),
		TrackInventory:    r.bool("track_inventory"),
		StockQuantity:     r.int("stock_quantity"),
		LowStockThreshold: r.int("low_stock_threshold"),
		Version:           r.int("version"),
		CreatedAt:         r.time("created_at"),
		UpdatedAt:         r.time("updated_at"),
	}
	if r.err != nil {
		return menu.Item{}, r.err
	}
	return it, nil
}

func MenuItemsFromRecords(recs []wire.Record) ([]menu.Item, error) {
	return mapAll(recs, MenuItemFromRecord)
}

func MenuItemCreateToRecord(in menu.CreateInput) wire.Record {
	return wire.Record{
		"location_id":         in.LocationID.String(),
		"name":                in.Name,
		"description":         in.Description,
		"category":            in.Category,
		"price":               in.Price,
		"cost":                floatOrNil(in.Cost),
		"is_available":        in.IsAvailable,
		"track_inventory":     in.TrackInventory,
		"stock_quantity":      in.StockQuantity,
		"low_stock_threshold": in.LowStockThreshold,
		"version":             1,
	}
}

// MenuItemPatchToRecord bumps version from the cached item so concurrent editors can at
// least observe that a row changed.
func MenuItemPatchToRecord(in menu.UpdateInput, current menu.Item) wire.Record {
	rec := wire.Record{"version": current.Version + 1}
	patch.Set(rec, "name", in.Name)
	patch.Set(rec, "description", in.Description)
	patch.Set(rec, "category", in.Category)
	patch.Set(rec, "price", in.Price)
	patch.Set(rec, "cost", in.Cost)
	patch.Set(rec, "is_available", in.IsAvailable)
	patch.Set(rec, "track_inventory", in.TrackInventory)
	patch.Set(rec, "low_stock_threshold", in.LowStockThreshold)
	return rec
}

func StockPatchToRecord(change menu.StockChange, current menu.Item) wire.Record {
	return wire.Record{
		"stock_quantity": change.NewStock,
		"version":        current.Version + 1,
	}
}

func TransactionFromRecord(rec wire.Record) (menu.Transaction, error) {
	r := newReader(rec, wire.TableInventoryTransactions)
	tx := menu.Transaction{
		ID:             r.uuid("id"),
		MenuItemID:     r.uuid("menu_item_id"),
		LocationID:     r.uuid("location_id"),
		Type:           menu.TransactionType(r.str("transaction_type")),
		QuantityChange: r.int("quantity_change"),
		PreviousStock:  r.int("previous_stock"),
		NewStock:       r.int("new_stock"),
		Reason:         r.str("reason"),
		PerformedBy:    r.uuid("performed_by"),
		CreatedAt:      r.time("created_at"),
	}
	if r.err != nil {
		return menu.Transaction{}, r.err
	}
	return tx, nil
}

func TransactionsFromRecords(recs []wire.Record) ([]menu.Transaction, error) {
	return mapAll(recs, TransactionFromRecord)
}

func TransactionToRecord(item menu.Item, change menu.StockChange, reason string, actor uuid.UUID) wire.Record {
	return wire.Record{
		"menu_item_id":     item.ID.String(),
		"location_id":      item.LocationID.String(),
		"transaction_type": change.Type.String(),
		"quantity_change":  change.QuantityChange,
		"previous_stock":   change.PreviousStock,
		"new_stock":        change.NewStock,
		"reason":           reason,
		"performed_by":     actor.String(),
	}
}

package converter

import (
	"fmt"

	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/infra/wire"
)

func OrderFromRecord(rec wire.Record) (order.Order, error) {
	r := newReader(rec, wire.TableOrders)
	o := order.Order{
		ID:             r.uuid("id"),
		LocationID:     r.uuid("location_id"),
		OrderNumber:    r.str("order_number"),
		CustomerName:   r.str("customer_name"),
		TableNumber:    r.str("table_number"),
		Type:           order.Type(r.str("order_type")),
		Status:         order.Status(r.str("status")),
		PaymentStatus:  order.PaymentStatus(r.str("payment_status")),
		Subtotal:       r.float("subtotal"),
		TaxAmount:      r.float("tax_amount"),
		TipAmount:      r.float("tip_amount"),
		DiscountAmount: r.float("discount_amount"),
		Total:          r.float("total"),
		Notes:          r.str("notes"),
		CreatedBy:      r.uuidPtr("created_by"),
		Version:        r.int("version"),
		SyncState:      order.SyncConfirmed,
		CreatedAt:      r.time("created_at"),
		UpdatedAt:      r.time("updated_at"),
	}
	if r.err != nil {
		return order.Order{}, r.err
	}

	items, err := itemsFromWire(rec["items"])
	if err != nil {
		return order.Order{}, err
	}
	o.Items = items
	return o, nil
}

func OrdersFromRecords(recs []wire.Record) ([]order.Order, error) {
	return mapAll(recs, OrderFromRecord)
}

func OrderToRecord(o order.Order) wire.Record {
	return wire.Record{
		"location_id":     o.LocationID.String(),
		"order_number":    o.OrderNumber,
		"customer_name":   o.CustomerName,
		"table_number":    o.TableNumber,
		"order_type":      string(o.Type),
		"status":          o.Status.String(),
		"payment_status":  o.PaymentStatus.String(),
		"items":           itemsToWire(o.Items),
		"subtotal":        o.Subtotal,
		"tax_amount":      o.TaxAmount,
		"tip_amount":      o.TipAmount,
		"discount_amount": o.DiscountAmount,
		"total":           o.Total,
		"notes":           o.Notes,
		"created_by":      uuidOrNil(o.CreatedBy),
		"version":         max(o.Version, 1),
	}
}

func OrderStatusPatch(status order.Status, paymentStatus *order.PaymentStatus, current order.Order) wire.Record {
	rec := wire.Record{
		"status":  status.String(),
		"version": current.Version + 1,
	}
	if paymentStatus != nil {
		rec["payment_status"] = paymentStatus.String()
	}
	return rec
}

func itemsToWire(items []order.Item) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{
			"menu_item_id": it.MenuItemID.String(),
			"name":         it.Name,
			"quantity":     it.Quantity,
			"unit_price":   it.UnitPrice,
			"notes":        it.Notes,
		}
	}
	return out
}

func itemsFromWire(raw any) ([]order.Item, error) {
	var entries []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		entries = v
	case []map[string]any:
		for _, m := range v {
			entries = append(entries, m)
		}
	default:
		return nil, fmt.Errorf("orders.items: cannot read %T as item list", raw)
	}

	out := make([]order.Item, 0, len(entries))
	for idx, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("orders.items[%d]: cannot read %T as item", idx, e)
		}
		r := newReader(wire.Record(m), fmt.Sprintf("orders.items[%d]", idx))
		it := order.Item{
			MenuItemID: r.uuid("menu_item_id"),
			Name:       r.str("name"),
			Quantity:   r.int("quantity"),
			UnitPrice:  r.float("unit_price"),
			Notes:      r.str("notes"),
		}
		if r.err != nil {
			return nil, r.err
		}
		out = append(out, it)
	}
	return out, nil
}

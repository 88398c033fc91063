package usecase

import (
	"context"
	"time"

	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

func (s *POSStore) cachedOrder(id uuid.UUID) (order.Order, error) {
	o, ok := findByID(s.Snapshot().Orders, id, orderID)
	if !ok {
		return order.Order{}, errs.NotFound("order")
	}
	return o, nil
}

// FetchOrders loads the orders of a location, newest first.
func (s *POSStore) FetchOrders(ctx context.Context, locationID uuid.UUID) {
	s.begin()
	const title = "Could not load orders"

	if _, err := s.requireUser(); err != nil {
		s.fail(title, err)
		return
	}
	locID, err := s.resolveLocation(locationID)
	if err != nil {
		s.fail(title, err)
		return
	}

	orders, err := s.loadOrders(ctx, locID)
	if err != nil {
		s.fail(title, err)
		return
	}
	s.succeed(func(st *POSState) {
		st.Orders = s.withTentative(orders, st.OfflinePayments)
	})
}

func (s *POSStore) loadOrders(ctx context.Context, locationID uuid.UUID) ([]order.Order, error) {
	q := wire.Where(wire.Eq("location_id", locationID.String())).Order("created_at", true)
	recs, err := s.tables.Select(ctx, wire.TableOrders, q)
	if err != nil {
		return nil, errs.Backend(err, "failed to fetch orders")
	}
	orders, err := converter.OrdersFromRecords(recs)
	if err != nil {
		return nil, errs.Backend(err, "malformed order")
	}
	return orders, nil
}

// refreshOrders reloads the order collection after a payment. A failure only marks the store
// error; the payment itself already succeeded.
func (s *POSStore) refreshOrders(ctx context.Context, locationID uuid.UUID) {
	orders, err := s.loadOrders(ctx, locationID)
	if err != nil {
		s.failWith("Could not refresh orders", err, nil)
		return
	}
	s.update(func(st *POSState) {
		st.Orders = s.withTentative(orders, st.OfflinePayments)
	})
}

// withTentative reapplies the local settlement of orders whose offline payments have not been
// replayed yet, so a refresh does not make them look unpaid.
func (s *POSStore) withTentative(orders []order.Order, pending []payment.OfflinePayment) []order.Order {
	if len(pending) == 0 {
		return orders
	}
	waiting := make(map[uuid.UUID]time.Time, len(pending))
	for _, p := range pending {
		waiting[p.OrderID] = p.CreatedAt
	}
	out := make([]order.Order, len(orders))
	for i, o := range orders {
		if at, ok := waiting[o.ID]; ok && o.PaymentStatus != order.PaymentPaid {
			o = o.MarkPaidTentatively(at)
		}
		out[i] = o
	}
	return out
}

func (s *POSStore) CreateOrder(ctx context.Context, in order.CreateInput) (order.Order, error) {
	s.begin()
	const title = "Could not create order"

	u, err := s.requireUser()
	if err != nil {
		return order.Order{}, s.fail(title, err)
	}
	locID, err := s.resolveLocation(in.LocationID)
	if err != nil {
		return order.Order{}, s.fail(title, err)
	}
	in.LocationID = locID
	if in.Type == "" {
		in.Type = order.TypeDineIn
	}
	if err := in.Validate(); err != nil {
		return order.Order{}, s.fail(title, errs.Invalid(err))
	}
	loc, err := s.location(ctx, locID)
	if err != nil {
		return order.Order{}, s.fail(title, err)
	}

	totals := order.CalculateTotals(in.Items, loc.TaxRate, in.TipAmount, in.DiscountAmount)
	now := s.clock.Now()
	draft := order.Order{
		LocationID:     locID,
		OrderNumber:    order.NewOrderNumber(now.In(loc.TimeZone()), len(s.Snapshot().Orders)+1),
		CustomerName:   in.CustomerName,
		TableNumber:    in.TableNumber,
		Type:           in.Type,
		Status:         order.StatusPending,
		PaymentStatus:  order.PaymentUnpaid,
		Items:          in.Items,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		TipAmount:      totals.TipAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Notes:          in.Notes,
		CreatedBy:      &u.ID,
		Version:        1,
	}

	rec, err := s.tables.Insert(ctx, wire.TableOrders, converter.OrderToRecord(draft))
	if err != nil {
		return order.Order{}, s.fail(title, errs.Backend(err, "failed to create order"))
	}
	created, err := converter.OrderFromRecord(rec)
	if err != nil {
		return order.Order{}, s.fail(title, errs.Backend(err, "malformed order"))
	}

	s.succeed(func(st *POSState) {
		st.Orders = prependByID(st.Orders, created, orderID)
	})
	s.notifier.Success("Order created", created.OrderNumber)
	return created, nil
}

func (s *POSStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.Status) (order.Order, error) {
	s.begin()
	const title = "Could not update order"

	if _, err := s.requireUser(); err != nil {
		return order.Order{}, s.fail(title, err)
	}
	current, err := s.cachedOrder(id)
	if err != nil {
		return order.Order{}, s.fail(title, err)
	}
	if current.IsPendingConfirmation() {
		return order.Order{}, s.fail(title, errs.Precondition("order has an offline payment waiting for sync"))
	}
	if err := order.CanTransition(current.Status, status); err != nil {
		return order.Order{}, s.fail(title, errs.Invalid(err))
	}

	rec, err := s.tables.Update(ctx, wire.TableOrders, id.String(), converter.OrderStatusPatch(status, nil, current))
	if err != nil {
		return order.Order{}, s.fail(title, errs.Backend(err, "failed to update order"))
	}
	updated, err := converter.OrderFromRecord(rec)
	if err != nil {
		return order.Order{}, s.fail(title, errs.Backend(err, "malformed order"))
	}

	s.succeed(func(st *POSState) {
		st.Orders = upsertByID(st.Orders, updated, orderID)
	})
	return updated, nil
}

func (s *POSStore) CancelOrder(ctx context.Context, id uuid.UUID) (order.Order, error) {
	return s.UpdateOrderStatus(ctx, id, order.StatusCancelled)
}

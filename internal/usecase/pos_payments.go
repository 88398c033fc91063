package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/ptr"

	"github.com/google/uuid"
)

// OpProcessPayment is the queue operation replaying an offline payment.
const OpProcessPayment = "processPayment"

// PaymentResult reports what a payment did. Online payments fill Payments, offline ones fill
// OfflinePayments and leave Order tentatively settled.
type PaymentResult struct {
	Offline         bool
	Payments        []payment.Payment
	OfflinePayments []payment.OfflinePayment
	Order           order.Order
}

func (s *POSStore) ProcessPayment(ctx context.Context, req payment.Request) (PaymentResult, error) {
	s.begin()
	if err := req.Validate(); err != nil {
		return PaymentResult{}, s.fail("Payment failed", errs.Invalid(err))
	}
	return s.pay(ctx, "Payment failed", []payment.Request{req})
}

// ProcessSplitPayment charges the parts one after another. Online it settles the order once,
// after the last part.
func (s *POSStore) ProcessSplitPayment(ctx context.Context, split payment.SplitRequest) (PaymentResult, error) {
	s.begin()
	reqs, err := split.Requests()
	if err != nil {
		return PaymentResult{}, s.fail("Split payment failed", errs.Invalid(err))
	}
	return s.pay(ctx, "Split payment failed", reqs)
}

func (s *POSStore) pay(ctx context.Context, title string, reqs []payment.Request) (PaymentResult, error) {
	u, err := s.requireUser()
	if err != nil {
		return PaymentResult{}, s.fail(title, err)
	}
	current, err := s.cachedOrder(reqs[0].OrderID)
	if err != nil {
		return PaymentResult{}, s.fail(title, err)
	}
	if err := current.CanAcceptPayment(); err != nil {
		return PaymentResult{}, s.fail(title, errs.Invalid(err))
	}

	if s.IsOffline() {
		return s.payOffline(ctx, title, current, reqs)
	}
	return s.payOnline(ctx, title, u, current, reqs)
}

func (s *POSStore) payOnline(ctx context.Context, title string, u user.User, current order.Order, reqs []payment.Request) (PaymentResult, error) {
	payments := make([]payment.Payment, 0, len(reqs))
	for i, r := range reqs {
		rec, err := s.tables.Insert(ctx, wire.TableOrderPayments, converter.PaymentToRecord(r, &u.ID))
		if err != nil {
			msg := "failed to record payment"
			if len(reqs) > 1 {
				msg = fmt.Sprintf("failed to record payment %d of %d", i+1, len(reqs))
			}
			return PaymentResult{Payments: payments}, s.fail(title, errs.Backend(err, msg))
		}
		p, err := converter.PaymentFromRecord(rec)
		if err != nil {
			return PaymentResult{Payments: payments}, s.fail(title, errs.Backend(err, "malformed payment"))
		}
		payments = append(payments, p)
	}

	settled, err := s.settleOrder(ctx, current)
	if err != nil {
		return PaymentResult{Payments: payments}, s.fail(title, err)
	}
	s.succeed(func(st *POSState) {
		st.Orders = upsertByID(st.Orders, settled, orderID)
	})
	s.refreshOrders(ctx, current.LocationID)

	if refreshed, ok := findByID(s.Snapshot().Orders, settled.ID, orderID); ok {
		settled = refreshed
	}
	s.notifier.Success("Payment processed", settled.OrderNumber)
	return PaymentResult{Payments: payments, Order: settled}, nil
}

func (s *POSStore) settleOrder(ctx context.Context, current order.Order) (order.Order, error) {
	patch := converter.OrderStatusPatch(order.StatusCompleted, ptr.Of(order.PaymentPaid), current)
	rec, err := s.tables.Update(ctx, wire.TableOrders, current.ID.String(), patch)
	if err != nil {
		return order.Order{}, errs.Backend(err, "failed to settle order")
	}
	settled, err := converter.OrderFromRecord(rec)
	if err != nil {
		return order.Order{}, errs.Backend(err, "malformed order")
	}
	return settled, nil
}

// payOffline persists each part locally, settles the order tentatively and queues one replay
// per part. Nothing reaches the backend.
func (s *POSStore) payOffline(ctx context.Context, title string, current order.Order, reqs []payment.Request) (PaymentResult, error) {
	now := s.clock.Now()

	records := make([]payment.OfflinePayment, 0, len(reqs))
	for _, r := range reqs {
		op := payment.NewOfflinePayment(r, now)
		if err := s.local.StoreOfflinePayment(ctx, op); err != nil {
			s.discardLocal(ctx, records)
			return PaymentResult{}, s.fail(title, errs.LocalStorage(err, "failed to store offline payment"))
		}
		records = append(records, op)
	}

	tentative := current.MarkPaidTentatively(now)
	s.update(func(st *POSState) {
		st.Orders = upsertByID(st.Orders, tentative, orderID)
		st.OfflinePayments = append(slices.Clone(st.OfflinePayments), records...)
	})

	for i, op := range records {
		if err := s.queue.Add(ctx, OpProcessPayment, op); err != nil {
			dropped := records[i:]
			s.discardLocal(ctx, dropped)
			return PaymentResult{}, s.failWith(title, err, func(st *POSState) {
				st.OfflinePayments = slices.DeleteFunc(slices.Clone(st.OfflinePayments), func(p payment.OfflinePayment) bool {
					return slices.ContainsFunc(dropped, func(d payment.OfflinePayment) bool { return d.ID == p.ID })
				})
				if i == 0 {
					st.Orders = upsertByID(st.Orders, current, orderID)
				}
				st.QueueLength = s.queue.Len()
			})
		}
		s.recorder.OfflinePaymentCaptured()
	}

	s.succeed(func(st *POSState) {
		st.QueueLength = s.queue.Len()
	})
	s.notifier.Info("Payment saved offline", fmt.Sprintf("%s will be synced when the connection returns", current.OrderNumber))
	return PaymentResult{Offline: true, OfflinePayments: records, Order: tentative}, nil
}

// discardLocal removes offline payments that never made it into the queue.
func (s *POSStore) discardLocal(ctx context.Context, records []payment.OfflinePayment) {
	for _, p := range records {
		if err := s.local.RemoveOfflinePayment(ctx, p.ID); err != nil {
			s.logger.Warn("failed to discard offline payment", slog.String("offline_id", p.ID), slog.String("error", err.Error()))
		}
	}
}

// replayPayment is the queue replayer for OpProcessPayment. A split payment replays as several
// entries; only the first one settles the order.
func (s *POSStore) replayPayment(ctx context.Context, raw json.RawMessage) error {
	var op payment.OfflinePayment
	if err := json.Unmarshal(raw, &op); err != nil {
		return errs.Wrap(err, "failed to decode offline payment")
	}

	var processedBy *uuid.UUID
	if u, ok := s.session.CurrentUser(); ok {
		processedBy = &u.ID
	}
	if _, err := s.tables.Insert(ctx, wire.TableOrderPayments, converter.PaymentToRecord(op.Request(), processedBy)); err != nil {
		return errs.Backend(err, "failed to record replayed payment")
	}

	current, err := s.backendOrder(ctx, op.OrderID)
	if err != nil {
		return err
	}
	if current.PaymentStatus != order.PaymentPaid {
		if _, err := s.settleOrder(ctx, current); err != nil {
			return err
		}
	}

	if err := s.local.RemoveOfflinePayment(ctx, op.ID); err != nil {
		s.logger.Warn("replayed payment left in local storage", slog.String("offline_id", op.ID), slog.String("error", err.Error()))
	}
	s.update(func(st *POSState) {
		st.OfflinePayments = slices.DeleteFunc(slices.Clone(st.OfflinePayments), func(p payment.OfflinePayment) bool { return p.ID == op.ID })
	})
	s.logger.Info("offline payment replayed", slog.String("offline_id", op.ID), slog.String("order_id", op.OrderID.String()))
	return nil
}

func (s *POSStore) backendOrder(ctx context.Context, id uuid.UUID) (order.Order, error) {
	q := wire.Where(wire.Eq("id", id.String()))
	q.Limit = 1
	recs, err := s.tables.Select(ctx, wire.TableOrders, q)
	if err != nil {
		return order.Order{}, errs.Backend(err, "failed to load order")
	}
	if len(recs) == 0 {
		return order.Order{}, errs.Backend(errs.New("order no longer exists"), "failed to load order")
	}
	o, err := converter.OrderFromRecord(recs[0])
	if err != nil {
		return order.Order{}, errs.Backend(err, "malformed order")
	}
	return o, nil
}

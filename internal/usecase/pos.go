package usecase

import (
	"context"
	"log/slog"
	"sync"

	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/domain/menu"
	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/domain/payment"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/offline"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/notify"

	"github.com/google/uuid"
)

type POSState struct {
	MenuItems       []menu.Item
	Transactions    []menu.Transaction
	Orders          []order.Order
	OfflinePayments []payment.OfflinePayment
	QueueLength     int
	IsOffline       bool
	IsSyncing       bool
	LastSync        *SyncResult
	Meta
}

// POSRecorder receives POS level events for metrics.
type POSRecorder interface {
	OfflinePaymentCaptured()
	SyncFinished(outcome string)
}

// POSStore holds the menu, inventory, orders and payments of the working location, and the
// offline capture of payments.
type POSStore struct {
	tracker[POSState]
	tables    Tables
	session   Session
	locations LocationSelection
	local     LocalStore
	queue     *offline.Queue
	clock     clock.Clock
	recorder  POSRecorder
	syncMu    sync.Mutex
}

func NewPOSStore(
	tables Tables,
	session Session,
	locations LocationSelection,
	local LocalStore,
	queue *offline.Queue,
	notifier notify.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
	recorder POSRecorder,
) *POSStore {
	if recorder == nil {
		recorder = nopPOSRecorder{}
	}
	s := &POSStore{
		tracker:   newTracker(POSState{}, func(s *POSState) *Meta { return &s.Meta }, notifier, logger),
		tables:    tables,
		session:   session,
		locations: locations,
		local:     local,
		queue:     queue,
		clock:     clk,
		recorder:  recorder,
	}
	queue.Register(OpProcessPayment, s.replayPayment)
	return s
}

func menuItemID(i menu.Item) uuid.UUID           { return i.ID }
func orderID(o order.Order) uuid.UUID            { return o.ID }
func transactionID(t menu.Transaction) uuid.UUID { return t.ID }

func (s *POSStore) requireUser() (user.User, error) {
	u, ok := s.session.CurrentUser()
	if !ok {
		return user.User{}, errs.NotSignedIn()
	}
	return u, nil
}

func (s *POSStore) requireManager() (user.User, error) {
	u, err := s.requireUser()
	if err != nil {
		return user.User{}, err
	}
	if !u.Role.AtLeast(user.RoleManager) {
		return user.User{}, errs.Forbidden("menu management requires the manager role")
	}
	return u, nil
}

// resolveLocation falls back to the selected working location when id is empty.
func (s *POSStore) resolveLocation(id uuid.UUID) (uuid.UUID, error) {
	if id != uuid.Nil {
		return id, nil
	}
	sel, ok := s.locations.SelectedLocation()
	if !ok {
		return uuid.Nil, errs.Precondition("no location selected")
	}
	return sel.ID, nil
}

func (s *POSStore) cachedItem(id uuid.UUID) (menu.Item, error) {
	it, ok := findByID(s.Snapshot().MenuItems, id, menuItemID)
	if !ok {
		return menu.Item{}, errs.NotFound("menu item")
	}
	return it, nil
}

func (s *POSStore) FetchMenuItems(ctx context.Context, locationID uuid.UUID) {
	s.begin()
	const title = "Could not load menu"

	if _, err := s.requireUser(); err != nil {
		s.fail(title, err)
		return
	}
	locID, err := s.resolveLocation(locationID)
	if err != nil {
		s.fail(title, err)
		return
	}

	q := wire.Where(wire.Eq("location_id", locID.String())).Order("category", false).Order("name", false)
	recs, err := s.tables.Select(ctx, wire.TableMenuItems, q)
	if err != nil {
		s.fail(title, errs.Backend(err, "failed to fetch menu items"))
		return
	}
	items, err := converter.MenuItemsFromRecords(recs)
	if err != nil {
		s.fail(title, errs.Backend(err, "malformed menu item"))
		return
	}

	s.succeed(func(st *POSState) {
		st.MenuItems = items
	})
}

func (s *POSStore) CreateMenuItem(ctx context.Context, in menu.CreateInput) (menu.Item, error) {
	s.begin()
	const title = "Could not create menu item"

	if _, err := s.requireManager(); err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	locID, err := s.resolveLocation(in.LocationID)
	if err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	in.LocationID = locID
	if err := in.Validate(); err != nil {
		return menu.Item{}, s.fail(title, errs.Invalid(err))
	}

	rec, err := s.tables.Insert(ctx, wire.TableMenuItems, converter.MenuItemCreateToRecord(in))
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "failed to create menu item"))
	}
	item, err := converter.MenuItemFromRecord(rec)
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "malformed menu item"))
	}

	s.succeed(func(st *POSState) {
		st.MenuItems = upsertByID(st.MenuItems, item, menuItemID)
	})
	s.notifier.Success("Menu item created", item.Name)
	return item, nil
}

func (s *POSStore) UpdateMenuItem(ctx context.Context, id uuid.UUID, in menu.UpdateInput) (menu.Item, error) {
	s.begin()
	const title = "Could not update menu item"

	if _, err := s.requireManager(); err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	current, err := s.cachedItem(id)
	if err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	if err := in.Validate(); err != nil {
		return menu.Item{}, s.fail(title, errs.Invalid(err))
	}

	return s.writeItem(ctx, title, id, converter.MenuItemPatchToRecord(in, current))
}

// ToggleAvailability flips whether the item can be ordered. Staff may do this during service.
func (s *POSStore) ToggleAvailability(ctx context.Context, id uuid.UUID) (menu.Item, error) {
	s.begin()
	const title = "Could not change availability"

	if _, err := s.requireUser(); err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	current, err := s.cachedItem(id)
	if err != nil {
		return menu.Item{}, s.fail(title, err)
	}

	available := !current.IsAvailable
	return s.writeItem(ctx, title, id, converter.MenuItemPatchToRecord(menu.UpdateInput{IsAvailable: &available}, current))
}

func (s *POSStore) writeItem(ctx context.Context, title string, id uuid.UUID, patch wire.Record) (menu.Item, error) {
	rec, err := s.tables.Update(ctx, wire.TableMenuItems, id.String(), patch)
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "failed to update menu item"))
	}
	item, err := converter.MenuItemFromRecord(rec)
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "malformed menu item"))
	}

	s.succeed(func(st *POSState) {
		st.MenuItems = upsertByID(st.MenuItems, item, menuItemID)
	})
	return item, nil
}

func (s *POSStore) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	s.begin()
	const title = "Could not delete menu item"

	if _, err := s.requireManager(); err != nil {
		return s.fail(title, err)
	}
	if _, err := s.cachedItem(id); err != nil {
		return s.fail(title, err)
	}
	if err := s.tables.Delete(ctx, wire.TableMenuItems, id.String()); err != nil {
		return s.fail(title, errs.Backend(err, "failed to delete menu item"))
	}

	s.succeed(func(st *POSState) {
		st.MenuItems = removeByID(st.MenuItems, id, menuItemID)
	})
	return nil
}

// SetOffline records connectivity as last observed. It never triggers a sync by itself.
func (s *POSStore) SetOffline(offline bool) {
	prev := s.Snapshot().IsOffline
	s.update(func(st *POSState) {
		st.IsOffline = offline
	})
	if prev != offline {
		s.logger.Info("connectivity changed", slog.Bool("offline", offline))
	}
}

func (s *POSStore) IsOffline() bool {
	return s.Snapshot().IsOffline
}

func (s *POSStore) QueueLength() int {
	return s.queue.Len()
}

func (s *POSStore) location(ctx context.Context, id uuid.UUID) (location.Location, error) {
	if sel, ok := s.locations.SelectedLocation(); ok && sel.ID == id {
		return sel, nil
	}
	q := wire.Where(wire.Eq("id", id.String()))
	q.Limit = 1
	recs, err := s.tables.Select(ctx, wire.TableLocations, q)
	if err != nil {
		return location.Location{}, errs.Backend(err, "failed to load location")
	}
	if len(recs) == 0 {
		return location.Location{}, errs.NotFound("location")
	}
	l, err := converter.LocationFromRecord(recs[0])
	if err != nil {
		return location.Location{}, errs.Backend(err, "malformed location")
	}
	return l, nil
}

type nopPOSRecorder struct{}

func (nopPOSRecorder) OfflinePaymentCaptured() {}
func (nopPOSRecorder) SyncFinished(string)     {}

package usecase

import (
	"context"

	"restaurant-pos/internal/domain/menu"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

func (s *POSStore) Restock(ctx context.Context, id uuid.UUID, quantity int, reason string) (menu.Item, error) {
	return s.moveStock(ctx, "Could not restock", id, reason, func(current int) (menu.StockChange, error) {
		return menu.Restock(current, quantity)
	})
}

func (s *POSStore) AdjustStock(ctx context.Context, id uuid.UUID, delta int, reason string) (menu.Item, error) {
	return s.moveStock(ctx, "Could not adjust stock", id, reason, func(current int) (menu.StockChange, error) {
		return menu.Adjust(current, delta)
	})
}

// RecordWaste takes quantity out of stock. The level stops at zero but the transaction keeps
// the full amount.
func (s *POSStore) RecordWaste(ctx context.Context, id uuid.UUID, quantity int, reason string) (menu.Item, error) {
	return s.moveStock(ctx, "Could not record waste", id, reason, func(current int) (menu.StockChange, error) {
		return menu.Waste(current, quantity)
	})
}

// moveStock computes the new level from the cached item, writes it, then records the
// inventory transaction under the acting operator.
func (s *POSStore) moveStock(ctx context.Context, title string, id uuid.UUID, reason string, compute func(int) (menu.StockChange, error)) (menu.Item, error) {
	s.begin()

	u, err := s.requireUser()
	if err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	current, err := s.cachedItem(id)
	if err != nil {
		return menu.Item{}, s.fail(title, err)
	}
	if !current.TrackInventory {
		return menu.Item{}, s.fail(title, errs.Invalid(menu.ErrNotTracked))
	}
	change, err := compute(current.StockQuantity)
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Invalid(err))
	}

	rec, err := s.tables.Update(ctx, wire.TableMenuItems, id.String(), converter.StockPatchToRecord(change, current))
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "failed to update stock level"))
	}
	item, err := converter.MenuItemFromRecord(rec)
	if err != nil {
		return menu.Item{}, s.fail(title, errs.Backend(err, "malformed menu item"))
	}

	txRec, err := s.tables.Insert(ctx, wire.TableInventoryTransactions, converter.TransactionToRecord(current, change, reason, u.ID))
	if err != nil {
		// the level was written, keep the cache in line with the backend
		return item, s.failWith(title, errs.Backend(err, "failed to record inventory transaction"), func(st *POSState) {
			st.MenuItems = upsertByID(st.MenuItems, item, menuItemID)
		})
	}
	tx, err := converter.TransactionFromRecord(txRec)
	if err != nil {
		return item, s.failWith(title, errs.Backend(err, "malformed inventory transaction"), func(st *POSState) {
			st.MenuItems = upsertByID(st.MenuItems, item, menuItemID)
		})
	}

	s.succeed(func(st *POSState) {
		st.MenuItems = upsertByID(st.MenuItems, item, menuItemID)
		st.Transactions = prependByID(st.Transactions, tx, transactionID)
	})
	if item.IsLowStock() {
		s.notifier.Info("Low stock", item.Name)
	}
	return item, nil
}

// FetchInventoryTransactions lists movements of one item, newest first.
func (s *POSStore) FetchInventoryTransactions(ctx context.Context, itemID uuid.UUID) {
	s.begin()
	const title = "Could not load inventory history"

	if _, err := s.requireUser(); err != nil {
		s.fail(title, err)
		return
	}

	q := wire.Where(wire.Eq("menu_item_id", itemID.String())).Order("created_at", true)
	recs, err := s.tables.Select(ctx, wire.TableInventoryTransactions, q)
	if err != nil {
		s.fail(title, errs.Backend(err, "failed to fetch inventory transactions"))
		return
	}
	txs, err := converter.TransactionsFromRecords(recs)
	if err != nil {
		s.fail(title, errs.Backend(err, "malformed inventory transaction"))
		return
	}

	s.succeed(func(st *POSState) {
		st.Transactions = txs
	})
}

//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"restaurant-pos/internal/domain/order"
	"restaurant-pos/internal/domain/user"
	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/ptr"
	"restaurant-pos/tests/common/builder"
	"restaurant-pos/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, srv *server, locID uuid.UUID) resdto.OrderResponse {
	t.Helper()
	require.NoError(t, srv.backend.Seed(wire.TableOrders, builder.NewOrderBuilder(locID).BuildRecord()))

	var orders []resdto.OrderResponse
	w := srv.do(t, http.MethodGet, "/api/orders", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &orders)
	require.Len(t, orders, 1)
	return orders[0]
}

func TestMenuHandler(t *testing.T) {
	srv := newServer(t)
	locID := srv.open(t, builder.NewUserBuilder())

	var item resdto.MenuItemResponse
	w := srv.do(t, http.MethodPost, "/api/menu-items", reqdto.CreateMenuItemRequest{
		Name:              "Ramen",
		Category:          "noodles",
		Price:             11,
		TrackInventory:    true,
		StockQuantity:     4,
		LowStockThreshold: 5,
	})
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &item)
	assert.Equal(t, locID, item.LocationID)
	assert.True(t, item.IsAvailable, "未指定なら販売可")
	assert.True(t, item.IsLowStock)

	base := "/api/menu-items/" + item.ID.String()

	t.Run("販売可否の切替", func(t *testing.T) {
		var toggled resdto.MenuItemResponse
		w := srv.do(t, http.MethodPost, base+"/toggle-availability", nil)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &toggled)
		assert.False(t, toggled.IsAvailable)
	})

	t.Run("在庫調整", func(t *testing.T) {
		var adjusted resdto.MenuItemResponse
		w := srv.do(t, http.MethodPost, base+"/adjust", reqdto.StockAdjustRequest{Delta: -4, Reason: "count"})
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &adjusted)
		assert.Zero(t, adjusted.StockQuantity)

		w = srv.do(t, http.MethodPost, base+"/restock", reqdto.StockQuantityRequest{Quantity: 6})
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &adjusted)
		assert.Equal(t, 6, adjusted.StockQuantity)
		assert.False(t, adjusted.IsLowStock)

		var txs []resdto.InventoryTransactionResponse
		w = srv.do(t, http.MethodGet, base+"/transactions", nil)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &txs)
		require.Len(t, txs, 2)
	})

	t.Run("在庫不足の調整は400", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, base+"/adjust", reqdto.StockAdjustRequest{Delta: -100})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	t.Run("数量0の入庫は400", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, base+"/restock", map[string]any{"quantity": 0})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})

	t.Run("一覧と削除", func(t *testing.T) {
		var items []resdto.MenuItemResponse
		w := srv.do(t, http.MethodGet, "/api/menu-items", nil)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 1)

		w = srv.do(t, http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, http.MethodPatch, base, reqdto.UpdateMenuItemRequest{Name: ptr.Of("Udon")})
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")
	})
}

func TestMenuHandler_StaffCannotEdit(t *testing.T) {
	srv := newServer(t)
	srv.open(t, builder.NewUserBuilder().WithRole(user.RoleStaff))

	w := srv.do(t, http.MethodPost, "/api/menu-items", reqdto.CreateMenuItemRequest{Name: "Tea", Price: 3})
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
}

func TestOrderHandler(t *testing.T) {
	srv := newServer(t)
	srv.open(t, builder.NewUserBuilder())

	var created resdto.OrderResponse
	w := srv.do(t, http.MethodPost, "/api/orders", reqdto.CreateOrderRequest{
		TableNumber: "7",
		Items: []reqdto.OrderItemRequest{
			{MenuItemID: uuid.New(), Name: "Gyoza", Quantity: 2, UnitPrice: 6},
		},
	})
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	assert.Equal(t, "260501-1200-0001", created.OrderNumber)
	assert.InDelta(t, 13.2, created.Total, 1e-9)
	assert.Equal(t, string(order.StatusPending), created.Status)

	base := "/api/orders/" + created.ID.String()

	var updated resdto.OrderResponse
	w = srv.do(t, http.MethodPatch, base+"/status", reqdto.UpdateOrderStatusRequest{Status: "preparing"})
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
	assert.Equal(t, string(order.StatusPreparing), updated.Status)
	assert.Equal(t, 2, updated.Version)

	w = srv.do(t, http.MethodPost, base+"/cancel", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
	assert.Equal(t, string(order.StatusCancelled), updated.Status)

	w = srv.do(t, http.MethodPatch, base+"/status", reqdto.UpdateOrderStatusRequest{Status: "preparing"})
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")

	t.Run("空の明細は400", func(t *testing.T) {
		w := srv.do(t, http.MethodPost, "/api/orders", map[string]any{"items": []any{}})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
	})
}

func TestPaymentHandler_Online(t *testing.T) {
	srv := newServer(t)
	locID := srv.open(t, builder.NewUserBuilder())
	o := seedOrder(t, srv, locID)

	var res resdto.PaymentResultResponse
	w := srv.do(t, http.MethodPost, "/api/payments/split", reqdto.SplitPaymentRequest{
		OrderID: o.ID,
		Parts: []reqdto.SplitPartRequest{
			{Amount: o.Total / 2, PaymentMethod: "cash"},
			{Amount: o.Total / 2, PaymentMethod: "card", TipPercentage: ptr.Of(10.0)},
		},
	})
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	assert.False(t, res.Offline)
	require.Len(t, res.Payments, 2)
	assert.Equal(t, string(order.PaymentPaid), res.Order.PaymentStatus)

	w = srv.do(t, http.MethodPost, "/api/payments", reqdto.PaymentRequest{OrderID: o.ID, Amount: 1, PaymentMethod: "cash"})
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")

	w = srv.do(t, http.MethodPost, "/api/payments", map[string]any{"order_id": o.ID, "amount": 1, "payment_method": "bitcoin"})
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request format")
}

func TestPaymentHandler_OfflineAndSync(t *testing.T) {
	srv := newServer(t)
	locID := srv.open(t, builder.NewUserBuilder())
	o := seedOrder(t, srv, locID)

	var state resdto.OfflineStateResponse
	w := srv.do(t, http.MethodPut, "/api/offline", reqdto.ConnectivityRequest{Offline: ptr.Of(true)})
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &state)
	assert.True(t, state.IsOffline)

	var res resdto.PaymentResultResponse
	w = srv.do(t, http.MethodPost, "/api/payments", reqdto.PaymentRequest{OrderID: o.ID, Amount: o.Total, PaymentMethod: "card"})
	httptest.AssertSuccessResponse(t, w, http.StatusAccepted, &res)
	assert.True(t, res.Offline)
	require.Len(t, res.OfflinePayments, 1)
	assert.Equal(t, string(order.SyncPendingConfirmation), res.Order.SyncState)

	w = srv.do(t, http.MethodGet, "/api/offline", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &state)
	assert.Equal(t, 1, state.QueueLength)

	w = srv.do(t, http.MethodPost, "/api/sync", nil)
	httptest.AssertErrorResponse(t, w, http.StatusServiceUnavailable, "")

	w = srv.do(t, http.MethodPut, "/api/offline", reqdto.ConnectivityRequest{Offline: ptr.Of(false)})
	require.Equal(t, http.StatusOK, w.Code)

	var synced resdto.SyncResultResponse
	w = srv.do(t, http.MethodPost, "/api/sync", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &synced)
	assert.Equal(t, 1, synced.Replayed)
	assert.Zero(t, synced.Remaining)

	var orders []resdto.OrderResponse
	w = srv.do(t, http.MethodGet, "/api/orders", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, string(order.PaymentPaid), orders[0].PaymentStatus)
	assert.Equal(t, string(order.SyncConfirmed), orders[0].SyncState)

	var notes []resdto.NotificationResponse
	w = srv.do(t, http.MethodGet, "/api/notifications", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &notes)
	titles := make([]string, len(notes))
	for i, n := range notes {
		titles[i] = n.Title
	}
	assert.Contains(t, titles, "Offline payments synced")
}

func TestPaymentHandler_LocalStorageFull(t *testing.T) {
	srv := newServer(t)
	locID := srv.open(t, builder.NewUserBuilder())
	o := seedOrder(t, srv, locID)
	srv.pos.SetOffline(true)
	srv.local.FailWrites(errors.New("disk full"))

	w := srv.do(t, http.MethodPost, "/api/payments", reqdto.PaymentRequest{OrderID: o.ID, Amount: o.Total, PaymentMethod: "cash"})
	httptest.AssertErrorResponse(t, w, http.StatusInsufficientStorage, "")
}

func TestSyncHandler_Halted(t *testing.T) {
	srv := newServer(t)
	locID := srv.open(t, builder.NewUserBuilder())
	o := seedOrder(t, srv, locID)
	srv.pos.SetOffline(true)

	w := srv.do(t, http.MethodPost, "/api/payments", reqdto.PaymentRequest{OrderID: o.ID, Amount: o.Total, PaymentMethod: "cash"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	srv.pos.SetOffline(false)
	srv.backend.SetUnavailable(true)

	w = srv.do(t, http.MethodPost, "/api/sync", nil)
	body := httptest.AssertErrorResponse(t, w, http.StatusBadGateway, "")

	var detail resdto.SyncResultResponse
	httptest.DecodeDetail(t, body, &detail)
	assert.Zero(t, detail.Replayed)
	assert.Equal(t, 1, detail.Remaining)
	assert.Equal(t, "processPayment", detail.FailedOperation)
}

func TestOfflineHandler_Probe(t *testing.T) {
	srv := newServer(t)
	srv.open(t, builder.NewUserBuilder())

	var state resdto.OfflineStateResponse
	srv.backend.SetUnavailable(true)
	w := srv.do(t, http.MethodPost, "/api/offline/probe", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &state)
	assert.True(t, state.IsOffline, "疎通失敗でオフライン")

	srv.backend.SetUnavailable(false)
	w = srv.do(t, http.MethodPost, "/api/offline/probe", nil)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &state)
	assert.False(t, state.IsOffline)
	assert.Zero(t, state.QueueLength)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	w := srv.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pos_")

	w = srv.do(t, http.MethodGet, "/api/orders", nil)
	httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
}

package api

import (
	"net/http"

	"restaurant-pos/internal/domain/order"
	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves orders and their payments.
type OrderHandler struct {
	pos *usecase.POSStore
}

func NewOrderHandler(pos *usecase.POSStore) *OrderHandler {
	return &OrderHandler{pos: pos}
}

// @Summary List orders
// @Description Orders of the location, newest first. Orders paid offline show as pending confirmation.
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param location_id query string false "Location ID"
// @Success 200 {array} resdto.OrderResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	locID, ok := queryLocation(c)
	if !ok {
		return
	}
	h.pos.FetchOrders(c.Request.Context(), locID)
	st := h.pos.Snapshot()
	if st.Err != nil {
		httperr.Abort(c, st.Err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrders(st.Orders))
}

// @Summary Create order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order"
// @Success 201 {object} resdto.OrderResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.pos.CreateOrder(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrder(created))
}

// @Summary Change order status
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} resdto.OrderResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.pos.UpdateOrderStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(updated))
}

// @Summary Cancel order
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	updated, err := h.pos.CancelOrder(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(updated))
}

// @Summary Pay an order
// @Description Charges online, or stores the payment for later sync while offline (202).
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentRequest true "Payment"
// @Success 201 {object} resdto.PaymentResultResponse
// @Success 202 {object} resdto.PaymentResultResponse
// @Failure 507 {object} httperr.Response
// @Router /payments [post]
func (h *OrderHandler) Pay(c *gin.Context) {
	var req reqdto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pos.ProcessPayment(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(paymentStatus(res), resdto.FromPaymentResult(res))
}

// @Summary Split payment
// @Description Charges each part in order and settles the order once.
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.SplitPaymentRequest true "Parts"
// @Success 201 {object} resdto.PaymentResultResponse
// @Success 202 {object} resdto.PaymentResultResponse
// @Router /payments/split [post]
func (h *OrderHandler) PaySplit(c *gin.Context) {
	var req reqdto.SplitPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.pos.ProcessSplitPayment(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(paymentStatus(res), resdto.FromPaymentResult(res))
}

func paymentStatus(res usecase.PaymentResult) int {
	if res.Offline {
		return http.StatusAccepted
	}
	return http.StatusCreated
}

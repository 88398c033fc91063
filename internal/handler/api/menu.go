package api

import (
	"net/http"

	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the menu and the inventory movements of its items.
type MenuHandler struct {
	pos *usecase.POSStore
}

func NewMenuHandler(pos *usecase.POSStore) *MenuHandler {
	return &MenuHandler{pos: pos}
}

// @Summary List menu items
// @Description Items of the given location, or of the working location, by category and name.
// @Tags menu
// @Security BearerAuth
// @Produce json
// @Param location_id query string false "Location ID"
// @Success 200 {array} resdto.MenuItemResponse
// @Router /menu-items [get]
func (h *MenuHandler) List(c *gin.Context) {
	locID, ok := queryLocation(c)
	if !ok {
		return
	}
	h.pos.FetchMenuItems(c.Request.Context(), locID)
	st := h.pos.Snapshot()
	if st.Err != nil {
		httperr.Abort(c, st.Err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItems(st.MenuItems))
}

// @Summary Create menu item
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} resdto.MenuItemResponse
// @Router /menu-items [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req reqdto.CreateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.pos.CreateMenuItem(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMenuItem(item))
}

// @Summary Update menu item
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.UpdateMenuItemRequest true "Changes"
// @Success 200 {object} resdto.MenuItemResponse
// @Router /menu-items/{id} [patch]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateMenuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.pos.UpdateMenuItem(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItem(item))
}

// @Summary Toggle availability
// @Tags menu
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 200 {object} resdto.MenuItemResponse
// @Router /menu-items/{id}/toggle-availability [post]
func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.pos.ToggleAvailability(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItem(item))
}

// @Summary Delete menu item
// @Tags menu
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 204 "No Content"
// @Router /menu-items/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pos.DeleteMenuItem(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Restock
// @Tags inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.StockQuantityRequest true "Quantity received"
// @Success 200 {object} resdto.MenuItemResponse
// @Router /menu-items/{id}/restock [post]
func (h *MenuHandler) Restock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.StockQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.pos.Restock(c.Request.Context(), id, req.Quantity, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItem(item))
}

// @Summary Adjust stock
// @Description Apply a signed correction. The level never goes below zero.
// @Tags inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.StockAdjustRequest true "Correction"
// @Success 200 {object} resdto.MenuItemResponse
// @Router /menu-items/{id}/adjust [post]
func (h *MenuHandler) Adjust(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.StockAdjustRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.pos.AdjustStock(c.Request.Context(), id, req.Delta, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItem(item))
}

// @Summary Record waste
// @Tags inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.StockQuantityRequest true "Quantity wasted"
// @Success 200 {object} resdto.MenuItemResponse
// @Router /menu-items/{id}/waste [post]
func (h *MenuHandler) Waste(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.StockQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.pos.RecordWaste(c.Request.Context(), id, req.Quantity, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItem(item))
}

// @Summary Inventory history
// @Tags inventory
// @Security BearerAuth
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {array} resdto.InventoryTransactionResponse
// @Router /menu-items/{id}/transactions [get]
func (h *MenuHandler) Transactions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.pos.FetchInventoryTransactions(c.Request.Context(), id)
	st := h.pos.Snapshot()
	if st.Err != nil {
		httperr.Abort(c, st.Err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransactions(st.Transactions))
}

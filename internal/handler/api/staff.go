package api

import (
	"net/http"

	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staff *usecase.StaffStore
}

func NewStaffHandler(staff *usecase.StaffStore) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// @Summary List staff of a location
// @Tags staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {array} resdto.StaffResponse
// @Router /locations/{id}/staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	locID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.staff.FetchStaff(c.Request.Context(), locID)
	st := h.staff.Snapshot()
	if st.Err != nil {
		httperr.Abort(c, st.Err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStaffList(st.Members))
}

// @Summary Add staff member
// @Description A password also registers a sign-in account for the member.
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateStaffRequest true "Staff member"
// @Success 201 {object} resdto.StaffResponse
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req reqdto.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.staff.CreateStaff(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromStaff(m))
}

// @Summary Update staff member
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body reqdto.UpdateStaffRequest true "Changes"
// @Success 200 {object} resdto.StaffResponse
// @Router /staff/{id} [patch]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.staff.UpdateStaff(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStaff(m))
}

// @Summary Deactivate staff member
// @Tags staff
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} resdto.StaffResponse
// @Router /staff/{id}/deactivate [post]
func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.staff.DeactivateStaff(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStaff(m))
}

// @Summary Remove staff member
// @Tags staff
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 204 "No Content"
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.staff.DeleteStaff(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locations *usecase.LocationStore
}

func NewLocationHandler(locations *usecase.LocationStore) *LocationHandler {
	return &LocationHandler{locations: locations}
}

func (h *LocationHandler) respond(c *gin.Context, status int) {
	st := h.locations.Snapshot()
	c.JSON(status, resdto.FromLocations(st.Locations, st.Selected))
}

// @Summary List locations
// @Description Reload the locations visible to the operator and the working selection.
// @Tags locations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.LocationListResponse
// @Failure 502 {object} httperr.Response
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	h.locations.FetchLocations(c.Request.Context())
	if err := h.locations.Snapshot().Err; err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Create location
// @Tags locations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateLocationRequest true "Location"
// @Success 201 {object} resdto.LocationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req reqdto.CreateLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.locations.CreateLocation(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLocation(created))
}

// @Summary Update location
// @Tags locations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body reqdto.UpdateLocationRequest true "Changes"
// @Success 200 {object} resdto.LocationResponse
// @Router /locations/{id} [patch]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateLocationRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.locations.UpdateLocation(c.Request.Context(), id, req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLocation(updated))
}

// @Summary Delete location
// @Tags locations
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 204 "No Content"
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.locations.DeleteLocation(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Select working location
// @Description Switch among the loaded locations without contacting the backend.
// @Tags locations
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} resdto.LocationListResponse
// @Router /locations/{id}/select [post]
func (h *LocationHandler) Select(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.locations.SelectLocation(id); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Make location the default
// @Description Store the location as the operator's default and select it.
// @Tags locations
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} resdto.LocationListResponse
// @Router /locations/{id}/default [put]
func (h *LocationHandler) SetDefault(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.locations.SetDefaultLocation(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

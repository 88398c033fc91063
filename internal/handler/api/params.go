package api

import (
	"net/http"

	"restaurant-pos/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, err, err.Error())
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryLocation reads ?location_id=, returning uuid.Nil when absent so the store falls back to
// the selected location.
func queryLocation(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("location_id")
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid location_id", nil)
		return uuid.Nil, false
	}
	return id, true
}

package api

import (
	"io"
	"net/http"

	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OfflineHandler exposes connectivity, the offline queue and user notifications.
type OfflineHandler struct {
	pos     *usecase.POSStore
	monitor *usecase.ConnectivityMonitor
	notes   *notify.Center
}

func NewOfflineHandler(pos *usecase.POSStore, monitor *usecase.ConnectivityMonitor, notes *notify.Center) *OfflineHandler {
	return &OfflineHandler{pos: pos, monitor: monitor, notes: notes}
}

// @Summary Offline state
// @Tags offline
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.OfflineStateResponse
// @Router /offline [get]
func (h *OfflineHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromPOSState(h.pos.Snapshot()))
}

// @Summary Offline state stream
// @Description Server-sent events carrying the offline state, the current one first and then on every change.
// @Tags offline
// @Security BearerAuth
// @Produce text/event-stream
// @Success 200 {object} resdto.OfflineStateResponse
// @Router /offline/events [get]
func (h *OfflineHandler) Events(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	updates, unsubscribe := h.pos.Subscribe()
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case st, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("state", resdto.FromPOSState(st))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// @Summary Set connectivity
// @Description Force offline capture on or off. Going online does not start a sync by itself.
// @Tags offline
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.ConnectivityRequest true "Connectivity"
// @Success 200 {object} resdto.OfflineStateResponse
// @Router /offline [put]
func (h *OfflineHandler) SetConnectivity(c *gin.Context) {
	var req reqdto.ConnectivityRequest
	if !bindJSON(c, &req) {
		return
	}
	h.pos.SetOffline(*req.Offline)
	c.JSON(http.StatusOK, resdto.FromPOSState(h.pos.Snapshot()))
}

// @Summary Probe the backend
// @Description Check connectivity now. Coming back online with queued work syncs it.
// @Tags offline
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.OfflineStateResponse
// @Router /offline/probe [post]
func (h *OfflineHandler) Probe(c *gin.Context) {
	h.monitor.Probe(c.Request.Context())
	c.JSON(http.StatusOK, resdto.FromPOSState(h.pos.Snapshot()))
}

// @Summary Sync offline data
// @Description Replay queued payments in order. Stops at the first failure.
// @Tags offline
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.SyncResultResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /sync [post]
func (h *OfflineHandler) Sync(c *gin.Context) {
	res, err := h.pos.SyncOfflineData(c.Request.Context())
	if err != nil {
		if res.FinishedAt.IsZero() {
			httperr.Abort(c, err)
			return
		}
		// halted mid-queue: report how far the replay got
		httperr.AbortWithError(c, httperr.StatusFor(err), err, err.Error(), resdto.FromSyncResult(res))
		return
	}
	c.JSON(http.StatusOK, resdto.FromSyncResult(res))
}

// @Summary Recent notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.NotificationResponse
// @Router /notifications [get]
func (h *OfflineHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromNotifications(h.notes.Recent()))
}

package handler

import (
	"net/http"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/handler/api"
	"restaurant-pos/internal/handler/middleware"
	"restaurant-pos/internal/infra/metrics"
	"restaurant-pos/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every API handler the router mounts.
type Handlers struct {
	fx.In

	Auth     *api.AuthHandler
	Location *api.LocationHandler
	Staff    *api.StaffHandler
	Menu     *api.MenuHandler
	Order    *api.OrderHandler
	Offline  *api.OfflineHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireManager := authMiddleware.RequireRoleAtLeast(user.RoleManager)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/signup", Handler: h.Auth.SignUp},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
				{Method: http.MethodPatch, Path: "/me", Handler: h.Auth.UpdateProfile},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())

		locations := authed.Group("/locations")
		{
			addRoutes(locations, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Location.List},
				{Method: http.MethodPost, Path: "", Handler: h.Location.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Location.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Location.Delete},
				{Method: http.MethodPost, Path: "/:id/select", Handler: h.Location.Select},
				{Method: http.MethodPut, Path: "/:id/default", Handler: h.Location.SetDefault},
				{Method: http.MethodGet, Path: "/:id/staff", Handler: h.Staff.List, Mw: []gin.HandlerFunc{requireManager}},
			})
		}

		staff := authed.Group("/staff")
		staff.Use(requireManager)
		{
			addRoutes(staff, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Staff.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Staff.Update},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.Staff.Deactivate},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Staff.Delete},
			})
		}

		menu := authed.Group("/menu-items")
		{
			addRoutes(menu, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Menu.List},
				{Method: http.MethodPost, Path: "", Handler: h.Menu.Create},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Menu.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Menu.Delete},
				{Method: http.MethodPost, Path: "/:id/toggle-availability", Handler: h.Menu.ToggleAvailability},
				{Method: http.MethodPost, Path: "/:id/restock", Handler: h.Menu.Restock},
				{Method: http.MethodPost, Path: "/:id/adjust", Handler: h.Menu.Adjust},
				{Method: http.MethodPost, Path: "/:id/waste", Handler: h.Menu.Waste},
				{Method: http.MethodGet, Path: "/:id/transactions", Handler: h.Menu.Transactions},
			})
		}

		orders := authed.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.List},
				{Method: http.MethodPost, Path: "", Handler: h.Order.Create},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Order.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
			})
		}

		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/payments", Handler: h.Order.Pay},
			{Method: http.MethodPost, Path: "/payments/split", Handler: h.Order.PaySplit},
			{Method: http.MethodGet, Path: "/offline", Handler: h.Offline.State},
			{Method: http.MethodGet, Path: "/offline/events", Handler: h.Offline.Events},
			{Method: http.MethodPut, Path: "/offline", Handler: h.Offline.SetConnectivity},
			{Method: http.MethodPost, Path: "/offline/probe", Handler: h.Offline.Probe},
			{Method: http.MethodPost, Path: "/sync", Handler: h.Offline.Sync},
			{Method: http.MethodGet, Path: "/notifications", Handler: h.Offline.Notifications},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

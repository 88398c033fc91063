package middleware

import (
	"log/slog"
	"slices"

	"restaurant-pos/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// used when the config leaves a list empty; cors.New panics without origins
var (
	defaultUIOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	defaultMethods   = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultHeaders   = []string{"Origin", "Content-Type", "Accept", "Authorization"}
)

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return slices.Clone(def)
	}
	return v
}

// NewCORSMiddleware lets the terminal UI, served from its own origin, call the local API with
// the session cookie.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	if len(cfg.AllowOrigins) == 0 {
		slog.Warn("CORS origins not configured, allowing the local UI only", "AllowOrigins", defaultUIOrigins)
	}
	corsCfg := cors.Config{
		AllowOrigins:     orDefault(cfg.AllowOrigins, defaultUIOrigins),
		AllowMethods:     orDefault(cfg.AllowMethods, defaultMethods),
		AllowHeaders:     orDefault(cfg.AllowHeaders, defaultHeaders),
		ExposeHeaders:    append(slices.Clone(cfg.ExposeHeaders), "X-Request-ID"),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", corsCfg.AllowOrigins)
	return cors.New(corsCfg)
}

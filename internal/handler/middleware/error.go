package middleware

import (
	"log/slog"
	"net/http"

	"restaurant-pos/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the response for handlers that recorded an error without answering.
// Public errors carry their response in Meta; anything else is mapped by its taxonomy.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}

		last := c.Errors.Last()
		resp := httperr.Response{Status: httperr.StatusFor(last.Err)}
		resp.Error.Message = "Internal server error"
		if resp.Status != http.StatusInternalServerError {
			resp.Error.Message = last.Err.Error()
		}
		c.JSON(resp.Status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c))

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/pkg/cookie"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserKey     = "auth_user"
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
	ctxClaimsKey   = "auth_claims"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func requestToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.NotSignedIn(), "Access token required", nil)
			return
		}

		u, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserKey, u)
		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxUserRoleKey, u.Role)
		c.Set(ctxClaimsKey, map[string]any{
			"user_id": u.ID.String(),
			"role":    u.Role.String(),
		})
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("role missing from request context"), "Internal server error", nil)
			return
		}

		if !role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errs.Forbidden("insufficient role"), "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func GetUser(c *gin.Context) (user.User, bool) {
	v, exists := c.Get(ctxUserKey)
	if !exists {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

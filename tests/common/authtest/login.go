//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"restaurant-pos/internal/handler/dto/request"
	"restaurant-pos/internal/pkg/cookie"
	"restaurant-pos/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser signs in through the API and returns the session token from the cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sessionCookie := httptest.ExtractCookie(w, cookie.SessionTokenCookieName)
	require.NotNil(t, sessionCookie, "Session token not found in cookies")
	require.NotEmpty(t, sessionCookie.Value, "Session token cookie is empty")

	return sessionCookie.Value
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

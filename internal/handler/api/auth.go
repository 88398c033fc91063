package api

import (
	"net/http"
	"time"

	"restaurant-pos/internal/domain/auth"
	"restaurant-pos/internal/domain/user"
	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/handler/httperr"
	"restaurant-pos/internal/handler/middleware"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/pkg/cookie"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *usecase.AuthStore
	cookie config.CookieConfig
	clock  clock.Clock
}

func NewAuthHandler(auth *usecase.AuthStore, cfg config.Config, clk clock.Clock) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		cookie: cfg.Cookie,
		clock:  clk,
	}
}

// @Summary Operator login
// @Description Sign in with email and password. Replaces any session held by the terminal.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, auth.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
			return
		}
		httperr.Abort(c, err)
		return
	}

	st := h.auth.Snapshot()
	cookie.SetSessionCookie(c, h.cookie, st.AccessToken, h.ttl(st.ExpiresAt))
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: st.AccessToken,
		ExpiresAt:   st.ExpiresAt,
		User:        resdto.FromUser(u),
	})
}

func (h *AuthHandler) ttl(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return 0
	}
	return expiresAt.Sub(h.clock.Now())
}

// @Summary Register an operator account
// @Description Create an identity and profile. The terminal stays signed in as before.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.SignUpRequest true "Sign-up request"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req reqdto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.auth.SignUp(c.Request.Context(), req.ToDomain())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromUser(u))
}

// @Summary Operator logout
// @Description Ends the session. Local state is cleared even when the backend cannot be reached.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.auth.SignOut(c.Request.Context())
	cookie.ClearSessionCookie(c, h.cookie)
	if err != nil && !errs.Is(err, errs.ErrBackend) {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current operator
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	if _, ok := middleware.GetUser(c); !ok {
		httperr.Abort(c, errs.NotSignedIn())
		return
	}
	u, ok := h.auth.CurrentUser()
	if !ok {
		httperr.Abort(c, errs.NotSignedIn())
		return
	}
	c.JSON(http.StatusOK, resdto.FromUser(u))
}

// @Summary Update own profile
// @Description Change the operator's role or language. Only the given fields are sent.
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/me [patch]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req reqdto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	u, _ := h.auth.CurrentUser()
	if req.Role != nil {
		updated, err := h.auth.UpdateRole(ctx, user.Role(*req.Role))
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		u = updated
	}
	if req.Language != nil {
		updated, err := h.auth.UpdateLanguage(ctx, *req.Language)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		u = updated
	}
	c.JSON(http.StatusOK, resdto.FromUser(u))
}

//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"restaurant-pos/internal/domain/user"
	reqdto "restaurant-pos/internal/handler/dto/request"
	resdto "restaurant-pos/internal/handler/dto/response"
	"restaurant-pos/internal/pkg/cookie"
	"restaurant-pos/tests/common/builder"
	"restaurant-pos/tests/common/httptest"
	"restaurant-pos/tests/common/testutil"

	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	srv *server
	ub  *builder.UserBuilder
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.srv = newServer(s.T())
	s.ub = builder.NewUserBuilder().WithRole(user.RoleAdmin)
	s.ub.Seed(s.T(), s.srv.backend)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/api/auth/login"
	reqBody := builder.NewLoginBuilder(s.ub).BuildDTO()

	s.Run("success: returns 200 OK and sets the session cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.ub.Email, response.User.Email)
		s.Equal(string(user.RoleAdmin), response.User.Role)
		s.NotEmpty(response.AccessToken)
		s.True(testNow.Add(12*time.Hour).Equal(response.ExpiresAt), "expires_at: %s", response.ExpiresAt)

		c := httptest.ExtractCookie(rec, cookie.SessionTokenCookieName)
		s.Require().NotNil(c)
		s.Equal(response.AccessToken, c.Value)
		s.True(c.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "メール形式不正", mutate: testutil.Set("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "パスワード5文字", mutate: testutil.Set("password", strings.Repeat("a", 5)), expectCode: http.StatusBadRequest},
			{name: "email欠落", mutate: testutil.Drop("email"), expectCode: http.StatusBadRequest},
			{name: "password欠落", mutate: testutil.Drop("password"), expectCode: http.StatusBadRequest},
			{name: "空のemail", mutate: testutil.Set("email", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.JSONMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 on wrong password", func() {
		body := builder.NewLoginBuilder(s.ub).WithPassword("wrong-password").BuildDTO()
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 403 for an inactive operator", func() {
		inactive := builder.NewUserBuilder().WithEmail("gone@example.com").AsInactive()
		inactive.Seed(s.T(), s.srv.backend)
		body := builder.NewLoginBuilder(inactive).BuildDTO()
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "inactive")
		s.Zero(s.srv.backend.ActiveSessions(), "拒否されたセッションは破棄される")
	})
}

func (s *AuthHandlerTestSuite) TestMeAndLogout() {
	token := s.login()

	s.Run("Bearerトークンで取得", func() {
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodGet, "/api/auth/me", nil, token)
		var me resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &me)
		s.Equal(s.ub.Email, me.Email)
		s.NotNil(me.ManagedRestaurantIDs)
	})

	s.Run("トークンなしは401", func() {
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodGet, "/api/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("ログアウトでクッキー削除", func() {
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, "/api/auth/logout", nil, token)
		s.Equal(http.StatusNoContent, rec.Code)
		c := httptest.ExtractCookie(rec, cookie.SessionTokenCookieName)
		s.Require().NotNil(c)
		s.Empty(c.Value)
		s.Zero(s.srv.backend.ActiveSessions())

		rec = httptest.PerformRequest(s.T(), s.srv.router, http.MethodGet, "/api/auth/me", nil, token)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *AuthHandlerTestSuite) TestLogoutWhileBackendDown() {
	token := s.login()
	s.srv.backend.SetUnavailable(true)

	rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, "/api/auth/logout", nil, token)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = httptest.PerformRequest(s.T(), s.srv.router, http.MethodGet, "/api/auth/me", nil, token)
	s.Equal(http.StatusUnauthorized, rec.Code, "ローカルのセッションは破棄済み")
}

func (s *AuthHandlerTestSuite) TestUpdateProfile() {
	token := s.login()

	rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPatch, "/api/auth/me", map[string]any{"language": "ja"}, token)
	var me resdto.UserResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &me)
	s.Equal("ja", me.Language)

	rec = httptest.PerformRequest(s.T(), s.srv.router, http.MethodPatch, "/api/auth/me", map[string]any{"language": "japanese"}, token)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerTestSuite) TestSignUpRoleGrant() {
	url := "/api/auth/signup"
	req := reqdto.SignUpRequest{Email: "walkin@example.com", Password: "secret99", FullName: "Walk In", Role: string(user.RoleSuperAdmin)}

	s.Run("未ログインで上位ロールを要求すると403", func() {
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, req, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "granted by an admin")
	})

	s.Run("ロール省略ならstaff", func() {
		body := req
		body.Role = ""
		rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, url, body, "")

		var created resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal(string(user.RoleStaff), created.Role)
	})
}

func (s *AuthHandlerTestSuite) TestUpdateOwnRole() {
	staffUser := builder.NewUserBuilder().WithEmail("line.cook@example.com").WithRole(user.RoleStaff)
	staffUser.Seed(s.T(), s.srv.backend)
	rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, "/api/auth/login", builder.NewLoginBuilder(staffUser).BuildDTO(), "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	token := httptest.ExtractCookie(rec, cookie.SessionTokenCookieName).Value

	rec = httptest.PerformRequest(s.T(), s.srv.router, http.MethodPatch, "/api/auth/me", map[string]any{"role": "super-admin"}, token)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "cannot raise your own role")

	rec = httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, "/api/staff", map[string]any{"full_name": "Boss", "role": "admin"}, token)
	s.Equal(http.StatusForbidden, rec.Code, "昇格できていないこと")
}

func (s *AuthHandlerTestSuite) login() string {
	s.T().Helper()
	body := builder.NewLoginBuilder(s.ub).BuildDTO()
	rec := httptest.PerformRequest(s.T(), s.srv.router, http.MethodPost, "/api/auth/login", body, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return httptest.ExtractCookie(rec, cookie.SessionTokenCookieName).Value
}

package usecase

import (
	"crypto/subtle"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/errs"
)

// TokenValidator resolves the bearer of a request token to the signed-in operator.
type TokenValidator interface {
	ValidateToken(token string) (user.User, error)
}

type sessionTokenValidator struct {
	auth  *AuthStore
	clock clock.Clock
}

// NewTokenValidator accepts only the access token of the terminal's current session.
func NewTokenValidator(auth *AuthStore, clk clock.Clock) TokenValidator {
	return &sessionTokenValidator{auth: auth, clock: clk}
}

func (v *sessionTokenValidator) ValidateToken(token string) (user.User, error) {
	st := v.auth.Snapshot()
	if !st.IsAuthenticated || st.User == nil || token == "" {
		return user.User{}, errs.NotSignedIn()
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(st.AccessToken)) != 1 {
		return user.User{}, errs.Mark(errs.Precondition("token does not belong to the current session"), errs.ErrNotSignedIn)
	}
	if !st.ExpiresAt.IsZero() && !v.clock.Now().Before(st.ExpiresAt) {
		return user.User{}, errs.Mark(errs.Precondition("session expired"), errs.ErrNotSignedIn)
	}
	return *st.User, nil
}

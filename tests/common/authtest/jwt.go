//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"restaurant-pos/internal/pkg/config"
	"restaurant-pos/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens that are well formed but belong to no session of the terminal.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) service(t *testing.T, d time.Duration) *jwt.Service {
	t.Helper()
	if d == 0 {
		var err error
		d, err = time.ParseDuration(h.cfg.Duration)
		require.NoError(t, err)
	}
	return jwt.NewService(h.cfg.Secret, d)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token, _, err := h.service(t, 0).GenerateToken(userID, uuid.New(), email)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token, _, err := h.service(t, time.Millisecond).GenerateToken(userID, uuid.New(), email)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

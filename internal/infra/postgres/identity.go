package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"restaurant-pos/internal/infra"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/jwt"
	"restaurant-pos/internal/pkg/password"

	"github.com/google/uuid"
)

// Identity authenticates against auth_users and tracks issued tokens in auth_sessions.
type Identity struct {
	db     DBTX
	jwt    *jwt.Service
	clock  clock.Clock
	logger *slog.Logger
}

func NewIdentity(db DBTX, jwtService *jwt.Service, clk clock.Clock, logger *slog.Logger) *Identity {
	return &Identity{db: db, jwt: jwtService, clock: clk, logger: logger}
}

func (i *Identity) SignUp(ctx context.Context, email, pw string) (wire.AuthAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := password.HashPassword(pw)
	if err != nil {
		return wire.AuthAccount{}, infra.WrapBackendErr(i.logger, infra.KindInvalidRequest, "sign up", err)
	}

	var id string
	err = i.db.QueryRow(ctx,
		`INSERT INTO auth_users (email, password_hash) VALUES ($1, $2) RETURNING id::text`,
		email, hash,
	).Scan(&id)
	if err != nil {
		return wire.AuthAccount{}, infra.WrapBackendErr(i.logger, infra.Classify(err), "sign up", err)
	}

	return wire.AuthAccount{UserID: id, Email: email}, nil
}

func (i *Identity) SignInWithPassword(ctx context.Context, email, pw string) (wire.AuthSession, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		idText string
		hash   string
	)
	err := i.db.QueryRow(ctx,
		`SELECT id::text, password_hash FROM auth_users WHERE email = $1`,
		email,
	).Scan(&idText, &hash)
	if err != nil {
		kind := infra.Classify(err)
		if kind == infra.KindNotFound {
			kind = infra.KindInvalidCredentials
		}
		return wire.AuthSession{}, infra.WrapBackendErr(i.logger, kind, "sign in", err)
	}

	if err := password.ComparePassword(hash, pw); err != nil {
		return wire.AuthSession{}, infra.WrapBackendErr(i.logger, infra.KindInvalidCredentials, "sign in", err)
	}

	userID, err := uuid.Parse(idText)
	if err != nil {
		return wire.AuthSession{}, infra.WrapBackendErr(i.logger, infra.KindFailure, "sign in", err)
	}

	sessionID := uuid.New()
	token, expiresAt, err := i.jwt.GenerateToken(userID, sessionID, email)
	if err != nil {
		return wire.AuthSession{}, infra.WrapBackendErr(i.logger, infra.KindFailure, "issue token", err)
	}

	_, err = i.db.Exec(ctx,
		`INSERT INTO auth_sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		sessionID.String(), idText, expiresAt, i.clock.Now(),
	)
	if err != nil {
		return wire.AuthSession{}, infra.WrapBackendErr(i.logger, infra.Classify(err), "create session", err)
	}

	return wire.AuthSession{
		UserID:      idText,
		Email:       email,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// SignOut revokes the session behind accessToken. An expired token has nothing left to revoke.
func (i *Identity) SignOut(ctx context.Context, accessToken string) error {
	claims, err := i.jwt.ValidateToken(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil
		}
		return infra.WrapBackendErr(i.logger, infra.KindInvalidCredentials, "sign out", err)
	}

	_, err = i.db.Exec(ctx, `DELETE FROM auth_sessions WHERE id = $1`, claims.ID)
	if err != nil {
		return infra.WrapBackendErr(i.logger, infra.Classify(err), "sign out", err)
	}
	return nil
}

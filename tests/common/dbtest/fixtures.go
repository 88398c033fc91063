//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "password123"

// Conn is what the fixtures need from a pool, a connection or a transaction.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestUser inserts an identity with DefaultPassword and its profile.
func CreateTestUser(t *testing.T, db Conn, email string, role user.Role, restaurantID *uuid.UUID) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	hash, err := password.HashPasswordWithCost(DefaultPassword, bcrypt.MinCost)
	require.NoError(t, err)

	var userID uuid.UUID
	err = db.QueryRow(ctx,
		"INSERT INTO auth_users (email, password_hash) VALUES ($1, $2) RETURNING id",
		email, hash,
	).Scan(&userID)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO profiles (id, email, full_name, role, restaurant_id) VALUES ($1, $2, $3, $4, $5)",
		userID, email, "Test "+string(role), string(role), restaurantID,
	)
	require.NoError(t, err)

	return userID
}

func CreateTestLocation(t *testing.T, db Conn, restaurantID uuid.UUID, name string, taxRate float64) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO locations (restaurant_id, name, tax_rate) VALUES ($1, $2, $3) RETURNING id",
		restaurantID, name, taxRate,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}

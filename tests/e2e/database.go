//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"restaurant-pos/internal/infra/db"
	"restaurant-pos/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// prepareDatabase creates a database private to this test process and applies the migrations.
func prepareDatabase(t *testing.T, pg Endpoint) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	name := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(pg))
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	// 起動直後は接続を拒否されることがある
	require.Eventually(t, func() bool {
		_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
		if err != nil {
			slog.Warn("データベース作成を再試行中", "error", err.Error())
		}
		return err == nil
	}, 10*time.Second, 500*time.Millisecond, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(pg))
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", name, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	cfg := config.DBConfig{
		Host:     pg.Host,
		Port:     pg.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
	pool, closePool, err := db.Connect(cfg)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(closePool)

	require.NoError(t, applyMigrations(ctx, pool), "マイグレーションに失敗")
	return pool, cfg
}

// applyMigrations runs migrations/*.sql in name order. Tests run from their package directory,
// so the module root is found by walking up to go.mod.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := moduleRoot()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above working directory")
		}
		dir = parent
	}
}

// prepareOfflineStore gives this process its own key prefix in the shared Redis and removes
// the keys afterwards.
func prepareOfflineStore(t *testing.T, r Endpoint) config.OfflineConfig {
	t.Helper()
	prefix := "pos:e2e:" + strings.ReplaceAll(uuid.NewString(), "-", "")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client := redis.NewClient(&redis.Options{Addr: r.Addr()})
		defer client.Close()

		iter := client.Scan(ctx, 0, prefix+":*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if len(keys) == 0 {
			return
		}
		if err := client.Del(ctx, keys...).Err(); err != nil {
			slog.Warn("オフラインデータの削除に失敗しました", "prefix", prefix, "error", err.Error())
		}
	})

	return config.OfflineConfig{
		Driver:    config.OfflineDriverRedis,
		RedisAddr: r.Addr(),
		KeyPrefix: prefix,
	}
}

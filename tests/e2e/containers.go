//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

// Endpoint is where a started container can be reached from the test process.
type Endpoint struct {
	Host string
	Port nat.Port
}

func (e Endpoint) Addr() string {
	return e.Host + ":" + e.Port.Port()
}

// sharedContainer starts one container per test binary and hands the same endpoint to every
// suite in it. Ryuk removes the container when the process exits.
type sharedContainer struct {
	once     sync.Once
	name     string
	port     nat.Port
	request  func() testcontainers.ContainerRequest
	endpoint Endpoint
	err      error
}

func (s *sharedContainer) start(t *testing.T) Endpoint {
	t.Helper()
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		var c testcontainers.Container
		c, s.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: s.request(),
			Started:          true,
		})
		if s.err != nil {
			return
		}
		s.endpoint, s.err = endpointOf(ctx, c, s.port)
		if s.err == nil {
			slog.Info("コンテナ起動完了", "container", s.name, "addr", s.endpoint.Addr())
		}
	})
	require.NoError(t, s.err, "%sコンテナの起動に失敗", s.name)
	return s.endpoint
}

func endpointOf(ctx context.Context, c testcontainers.Container, port nat.Port) (Endpoint, error) {
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{Host: host, Port: mapped}, nil
}

var postgresContainer = &sharedContainer{
	name: "PostgreSQL",
	port: "5432/tcp",
	request: func() testcontainers.ContainerRequest {
		return testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       "postgres",
			},
			// データはRAM上、耐久性は不要
			Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return adminDSN(Endpoint{Host: host, Port: port})
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}
	},
}

var redisContainer = &sharedContainer{
	name: "Redis",
	port: "6379/tcp",
	request: func() testcontainers.ContainerRequest {
		return testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}
	},
}

func adminDSN(e Endpoint) string {
	return fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, e.Addr())
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between terminals (port, DB connection, secrets)
// - default: Values common across all terminals (timezone, timeouts, drivers)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Offline OfflineConfig
	Sync    SyncConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	BackendDriverPostgres = "postgres"
	BackendDriverMemory   = "memory"
)

type BackendConfig struct {
	Driver string `envconfig:"BACKEND_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

const (
	OfflineDriverFile   = "file"
	OfflineDriverRedis  = "redis"
	OfflineDriverMemory = "memory"
)

type OfflineConfig struct {
	Driver        string `envconfig:"OFFLINE_DRIVER" default:"file"`
	Dir           string `envconfig:"OFFLINE_DIR" default:".pos-offline"`
	RedisAddr     string `envconfig:"OFFLINE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"OFFLINE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"OFFLINE_REDIS_DB" default:"0"`
	KeyPrefix     string `envconfig:"OFFLINE_KEY_PREFIX" default:"pos:offline"`
}

type SyncConfig struct {
	Enabled       bool          `envconfig:"SYNC_ENABLED" default:"true"`
	ProbeInterval time.Duration `envconfig:"SYNC_PROBE_INTERVAL" default:"15s"`
	ProbeTimeout  time.Duration `envconfig:"SYNC_PROBE_TIMEOUT" default:"3s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend.Driver {
	case BackendDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres backend")
		}
	case BackendDriverMemory:
	default:
		return fmt.Errorf("unknown BACKEND_DRIVER %q", c.Backend.Driver)
	}

	switch c.Offline.Driver {
	case OfflineDriverFile, OfflineDriverRedis, OfflineDriverMemory:
	default:
		return fmt.Errorf("unknown OFFLINE_DRIVER %q", c.Offline.Driver)
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Backend: BackendConfig{
			Driver: BackendDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 4,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Offline: OfflineConfig{
			Driver:    OfflineDriverMemory,
			KeyPrefix: "pos:test",
		},
		Sync: SyncConfig{
			Enabled:       false,
			ProbeInterval: time.Second,
			ProbeTimeout:  time.Second,
		},
	}
}

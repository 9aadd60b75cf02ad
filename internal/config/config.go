// Package config loads client and server settings: built-in defaults, then an
// optional TOML file, then FITSYNC_* environment variables.
package config

import (
	"time"
)

// Environment variable names for overrides.
const (
	EnvServerURL = "FITSYNC_SERVER_URL"
	EnvDBPath    = "FITSYNC_DB_PATH"
	EnvLogLevel  = "FITSYNC_LOG_LEVEL"
	EnvJWTSecret = "FITSYNC_JWT_SECRET"
	EnvDBDriver  = "FITSYNC_DB_DRIVER"
	EnvDBDSN     = "FITSYNC_DB_DSN"
	EnvListen    = "FITSYNC_LISTEN"
)

// Драйверы серверного хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// LogConfig настройки логирования
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json, auto
}

// SyncConfig параметры синхронизации клиента
type SyncConfig struct {
	Debounce      time.Duration `toml:"debounce"`
	ReplayTimeout time.Duration `toml:"replay_timeout"`
	PushTimeout   time.Duration `toml:"push_timeout"`
	PollInterval  time.Duration `toml:"poll_interval"`
	MaxRetries    int           `toml:"max_retries"`
}

// QueueConfig политика очереди
type QueueConfig struct {
	ClearOnLogout bool `toml:"clear_on_logout"`
}

// ClientConfig конфигурация CLI клиента
type ClientConfig struct {
	ServerURL string      `toml:"server_url"`
	DBPath    string      `toml:"db_path"`
	Log       LogConfig   `toml:"log"`
	Sync      SyncConfig  `toml:"sync"`
	Queue     QueueConfig `toml:"queue"`
}

// DBConfig серверная база
type DBConfig struct {
	Driver string `toml:"driver"` // sqlite, postgres
	DSN    string `toml:"dsn"`
}

// AuthConfig параметры токенов
type AuthConfig struct {
	JWTSecret string        `toml:"jwt_secret"`
	TokenTTL  time.Duration `toml:"token_ttl"`
}

// RateLimitConfig ограничение запросов с одного IP
type RateLimitConfig struct {
	Window   time.Duration `toml:"window"`
	Requests int           `toml:"requests"` // 0 отключает ограничение
}

// ServerConfig конфигурация сервера
type ServerConfig struct {
	Listen          string          `toml:"listen"`
	Log             LogConfig       `toml:"log"`
	DB              DBConfig        `toml:"db"`
	Auth            AuthConfig      `toml:"auth"`
	RateLimit       RateLimitConfig `toml:"rate_limit"`
	ShutdownTimeout time.Duration   `toml:"shutdown_timeout"`
}

// DefaultClientConfig значения по умолчанию для клиента
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: "http://localhost:8080",
		DBPath:    "fitsync-client.db",
		Log:       LogConfig{Level: "info", Format: "auto"},
		Sync: SyncConfig{
			Debounce:      2 * time.Second,
			MaxRetries:    5,
			ReplayTimeout: 15 * time.Second,
			PushTimeout:   15 * time.Second,
			PollInterval:  30 * time.Second,
		},
	}
}

// DefaultServerConfig значения по умолчанию для сервера
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Listen: ":8080",
		Log:    LogConfig{Level: "info", Format: "auto"},
		DB:     DBConfig{Driver: DriverSQLite, DSN: "fitsync.db"},
		Auth:   AuthConfig{TokenTTL: 24 * time.Hour},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   time.Minute,
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"
)

// minJWTSecretLen минимальная длина ключа подписи
const minJWTSecretLen = 32

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json", "auto"}
	validDrivers    = []string{DriverSQLite, DriverPostgres}
)

// Validate проверяет конфигурацию клиента и возвращает все найденные ошибки
func (c *ClientConfig) Validate() error {
	var errs []error

	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("server_url: must be an http(s) URL, got %q", c.ServerURL))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path: must not be empty"))
	}
	errs = append(errs, c.Log.validate()...)

	errs = append(errs, positive("sync.debounce", c.Sync.Debounce)...)
	errs = append(errs, positive("sync.replay_timeout", c.Sync.ReplayTimeout)...)
	errs = append(errs, positive("sync.push_timeout", c.Sync.PushTimeout)...)
	errs = append(errs, positive("sync.poll_interval", c.Sync.PollInterval)...)
	if c.Sync.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("sync.max_retries: must be at least 1, got %d", c.Sync.MaxRetries))
	}

	return errors.Join(errs...)
}

// Validate проверяет конфигурацию сервера
func (c *ServerConfig) Validate() error {
	var errs []error

	if c.Listen == "" {
		errs = append(errs, errors.New("listen: must not be empty"))
	}
	errs = append(errs, c.Log.validate()...)

	if !slices.Contains(validDrivers, c.DB.Driver) {
		errs = append(errs, fmt.Errorf("db.driver: must be one of %v, got %q", validDrivers, c.DB.Driver))
	}
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db.dsn: must not be empty"))
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		errs = append(errs, fmt.Errorf("auth.jwt_secret: must be at least %d bytes (set %s)", minJWTSecretLen, EnvJWTSecret))
	}
	errs = append(errs, positive("auth.token_ttl", c.Auth.TokenTTL)...)
	if c.RateLimit.Requests < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests: must not be negative, got %d", c.RateLimit.Requests))
	}
	if c.RateLimit.Requests > 0 {
		errs = append(errs, positive("rate_limit.window", c.RateLimit.Window)...)
	}
	errs = append(errs, positive("shutdown_timeout", c.ShutdownTimeout)...)

	return errors.Join(errs...)
}

func (l LogConfig) validate() []error {
	var errs []error
	if !slices.Contains(validLogLevels, l.Level) {
		errs = append(errs, fmt.Errorf("log.level: must be one of %v, got %q", validLogLevels, l.Level))
	}
	if !slices.Contains(validLogFormats, l.Format) {
		errs = append(errs, fmt.Errorf("log.format: must be one of %v, got %q", validLogFormats, l.Format))
	}
	return errs
}

func positive(field string, d time.Duration) []error {
	if d <= 0 {
		return []error{fmt.Errorf("%s: must be positive, got %s", field, d)}
	}
	return nil
}

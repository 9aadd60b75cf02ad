package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadClient читает конфигурацию клиента. Пустой path или отсутствующий
// файл означают только defaults и переменные окружения.
func LoadClient(path string) (*ClientConfig, error) {
	cfg := DefaultClientConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyClientEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadServer читает конфигурацию сервера
func LoadServer(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyServerEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// decodeFile накладывает TOML файл поверх defaults. Неизвестные ключи
// считаются ошибкой.
func decodeFile(path string, cfg any) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyClientEnv(cfg *ClientConfig, getenv func(string) string) {
	if v := getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

func applyServerEnv(cfg *ServerConfig, getenv func(string) string) {
	if v := getenv(EnvListen); v != "" {
		cfg.Listen = v
	}
	if v := getenv(EnvDBDriver); v != "" {
		cfg.DB.Driver = v
	}
	if v := getenv(EnvDBDSN); v != "" {
		cfg.DB.DSN = v
	}
	if v := getenv(EnvJWTSecret); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

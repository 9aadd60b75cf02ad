package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/iudanet/fitsync/internal/client/queue"
)

//go:generate moq -out health_checker_mock.go . HealthChecker

// DefaultPollInterval период проверки связи с сервером
const DefaultPollInterval = 30 * time.Second

// HealthChecker проверка доступности сервера
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Monitor опрашивает сервер и разбирает очередь при восстановлении связи
type Monitor struct {
	checker  HealthChecker
	recover  func(ctx context.Context) queue.DrainResult
	logger   *slog.Logger
	interval time.Duration
	mu       gosync.Mutex
	online   bool
}

// NewMonitor создает монитор. Первая успешная проверка считается
// восстановлением связи.
func NewMonitor(checker HealthChecker, recover func(ctx context.Context) queue.DrainResult, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		checker:  checker,
		recover:  recover,
		interval: interval,
		logger:   logger,
	}
}

// Run проверяет связь каждые interval до отмены ctx
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check выполняет одну проверку и возвращает текущее состояние связи
func (m *Monitor) Check(ctx context.Context) bool {
	err := m.checker.Health(ctx)
	online := err == nil

	m.mu.Lock()
	wasOnline := m.online
	m.online = online
	m.mu.Unlock()

	switch {
	case online && !wasOnline:
		m.logger.Info("Server reachable, replaying queued operations")
		m.recover(ctx)
	case !online && wasOnline:
		m.logger.Warn("Server unreachable, changes stay queued", slog.Any("error", err))
	case !online:
		m.logger.Debug("Server still unreachable", slog.Any("error", err))
	}
	return online
}

// Online последнее известное состояние связи
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Package scheduler coalesces bursts of local changes into one remote push
// after a quiet period.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/fitsync/internal/models"
)

const (
	// DefaultDelay тихий период перед push
	DefaultDelay = 2 * time.Second

	// DefaultPushTimeout ограничение на один push
	DefaultPushTimeout = 15 * time.Second
)

// ErrClosed возвращает Flush после Close
var ErrClosed = errors.New("scheduler is closed")

//go:generate moq -out pusher_mock.go . Pusher

// Pusher отправляет патч на сервер
type Pusher interface {
	Push(ctx context.Context, userID string, patch models.UserDataPatch) error
}

// SnapshotProvider вызывается в момент срабатывания таймера
type SnapshotProvider func() models.Snapshot

// Outcome результат одной попытки push. CapturedAt момент снятия снимка:
// все, что записано в очередь раньше, снимок уже содержит.
type Outcome struct {
	CapturedAt time.Time
	Err        error
	UserID     string
	Snapshot   models.Snapshot
}

// Options параметры планировщика
type Options struct {
	Logger      *slog.Logger
	Clock       func() time.Time
	OnResult    func(Outcome) // вызывается после каждой попытки, в горутине таймера
	Delay       time.Duration
	PushTimeout time.Duration
}

// Scheduler держит не более одного отложенного push. Экземпляр принадлежит
// одной сессии; после Close он больше ничего не отправляет.
type Scheduler struct {
	pusher   Pusher
	timer    *time.Timer
	provider SnapshotProvider
	logger   *slog.Logger
	onResult func(Outcome)
	userID   string
	opts     Options
	gen      uint64 // меняется при каждом Schedule/Cancel, устаревший таймер ничего не делает
	mu       sync.Mutex
	closed   bool
}

// New создает планировщик
func New(pusher Pusher, opts Options) *Scheduler {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.PushTimeout <= 0 {
		opts.PushTimeout = DefaultPushTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Scheduler{
		pusher:   pusher,
		logger:   opts.Logger,
		onResult: opts.OnResult,
		opts:     opts,
	}
}

// Schedule (пере)запускает таймер. Будет использован только последний provider;
// вызов для другого пользователя заменяет отложенный push целиком.
func (s *Scheduler) Schedule(userID string, provider SnapshotProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.stopLocked()
	s.gen++
	gen := s.gen
	s.userID = userID
	s.provider = provider
	s.timer = time.AfterFunc(s.opts.Delay, func() {
		s.fire(gen)
	})
}

// Cancel сбрасывает отложенный push, не выполняя его. Уже идущий push
// не прерывается.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.gen++
	s.provider = nil
	s.userID = ""
}

// Pending true, если есть отложенный push
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider != nil
}

// Flush выполняет отложенный push немедленно и возвращает его ошибку.
// Без отложенного push ничего не делает.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	userID, provider, ok := s.takeLocked()
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return s.push(ctx, userID, provider)
}

// Close отменяет отложенный push и запрещает новые
func (s *Scheduler) Close() {
	s.Cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	// Таймер мог сработать одновременно со Schedule/Cancel
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	userID, provider, ok := s.takeLocked()
	s.mu.Unlock()

	if !ok {
		return
	}

	_ = s.push(context.Background(), userID, provider)
}

func (s *Scheduler) push(ctx context.Context, userID string, provider SnapshotProvider) error {
	capturedAt := s.opts.Clock()
	snapshot := provider()

	ctx, cancel := context.WithTimeout(ctx, s.opts.PushTimeout)
	defer cancel()

	err := s.pusher.Push(ctx, userID, snapshot.Patch())
	if err != nil {
		s.logger.Warn("scheduled push failed", slog.String("user_id", userID), slog.Any("error", err))
	} else {
		s.logger.Debug("scheduled push completed", slog.String("user_id", userID))
	}

	if s.onResult != nil {
		s.onResult(Outcome{UserID: userID, Snapshot: snapshot, CapturedAt: capturedAt, Err: err})
	}
	return err
}

// takeLocked забирает отложенный push; вызывать под s.mu
func (s *Scheduler) takeLocked() (string, SnapshotProvider, bool) {
	if s.provider == nil {
		return "", nil, false
	}
	s.stopLocked()
	s.gen++
	userID, provider := s.userID, s.provider
	s.userID, s.provider = "", nil
	return userID, provider, true
}

func (s *Scheduler) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

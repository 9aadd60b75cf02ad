// Package sync wires the local stores, the debounced scheduler, the durable
// queue and session hydration into one client session lifecycle.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	gosync "sync"
	"time"

	"github.com/iudanet/fitsync/internal/client/hydration"
	"github.com/iudanet/fitsync/internal/client/queue"
	"github.com/iudanet/fitsync/internal/client/scheduler"
	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/client/store"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
)

//go:generate moq -out remote_mock.go . Remote

// ErrNoSession операция требует активной сессии
var ErrNoSession = errors.New("no active session")

// Remote серверная сторона синхронизации (remote.Client)
type Remote interface {
	Push(ctx context.Context, userID string, patch models.UserDataPatch) error
	Pull(ctx context.Context, userID string) (*models.UserData, error)
}

// Config параметры сессии синхронизации
type Config struct {
	Debounce           time.Duration
	PushTimeout        time.Duration
	ClearQueueOnLogout bool // удалять операции пользователя из очереди при logout
}

// Deps зависимости сервиса
type Deps struct {
	Remote    Remote
	Queue     *queue.Queue
	Workouts  *store.WorkoutStore
	Nutrition *store.NutritionStore
	Metadata  storage.MetadataStorage
}

// Service управляет сессией синхронизации одного пользователя
type Service struct {
	remote      Remote
	queue       *queue.Queue
	workouts    *store.WorkoutStore
	nutrition   *store.NutritionStore
	metadata    storage.MetadataStorage
	hydrator    *hydration.Hydrator
	sched       *scheduler.Scheduler
	logger      *slog.Logger
	now         func() time.Time
	userID      string
	unsubscribe []func()
	cfg         Config
	mu          gosync.Mutex
}

// NewService creates a new sync service
func NewService(deps Deps, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		remote:    deps.Remote,
		queue:     deps.Queue,
		workouts:  deps.Workouts,
		nutrition: deps.Nutrition,
		metadata:  deps.Metadata,
		hydrator:  hydration.New(deps.Remote, deps.Workouts, deps.Nutrition, logger),
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// OnLogin начинает сессию: гидрация, подписка на сторы, разбор очереди.
// Ошибки гидрации не блокируют вход.
func (s *Service) OnLogin(ctx context.Context, userID string) hydration.Result {
	s.logger.Info("Starting sync session", slog.String("user_id", userID))

	s.mu.Lock()
	s.detachLocked()
	s.userID = userID
	s.mu.Unlock()

	// Гидрация до подписки: данные с сервера не должны вызывать push обратно
	res, err := s.hydrator.Hydrate(ctx, userID)
	if err != nil {
		s.logger.Warn("Session continues with local data only", slog.Any("error", err))
	}

	s.attach(userID)

	drain := s.Recover(ctx)
	s.logger.Info("Sync session started",
		slog.String("user_id", userID),
		slog.Int("hydrated", res.Added()),
		slog.Int("replayed", drain.Success),
		slog.Int("deferred", drain.Deferred))
	return res
}

// Resume продолжает уже установленную сессию без гидрации (новый процесс CLI)
func (s *Service) Resume(userID string) {
	s.mu.Lock()
	s.detachLocked()
	s.userID = userID
	s.mu.Unlock()

	s.attach(userID)
}

// OnLogout завершает сессию: отложенный push отменяется, сторы очищаются.
// Очередь сохраняется, если не включен ClearQueueOnLogout.
func (s *Service) OnLogout(ctx context.Context) error {
	s.mu.Lock()
	userID := s.userID
	s.detachLocked()
	s.userID = ""
	s.mu.Unlock()

	s.hydrator.Reset()

	var errs []error
	if err := s.workouts.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear workouts: %w", err))
	}
	if err := s.nutrition.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to clear nutrition: %w", err))
	}

	if s.cfg.ClearQueueOnLogout && userID != "" {
		removed, err := s.queue.ClearUser(ctx, userID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to clear queue: %w", err))
		}
		s.logger.Info("Queued operations discarded on logout", slog.Int("count", removed))
	}

	s.logger.Info("Sync session closed", slog.String("user_id", userID))
	return errors.Join(errs...)
}

// OnStoreChange передает изменение планировщику. Изменения чужой или
// завершенной сессии игнорируются.
func (s *Service) OnStoreChange(userID string, provider scheduler.SnapshotProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched == nil || userID != s.userID {
		s.logger.Debug("Ignoring store change outside of session", slog.String("user_id", userID))
		return
	}
	s.sched.Schedule(userID, provider)
}

// Recover разбирает очередь для текущего пользователя (восстановление связи)
func (s *Service) Recover(ctx context.Context) queue.DrainResult {
	userID := s.UserID()
	if userID == "" {
		return queue.DrainResult{}
	}

	res := s.queue.Drain(ctx, userID, s.replayers())
	if res.Success > 0 {
		s.markPushed(ctx, userID)
	}
	if res != (queue.DrainResult{}) {
		s.logger.Info("Queue drained",
			slog.Int("success", res.Success),
			slog.Int("failed", res.Failed),
			slog.Int("skipped", res.Skipped),
			slog.Int("deferred", res.Deferred))
	}
	return res
}

// SyncNow разбирает очередь и сразу отправляет полный снимок
func (s *Service) SyncNow(ctx context.Context) (queue.DrainResult, error) {
	s.mu.Lock()
	sched, userID := s.sched, s.userID
	s.mu.Unlock()
	if sched == nil {
		return queue.DrainResult{}, ErrNoSession
	}

	res := s.Recover(ctx)
	sched.Schedule(userID, s.Snapshot)
	return res, sched.Flush(ctx)
}

// Close отправляет отложенный push перед выходом и закрывает сессию
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	sched := s.sched
	s.mu.Unlock()
	if sched == nil {
		return nil
	}

	err := sched.Flush(ctx)

	s.mu.Lock()
	s.detachLocked()
	s.mu.Unlock()

	if err != nil && !errors.Is(err, scheduler.ErrClosed) {
		return err
	}
	return nil
}

// Status состояние очереди
func (s *Service) Status() queue.Status {
	return s.queue.Status()
}

// LastPush время последнего успешного push текущего пользователя
func (s *Service) LastPush(ctx context.Context) (time.Time, error) {
	userID := s.UserID()
	if userID == "" {
		return time.Time{}, ErrNoSession
	}
	return s.metadata.GetLastPush(ctx, userID)
}

// UserID пользователь активной сессии
func (s *Service) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Snapshot полный снимок локальных сторов
func (s *Service) Snapshot() models.Snapshot {
	ws := s.workouts.State()
	ns := s.nutrition.State()
	return models.Snapshot{
		Workouts:        models.CloneSessions(ws.Sessions),
		CustomExercises: slices.Clone(ws.CustomExercises),
		Nutrition:       ns.Log().Clone(),
		BodyWeight:      slices.Clone(ns.BodyWeight),
	}
}

// attach создает планировщик и подписывается на оба стора
func (s *Service) attach(userID string) {
	sched := scheduler.New(s.remote, scheduler.Options{
		Delay:       s.cfg.Debounce,
		PushTimeout: s.cfg.PushTimeout,
		Logger:      s.logger,
		Clock:       s.now,
		OnResult:    s.handleOutcome,
	})

	onWorkouts := s.workouts.Subscribe(func(store.WorkoutState) {
		s.OnStoreChange(userID, s.Snapshot)
	})
	onNutrition := s.nutrition.Subscribe(func(store.NutritionState) {
		s.OnStoreChange(userID, s.Snapshot)
	})

	s.mu.Lock()
	s.sched = sched
	s.unsubscribe = []func(){onWorkouts, onNutrition}
	s.mu.Unlock()
}

// detachLocked отменяет отложенный push и снимает подписки; вызывать под s.mu
func (s *Service) detachLocked() {
	if s.sched != nil {
		s.sched.Close()
		s.sched = nil
	}
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil
}

// handleOutcome неудачный push уходит в очередь, если ошибку имеет смысл повторить.
// Снимок содержит все, что было поставлено в очередь до его снятия, поэтому
// эти операции удаляются: и после успешного push, и перед постановкой нового снимка.
func (s *Service) handleOutcome(out scheduler.Outcome) {
	ctx := context.Background()

	if out.Err == nil {
		s.markPushed(ctx, out.UserID)
		s.supersede(ctx, out)
		return
	}

	kind := syncerr.KindOf(out.Err)
	if !kind.Retryable() {
		s.logger.Error("Push rejected, snapshot dropped",
			slog.String("user_id", out.UserID),
			slog.String("kind", kind.String()),
			slog.Any("error", out.Err))
		return
	}

	// Сессия могла закончиться, пока шел запрос
	if s.UserID() != out.UserID {
		s.logger.Debug("Discarding push result of a closed session", slog.String("user_id", out.UserID))
		return
	}

	if err := out.Snapshot.Validate(); err != nil {
		s.logger.Error("Failed to queue snapshot", slog.Any("error", err))
		return
	}
	s.supersede(ctx, out)

	op, err := s.queue.Enqueue(ctx, out.UserID, out.Snapshot)
	if err != nil {
		s.logger.Error("Failed to queue snapshot", slog.Any("error", err))
		return
	}
	s.logger.Info("Push failed, snapshot queued for retry",
		slog.String("operation_id", op.ID),
		slog.String("kind", kind.String()))
}

func (s *Service) supersede(ctx context.Context, out scheduler.Outcome) {
	n, err := s.queue.Supersede(ctx, out.UserID, out.CapturedAt)
	if err != nil {
		s.logger.Warn("Failed to drop superseded operations", slog.Any("error", err))
	}
	if n > 0 {
		s.logger.Info("Queued operations superseded by newer snapshot",
			slog.String("user_id", out.UserID),
			slog.Int("count", n))
	}
}

func (s *Service) replayers() queue.Replayers {
	replay := func(ctx context.Context, userID string, payload models.Payload) error {
		return s.remote.Push(ctx, userID, payload.Patch())
	}
	replayers := make(queue.Replayers, len(models.OperationKinds))
	for _, kind := range models.OperationKinds {
		replayers[kind] = replay
	}
	return replayers
}

func (s *Service) markPushed(ctx context.Context, userID string) {
	if err := s.metadata.SaveLastPush(ctx, userID, s.now()); err != nil {
		s.logger.Warn("Failed to save last push time", slog.Any("error", err))
	}
}

// Package queue implements the durable queue of pending remote writes.
//
// Every accepted write is persisted before Enqueue returns (persistence
// failures are logged, the operation still lives in memory for this process)
// and is replayed by Drain until it succeeds or reaches the retry ceiling.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
)

const (
	// DefaultMaxRetries операция с таким числом неудачных попыток удаляется из очереди
	DefaultMaxRetries = 5

	// DefaultReplayTimeout ограничение на одну попытку отправки
	DefaultReplayTimeout = 15 * time.Second
)

// Replayer отправляет payload операции на сервер от имени userID
type Replayer func(ctx context.Context, userID string, payload models.Payload) error

// Replayers сопоставляет тип операции с функцией отправки
type Replayers map[models.OperationKind]Replayer

// DrainResult итоги одного прохода Drain
type DrainResult struct {
	Success  int // отправлено и удалено
	Failed   int // не отправлено, осталось в очереди с retry+1
	Skipped  int // удалено без отправки: лимит попыток, неизвестный тип, постоянная ошибка
	Deferred int // принадлежит другому пользователю, не трогали
}

// Status состояние очереди для индикатора "sync pending"
type Status struct {
	OldestEnqueuedAt    *time.Time
	LastPersistError    error
	Length              int
	HasFailedOperations bool
}

// Option настраивает Queue
type Option func(*Queue)

// WithMaxRetries задает потолок попыток
func WithMaxRetries(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxRetries = n
		}
	}
}

// WithReplayTimeout задает таймаут одной попытки отправки
func WithReplayTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.replayTimeout = d
		}
	}
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// WithIDFunc подменяет генератор идентификаторов операций
func WithIDFunc(newID func() string) Option {
	return func(q *Queue) {
		q.newID = newID
	}
}

// Queue durable очередь операций синхронизации
type Queue struct {
	storage       storage.QueueStorage
	persistErr    error
	logger        *slog.Logger
	now           func() time.Time
	newID         func() string
	ops           []models.QueuedOperation
	maxRetries    int
	replayTimeout time.Duration
	mu            sync.Mutex
	drainMu       sync.Mutex
}

// New загружает очередь из хранилища. Ошибка загрузки не фатальна:
// очередь стартует пустой, ошибка видна в Status.
func New(ctx context.Context, st storage.QueueStorage, logger *slog.Logger, opts ...Option) *Queue {
	q := &Queue{
		storage:       st,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
		maxRetries:    DefaultMaxRetries,
		replayTimeout: DefaultReplayTimeout,
	}
	for _, opt := range opts {
		opt(q)
	}

	ops, err := st.LoadQueue(ctx)
	if err != nil {
		q.logger.Warn("failed to load sync queue, starting empty", slog.Any("error", err))
		q.persistErr = syncerr.New(syncerr.KindStorage, "load queue", err)
		return q
	}

	// Операции на потолке попыток или неизвестного типа выбрасываем сразу
	kept := make([]models.QueuedOperation, 0, len(ops))
	for _, op := range ops {
		switch {
		case op.RetryCount >= q.maxRetries:
			q.logEviction(op, "retry limit reached")
		case !op.Kind.Valid():
			q.logEviction(op, "unknown operation kind")
		default:
			kept = append(kept, op)
		}
	}
	q.ops = kept

	if len(kept) != len(ops) {
		q.mu.Lock()
		_ = q.persistLocked(ctx)
		q.mu.Unlock()
	}

	return q
}

// Enqueue проверяет payload и ставит операцию в конец очереди.
// Ошибка возвращается только если payload отклонен; сбой записи в хранилище
// логируется и отражается в Status.LastPersistError.
func (q *Queue) Enqueue(ctx context.Context, userID string, payload models.Payload) (models.QueuedOperation, error) {
	if payload == nil {
		return models.QueuedOperation{}, syncerr.New(syncerr.KindInvalid, "enqueue", models.ErrInvalidPayload)
	}
	kind := payload.Kind()
	if !kind.Valid() {
		return models.QueuedOperation{}, syncerr.New(syncerr.KindInvalid, "enqueue",
			fmt.Errorf("%w: %q", models.ErrUnknownOperationKind, kind))
	}
	if err := payload.Validate(); err != nil {
		return models.QueuedOperation{}, syncerr.New(syncerr.KindInvalid, "enqueue", err)
	}

	raw, err := models.EncodePayload(payload)
	if err != nil {
		return models.QueuedOperation{}, syncerr.New(syncerr.KindInvalid, "enqueue", err)
	}

	op := models.QueuedOperation{
		ID:         q.newID(),
		UserID:     userID,
		Kind:       kind,
		Payload:    raw,
		EnqueuedAt: q.now(),
	}

	q.mu.Lock()
	q.ops = append(slices.Clip(q.ops), op)
	_ = q.persistLocked(ctx)
	q.mu.Unlock()

	q.logger.Debug("operation enqueued",
		slog.String("id", op.ID),
		slog.String("kind", string(op.Kind)),
		slog.String("user_id", userID))

	return op, nil
}

// Remove удаляет операцию. Отсутствующий id не ошибка.
func (q *Queue) Remove(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := q.indexLocked(id)
	if idx < 0 {
		return nil
	}
	q.ops = slices.Delete(slices.Clone(q.ops), idx, idx+1)
	return q.persistLocked(ctx)
}

// IncrementRetry увеличивает счетчик попыток. Отсутствующий id не ошибка.
func (q *Queue) IncrementRetry(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := q.indexLocked(id)
	if idx < 0 {
		return nil
	}
	ops := slices.Clone(q.ops)
	ops[idx].RetryCount++
	q.ops = ops
	return q.persistLocked(ctx)
}

// Drain один раз проходит по операциям в порядке постановки. Операции
// пользователя userID (или все, если userID пустой) отправляются через
// replayers; операции других пользователей пропускаются как Deferred.
// Drain никогда не возвращает ошибку: итог только в счетчиках.
func (q *Queue) Drain(ctx context.Context, userID string, replayers Replayers) DrainResult {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	var res DrainResult
	for _, op := range q.Operations() {
		if ctx.Err() != nil {
			break
		}

		if userID != "" && op.UserID != "" && op.UserID != userID {
			res.Deferred++
			continue
		}

		// Операцию могли вытеснить во время прохода (Supersede)
		if !q.contains(op.ID) {
			continue
		}

		if op.RetryCount >= q.maxRetries {
			q.evict(ctx, op, "retry limit reached")
			res.Skipped++
			continue
		}

		replay, ok := replayers[op.Kind]
		if !ok {
			q.evict(ctx, op, "unknown operation kind")
			res.Skipped++
			continue
		}

		payload, err := models.DecodePayload(op.Kind, op.Payload)
		if err != nil {
			q.evict(ctx, op, err.Error())
			res.Skipped++
			continue
		}

		err = q.replay(ctx, replay, op, payload)
		if err == nil {
			if rmErr := q.Remove(ctx, op.ID); rmErr != nil {
				q.logger.Warn("failed to remove replayed operation", slog.String("id", op.ID), slog.Any("error", rmErr))
			}
			res.Success++
			continue
		}

		// Отмена всего прохода не считается неудачной попыткой
		if ctx.Err() != nil {
			break
		}

		if !syncerr.KindOf(err).Retryable() {
			q.evict(ctx, op, "permanent failure: "+err.Error())
			res.Skipped++
			continue
		}

		if incErr := q.IncrementRetry(ctx, op.ID); incErr != nil {
			q.logger.Warn("failed to record retry", slog.String("id", op.ID), slog.Any("error", incErr))
		}
		q.logger.Info("queued operation replay failed",
			slog.String("id", op.ID),
			slog.String("kind", string(op.Kind)),
			slog.Int("retry_count", op.RetryCount+1),
			slog.Any("error", err))
		res.Failed++
	}

	return res
}

// replay вызывает fn с таймаутом. Если fn не уважает контекст, Drain
// все равно продолжит по истечении таймаута.
func (q *Queue) replay(ctx context.Context, fn Replayer, op models.QueuedOperation, payload models.Payload) error {
	rctx, cancel := context.WithTimeout(ctx, q.replayTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("replay of %s panicked: %v", op.ID, r)
			}
		}()
		done <- fn(rctx, op.UserID, payload)
	}()

	select {
	case err := <-done:
		return err
	case <-rctx.Done():
		return syncerr.New(syncerr.KindTransient, "replay", rctx.Err())
	}
}

// Status возвращает длину очереди, самую старую операцию и наличие неудачных попыток
func (q *Queue) Status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	st := Status{Length: len(q.ops), LastPersistError: q.persistErr}
	for _, op := range q.ops {
		if st.OldestEnqueuedAt == nil || op.EnqueuedAt.Before(*st.OldestEnqueuedAt) {
			at := op.EnqueuedAt
			st.OldestEnqueuedAt = &at
		}
		if op.RetryCount > 0 {
			st.HasFailedOperations = true
		}
	}
	return st
}

// Operations копия очереди в порядке постановки
func (q *Queue) Operations() []models.QueuedOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.ops)
}

// Len длина очереди
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Clear безусловно очищает очередь
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.ops = nil
	return q.persistLocked(ctx)
}

// ClearUser удаляет операции одного пользователя и возвращает их число
func (q *Queue) ClearUser(ctx context.Context, userID string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(q.ops), func(op models.QueuedOperation) bool {
		return op.UserID == userID
	})
	removed := len(q.ops) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	q.ops = kept
	return removed, q.persistLocked(ctx)
}

// Supersede удаляет операции userID, поставленные не позже at. Вызывается,
// когда снимок состояния на момент at уже отправлен или сам ставится в
// очередь: старые операции содержат более раннее состояние и при повторе
// откатили бы сервер назад.
func (q *Queue) Supersede(ctx context.Context, userID string, at time.Time) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := slices.DeleteFunc(slices.Clone(q.ops), func(op models.QueuedOperation) bool {
		return op.UserID == userID && !op.EnqueuedAt.After(at)
	})
	removed := len(q.ops) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	q.ops = kept
	q.logger.Debug("superseded queued operations",
		slog.String("user_id", userID),
		slog.Int("count", removed))
	return removed, q.persistLocked(ctx)
}

func (q *Queue) contains(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexLocked(id) >= 0
}

func (q *Queue) evict(ctx context.Context, op models.QueuedOperation, reason string) {
	q.logEviction(op, reason)
	if err := q.Remove(ctx, op.ID); err != nil {
		q.logger.Warn("failed to evict operation", slog.String("id", op.ID), slog.Any("error", err))
	}
}

func (q *Queue) logEviction(op models.QueuedOperation, reason string) {
	q.logger.Warn("evicting queued operation",
		slog.String("id", op.ID),
		slog.String("kind", string(op.Kind)),
		slog.Int("retry_count", op.RetryCount),
		slog.String("reason", reason))
}

func (q *Queue) indexLocked(id string) int {
	return slices.IndexFunc(q.ops, func(op models.QueuedOperation) bool {
		return op.ID == id
	})
}

// persistLocked пишет очередь целиком; вызывать под q.mu
func (q *Queue) persistLocked(ctx context.Context) error {
	if err := q.storage.SaveQueue(ctx, slices.Clone(q.ops)); err != nil {
		q.logger.Warn("failed to persist sync queue", slog.Int("length", len(q.ops)), slog.Any("error", err))
		q.persistErr = syncerr.New(syncerr.KindStorage, "persist queue", err)
		return q.persistErr
	}
	q.persistErr = nil
	return nil
}

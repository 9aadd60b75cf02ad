// Package store holds the in-process copy of the user's workout and
// nutrition data. Every mutation replaces the affected collection, persists
// the whole state as one named blob and notifies subscribers synchronously.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/fitsync/internal/client/storage"
)

// ErrNotFound запись с таким id отсутствует
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID запись с таким id уже есть
var ErrDuplicateID = errors.New("record with this id already exists")

// stateVersion текущая версия формата блоба
const stateVersion = 1

// envelope формат блоба в хранилище: { "state": {...}, "version": N }
type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// observable общее ядро сторов: состояние, подписчики, сохранение
type observable[S any] struct {
	storage    storage.StateStorage
	persistErr error
	logger     *slog.Logger
	repair     func(S, *slog.Logger) (S, int)
	subs       map[int]func(S)
	state      S
	initial    S
	name       string
	nextSub    int
	mu         sync.RWMutex
}

// newObservable восстанавливает состояние из st. repair убирает из
// восстановленного состояния невалидные записи и возвращает их число.
func newObservable[S any](ctx context.Context, name string, initial S, st storage.StateStorage, logger *slog.Logger, repair func(S, *slog.Logger) (S, int)) *observable[S] {
	o := &observable[S]{
		storage: st,
		logger:  logger.With(slog.String("store", name)),
		repair:  repair,
		subs:    make(map[int]func(S)),
		state:   initial,
		initial: initial,
		name:    name,
	}
	if err := o.load(ctx); err != nil {
		o.logger.Warn("failed to restore persisted state, starting empty", slog.Any("error", err))
		o.persistErr = err
		return o
	}

	if o.repair != nil {
		state, dropped := o.repair(o.state, o.logger)
		if dropped > 0 {
			o.logger.Warn("invalid records removed from persisted state", slog.Int("count", dropped))
			o.mu.Lock()
			o.state = state
			o.persistLocked(ctx)
			o.mu.Unlock()
		}
	}
	return o
}

// load восстанавливает состояние; даты восстанавливаются как time.Time
func (o *observable[S]) load(ctx context.Context) error {
	data, err := o.storage.LoadState(ctx, o.name)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", o.name, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode %s envelope: %w", o.name, err)
	}
	if env.Version > stateVersion {
		return fmt.Errorf("%s was written by a newer client (version %d)", o.name, env.Version)
	}

	var state S
	if len(env.State) > 0 {
		if err := json.Unmarshal(env.State, &state); err != nil {
			return fmt.Errorf("failed to decode %s state: %w", o.name, err)
		}
	}
	o.state = state
	return nil
}

func (o *observable[S]) get() S {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// update применяет fn, сохраняет и уведомляет подписчиков. fn должна вернуть
// новое состояние, не изменяя старое. Ошибка fn отменяет изменение.
func (o *observable[S]) update(ctx context.Context, fn func(S) (S, error)) error {
	o.mu.Lock()
	next, err := fn(o.state)
	if err != nil {
		o.mu.Unlock()
		return err
	}
	o.state = next
	o.persistLocked(ctx)
	subs := o.subscribersLocked()
	o.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// reset возвращает начальное состояние и удаляет блоб
func (o *observable[S]) reset(ctx context.Context) error {
	o.mu.Lock()
	o.state = o.initial
	err := o.storage.DeleteState(ctx, o.name)
	if err != nil {
		o.logger.Warn("failed to delete persisted state", slog.Any("error", err))
		o.persistErr = err
	}
	subs := o.subscribersLocked()
	state := o.state
	o.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
	return err
}

func (o *observable[S]) subscribe(fn func(S)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

func (o *observable[S]) persistError() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.persistErr
}

func (o *observable[S]) subscribersLocked() []func(S) {
	subs := make([]func(S), 0, len(o.subs))
	for i := 0; i < o.nextSub; i++ {
		if fn, ok := o.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

// persistLocked сериализует состояние целиком. Ошибка только логируется:
// действие пользователя уже выполнено в памяти.
func (o *observable[S]) persistLocked(ctx context.Context) {
	state, err := json.Marshal(o.state)
	if err == nil {
		var data []byte
		data, err = json.Marshal(envelope{State: state, Version: stateVersion})
		if err == nil {
			err = o.storage.SaveState(ctx, o.name, data)
		}
	}
	if err != nil {
		o.logger.Warn("failed to persist state", slog.Any("error", err))
		o.persistErr = err
		return
	}
	o.persistErr = nil
}

package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/client/queue"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/client/store"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// flakyRemote сервер, доступность которого переключается в тесте
type flakyRemote struct {
	*RemoteMock
	online atomic.Bool
}

func newFlakyRemote(pushErr error) *flakyRemote {
	r := &flakyRemote{}
	r.RemoteMock = &RemoteMock{
		PushFunc: func(ctx context.Context, userID string, patch models.UserDataPatch) error {
			if !r.online.Load() {
				return pushErr
			}
			return nil
		},
		PullFunc: func(ctx context.Context, userID string) (*models.UserData, error) {
			if !r.online.Load() {
				return nil, syncerr.New(syncerr.KindTransient, "pull", errors.New("offline"))
			}
			return nil, nil
		},
	}
	return r
}

type testEnv struct {
	service   *Service
	queue     *queue.Queue
	workouts  *store.WorkoutStore
	nutrition *store.NutritionStore
}

func newTestEnv(t *testing.T, remote Remote, cfg Config) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := setupTestLogger()

	st, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	env := &testEnv{
		queue:     queue.New(ctx, st, logger),
		workouts:  store.NewWorkoutStore(ctx, st, logger),
		nutrition: store.NewNutritionStore(ctx, st, logger),
	}
	env.service = NewService(Deps{
		Remote:    remote,
		Queue:     env.queue,
		Workouts:  env.workouts,
		Nutrition: env.nutrition,
		Metadata:  st,
	}, cfg, logger)
	t.Cleanup(func() { _ = env.service.Close(context.Background()) })
	return env
}

func TestEndToEnd_OfflineWorkoutReplayedOnReconnect(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(syncerr.New(syncerr.KindTransient, "push", errors.New("connection refused")))
	env := newTestEnv(t, remote, Config{Debounce: 10 * time.Millisecond})

	env.service.OnLogin(ctx, "user-1")

	_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: "Offline legs"})
	require.NoError(t, err)

	// Отложенный push падает и снимок оказывается в очереди
	require.Eventually(t, func() bool { return env.queue.Len() == 1 }, time.Second, 5*time.Millisecond)
	ops := env.queue.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, 0, ops[0].RetryCount)
	assert.Equal(t, models.OpSnapshot, ops[0].Kind)
	assert.Equal(t, "user-1", ops[0].UserID)

	health := &HealthCheckerMock{
		HealthFunc: func(ctx context.Context) error {
			if !remote.online.Load() {
				return errors.New("offline")
			}
			return nil
		},
	}
	monitor := NewMonitor(health, env.service.Recover, time.Minute, setupTestLogger())
	assert.False(t, monitor.Check(ctx))
	assert.Equal(t, 1, env.queue.Len())

	remote.online.Store(true)
	assert.True(t, monitor.Check(ctx))

	assert.Equal(t, 0, env.queue.Len())
	lastPush, err := env.service.LastPush(ctx)
	require.NoError(t, err)
	assert.False(t, lastPush.IsZero())

	// Повторно отправленный снимок содержит тренировку
	calls := remote.PushCalls()
	last := calls[len(calls)-1]
	require.NotNil(t, last.Patch.Workouts)
	require.Len(t, *last.Patch.Workouts, 1)
	assert.Equal(t, "Offline legs", (*last.Patch.Workouts)[0].Name)
}

func TestOnLogin_HydrationDoesNotSchedulePush(t *testing.T) {
	ctx := context.Background()
	remote := &RemoteMock{
		PushFunc: func(ctx context.Context, userID string, patch models.UserDataPatch) error { return nil },
		PullFunc: func(ctx context.Context, userID string) (*models.UserData, error) {
			return &models.UserData{
				UserID:   userID,
				Workouts: []models.WorkoutSession{{ID: "w1", Name: "Remote", StartedAt: time.Now()}},
			}, nil
		},
	}
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	res := env.service.OnLogin(ctx, "user-1")

	assert.Equal(t, 1, res.Sessions)
	assert.Len(t, env.workouts.Sessions(), 1)
	assert.False(t, env.service.sched.Pending())

	// локальное изменение после гидрации планирует push
	_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: "Local"})
	require.NoError(t, err)
	assert.True(t, env.service.sched.Pending())
}

func TestOnLogout(t *testing.T) {
	tests := []struct {
		name       string
		clearQueue bool
		wantQueue  int
	}{
		{name: "queue retained", clearQueue: false, wantQueue: 1},
		{name: "queue cleared", clearQueue: true, wantQueue: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			remote := newFlakyRemote(errors.New("unused"))
			remote.online.Store(true)
			env := newTestEnv(t, remote, Config{Debounce: 20 * time.Millisecond, ClearQueueOnLogout: tt.clearQueue})

			env.service.OnLogin(ctx, "user-1")
			_, err := env.queue.Enqueue(ctx, "user-1", models.WorkoutPayload{})
			require.NoError(t, err)

			_, err = env.workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
			require.NoError(t, err)
			_, err = env.nutrition.AddMeal(ctx, "2024-05-03", models.MealEntry{Name: "Soup"})
			require.NoError(t, err)

			require.NoError(t, env.service.OnLogout(ctx))

			// отмененный push не выполняется
			time.Sleep(60 * time.Millisecond)
			assert.Empty(t, remote.PushCalls())

			assert.Empty(t, env.workouts.Sessions())
			assert.Empty(t, env.nutrition.State().Days)
			assert.Equal(t, tt.wantQueue, env.queue.Len())
			assert.Empty(t, env.service.UserID())
		})
	}
}

func TestOnLogout_RehydratesOnNextLogin(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(errors.New("unused"))
	remote.online.Store(true)
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	env.service.OnLogin(ctx, "user-1")
	require.NoError(t, env.service.OnLogout(ctx))
	env.service.OnLogin(ctx, "user-1")

	assert.Len(t, remote.PullCalls(), 2)
}

func TestPushFailure_Routing(t *testing.T) {
	tests := []struct {
		name      string
		kind      syncerr.Kind
		wantQueue int
	}{
		{name: "transient is queued", kind: syncerr.KindTransient, wantQueue: 1},
		{name: "unauthorized is queued", kind: syncerr.KindUnauthorized, wantQueue: 1},
		{name: "permanent is dropped", kind: syncerr.KindPermanent, wantQueue: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			remote := newFlakyRemote(syncerr.New(tt.kind, "push", errors.New("push failed")))
			env := newTestEnv(t, remote, Config{Debounce: time.Hour})

			env.service.Resume("user-1")
			_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
			require.NoError(t, err)

			_, err = env.service.SyncNow(ctx)
			require.Error(t, err)
			assert.Equal(t, tt.kind, syncerr.KindOf(err))
			assert.Equal(t, tt.wantQueue, env.queue.Len())
		})
	}
}

func TestOnStoreChange_OtherUserIgnored(t *testing.T) {
	remote := newFlakyRemote(errors.New("unused"))
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	env.service.OnStoreChange("user-1", env.service.Snapshot)
	assert.Nil(t, env.service.sched)

	env.service.Resume("user-1")
	env.service.OnStoreChange("user-2", env.service.Snapshot)
	assert.False(t, env.service.sched.Pending())

	env.service.OnStoreChange("user-1", env.service.Snapshot)
	assert.True(t, env.service.sched.Pending())
}

func TestClose_FlushesPendingPush(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(errors.New("unused"))
	remote.online.Store(true)
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	env.service.Resume("user-1")
	_, err := env.nutrition.AddBodyWeight(ctx, models.BodyWeightEntry{WeightKg: 77.7})
	require.NoError(t, err)

	require.NoError(t, env.service.Close(ctx))

	calls := remote.PushCalls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Patch.BodyWeight)
	assert.Len(t, *calls[0].Patch.BodyWeight, 1)

	// повторный Close ничего не делает
	require.NoError(t, env.service.Close(ctx))
	assert.Len(t, remote.PushCalls(), 1)
}

func TestSyncNow_NoSession(t *testing.T) {
	env := newTestEnv(t, newFlakyRemote(nil), Config{})

	_, err := env.service.SyncNow(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = env.service.LastPush(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRecover_DefersOtherUsers(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(errors.New("unused"))
	remote.online.Store(true)
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	_, err := env.queue.Enqueue(ctx, "user-2", models.BodyWeightPayload{})
	require.NoError(t, err)
	_, err = env.queue.Enqueue(ctx, "user-1", models.BodyWeightPayload{})
	require.NoError(t, err)

	env.service.Resume("user-1")
	res := env.service.Recover(ctx)

	assert.Equal(t, queue.DrainResult{Success: 1, Deferred: 1}, res)
	require.Len(t, remote.PushCalls(), 1)
	assert.Equal(t, "user-1", remote.PushCalls()[0].UserID)
	assert.Equal(t, 1, env.queue.Len())
}

func TestOnLogin_InvalidRemoteRecordsDoNotBlockQueue(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	remote := &RemoteMock{
		PushFunc: func(ctx context.Context, userID string, patch models.UserDataPatch) error {
			return syncerr.New(syncerr.KindTransient, "push", errors.New("connection refused"))
		},
		PullFunc: func(ctx context.Context, userID string) (*models.UserData, error) {
			return &models.UserData{
				UserID: userID,
				BodyWeight: []models.BodyWeightEntry{
					{ID: "zero", WeightKg: 0, RecordedAt: now},
					{ID: "ok", WeightKg: 81.2, RecordedAt: now},
				},
				Workouts: []models.WorkoutSession{{ID: "", Name: "no id", StartedAt: now}},
			}, nil
		},
	}
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	res := env.service.OnLogin(ctx, "user-1")
	assert.Equal(t, 1, res.BodyWeight)
	assert.Equal(t, 0, res.Sessions)
	require.Len(t, env.nutrition.BodyWeight(), 1)
	assert.Equal(t, "ok", env.nutrition.BodyWeight()[0].ID)

	_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: "Offline push day"})
	require.NoError(t, err)

	_, err = env.service.SyncNow(ctx)
	require.Error(t, err)
	require.Equal(t, 1, env.queue.Len())
	assert.Equal(t, models.OpSnapshot, env.queue.Operations()[0].Kind)
}

func TestSuccessfulPush_SupersedesQueuedSnapshot(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(syncerr.New(syncerr.KindTransient, "push", errors.New("connection refused")))
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	env.service.Resume("user-1")
	_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
	require.NoError(t, err)
	_, err = env.service.SyncNow(ctx)
	require.Error(t, err)
	require.Equal(t, 1, env.queue.Len())

	// Связь вернулась, новое изменение уходит раньше разбора очереди
	remote.online.Store(true)
	_, err = env.workouts.AddSession(ctx, models.WorkoutSession{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, env.service.sched.Flush(ctx))

	assert.Equal(t, 0, env.queue.Len())
	assert.Equal(t, queue.DrainResult{}, env.service.Recover(ctx))

	calls := remote.PushCalls()
	last := calls[len(calls)-1]
	require.NotNil(t, last.Patch.Workouts)
	assert.Len(t, *last.Patch.Workouts, 2)
}

func TestFailedPush_KeepsOnlyLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote(syncerr.New(syncerr.KindTransient, "push", errors.New("connection refused")))
	env := newTestEnv(t, remote, Config{Debounce: time.Hour})

	env.service.Resume("user-1")
	for _, name := range []string{"A", "B", "C"} {
		_, err := env.workouts.AddSession(ctx, models.WorkoutSession{Name: name})
		require.NoError(t, err)
		_, err = env.service.SyncNow(ctx)
		require.Error(t, err)
	}

	ops := env.queue.Operations()
	require.Len(t, ops, 1)
	payload, err := models.DecodePayload(ops[0].Kind, ops[0].Payload)
	require.NoError(t, err)
	snapshot, ok := payload.(models.Snapshot)
	require.True(t, ok)
	assert.Len(t, snapshot.Workouts, 3)

	remote.online.Store(true)
	res := env.service.Recover(ctx)
	assert.Equal(t, queue.DrainResult{Success: 1}, res)
}

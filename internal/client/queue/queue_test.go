package queue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/syncerr"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newBoltStorage(t *testing.T) *boltdb.Storage {
	t.Helper()
	st, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// memStorage QueueStorage в памяти поверх moq мока
func memStorage() *storage.QueueStorageMock {
	var (
		mu    sync.Mutex
		saved []models.QueuedOperation
	)
	return &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.QueuedOperation, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]models.QueuedOperation(nil), saved...), nil
		},
		SaveQueueFunc: func(ctx context.Context, ops []models.QueuedOperation) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append([]models.QueuedOperation(nil), ops...)
			return nil
		},
	}
}

func workoutPayload(ids ...string) models.WorkoutPayload {
	p := models.WorkoutPayload{}
	for _, id := range ids {
		p.Sessions = append(p.Sessions, models.WorkoutSession{
			ID:        id,
			Name:      "Session " + id,
			StartedAt: time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC),
		})
	}
	return p
}

func succeed(context.Context, string, models.Payload) error { return nil }

func alwaysFail(context.Context, string, models.Payload) error {
	return errors.New("network unreachable")
}

func allKinds(fn Replayer) Replayers {
	r := Replayers{}
	for _, k := range models.OperationKinds {
		r[k] = fn
	}
	return r
}

func TestEnqueueDrain_RoundTrip(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, newBoltStorage(t), setupTestLogger())

	op, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, 0, op.RetryCount)
	assert.Equal(t, models.OpWorkout, op.Kind)

	res := q.Drain(ctx, "user-1", allKinds(succeed))

	assert.Equal(t, DrainResult{Success: 1}, res)
	assert.Equal(t, 0, q.Len())
}

func TestDrain_RetryCeiling(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)

	calls := 0
	failing := allKinds(func(ctx context.Context, userID string, p models.Payload) error {
		calls++
		return errors.New("backend down")
	})

	for i := 1; i <= DefaultMaxRetries; i++ {
		res := q.Drain(ctx, "user-1", failing)
		assert.Equal(t, DrainResult{Failed: 1}, res, "drain %d", i)
		require.Equal(t, 1, q.Len())
		assert.Equal(t, i, q.Operations()[0].RetryCount)
	}

	// Потолок достигнут: операция удаляется без отправки
	res := q.Drain(ctx, "user-1", failing)
	assert.Equal(t, DrainResult{Skipped: 1}, res)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, DefaultMaxRetries, calls)

	res = q.Drain(ctx, "user-1", failing)
	assert.Equal(t, DrainResult{}, res)
	assert.Equal(t, DefaultMaxRetries, calls)
}

func TestRemove_Idempotent(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	op, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "user-1", workoutPayload("w2"))
	require.NoError(t, err)

	require.NoError(t, q.Remove(ctx, op.ID))
	before := q.Operations()

	assert.NoError(t, q.Remove(ctx, op.ID))
	assert.NoError(t, q.Remove(ctx, "never-existed"))
	assert.Equal(t, before, q.Operations())
}

func TestIncrementRetry_MissingIsNoop(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	assert.NoError(t, q.IncrementRetry(ctx, "missing"))
	assert.Equal(t, 0, q.Len())
}

func TestDrain_EnqueueOrder(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	var want []string
	for i := range 5 {
		id := fmt.Sprintf("w%d", i)
		_, err := q.Enqueue(ctx, "user-1", workoutPayload(id))
		require.NoError(t, err)
		want = append(want, id)
	}

	var got []string
	res := q.Drain(ctx, "user-1", allKinds(func(ctx context.Context, userID string, p models.Payload) error {
		got = append(got, p.(models.WorkoutPayload).Sessions[0].ID)
		return nil
	}))

	assert.Equal(t, 5, res.Success)
	assert.Equal(t, want, got)
}

func TestDrain_MissingReplayerEvicts(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", models.BodyWeightPayload{})
	require.NoError(t, err)

	res := q.Drain(ctx, "user-1", Replayers{models.OpWorkout: succeed})

	assert.Equal(t, DrainResult{Skipped: 1}, res)
	assert.Equal(t, 0, q.Len())
}

func TestDrain_PermanentFailureEvicts(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)

	res := q.Drain(ctx, "user-1", allKinds(func(context.Context, string, models.Payload) error {
		return syncerr.New(syncerr.KindPermanent, "push", errors.New("422 unprocessable"))
	}))

	assert.Equal(t, DrainResult{Skipped: 1}, res)
	assert.Equal(t, 0, q.Len())
}

func TestDrain_DefersOtherUsers(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "alice", workoutPayload("w1"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "bob", workoutPayload("w2"))
	require.NoError(t, err)

	var users []string
	res := q.Drain(ctx, "bob", allKinds(func(ctx context.Context, userID string, p models.Payload) error {
		users = append(users, userID)
		return nil
	}))

	assert.Equal(t, DrainResult{Success: 1, Deferred: 1}, res)
	assert.Equal(t, []string{"bob"}, users)
	require.Equal(t, 1, q.Len())
	assert.Equal(t, "alice", q.Operations()[0].UserID)
	assert.Equal(t, 0, q.Operations()[0].RetryCount)
}

func TestDrain_ReplayTimeout(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger(), WithReplayTimeout(20*time.Millisecond))

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)

	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	// replayer игнорирует контекст и висит
	res := q.Drain(ctx, "user-1", allKinds(func(context.Context, string, models.Payload) error {
		<-release
		return nil
	}))

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, DrainResult{Failed: 1}, res)
	assert.Equal(t, 1, q.Operations()[0].RetryCount)
}

func TestDrain_PanickingReplayerIsContained(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)

	res := q.Drain(ctx, "user-1", allKinds(func(context.Context, string, models.Payload) error {
		panic("boom")
	}))

	assert.Equal(t, DrainResult{Failed: 1}, res)
}

func TestDrain_CancelledContextKeepsRetryCount(t *testing.T) {
	q := New(context.Background(), memStorage(), setupTestLogger())
	_, err := q.Enqueue(context.Background(), "user-1", workoutPayload("w1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := q.Drain(ctx, "user-1", allKinds(alwaysFail))

	assert.Equal(t, DrainResult{}, res)
	assert.Equal(t, 0, q.Operations()[0].RetryCount)
}

func TestEnqueue_RejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()
	st := memStorage()
	q := New(ctx, st, setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("")) // без id
	require.Error(t, err)
	assert.Equal(t, syncerr.KindInvalid, syncerr.KindOf(err))
	assert.ErrorIs(t, err, models.ErrInvalidPayload)

	_, err = q.Enqueue(ctx, "user-1", nil)
	require.Error(t, err)

	assert.Equal(t, 0, q.Len())
	assert.Empty(t, st.SaveQueueCalls())
}

func TestEnqueue_PersistFailureIsNotPropagated(t *testing.T) {
	ctx := context.Background()
	st := &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.QueuedOperation, error) {
			return nil, nil
		},
		SaveQueueFunc: func(ctx context.Context, ops []models.QueuedOperation) error {
			return errors.New("disk full")
		},
	}
	q := New(ctx, st, setupTestLogger())

	op, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, 1, q.Len())

	status := q.Status()
	require.Error(t, status.LastPersistError)
	assert.Equal(t, syncerr.KindStorage, syncerr.KindOf(status.LastPersistError))

	// Операция все равно отправляется в этом процессе
	res := q.Drain(ctx, "user-1", allKinds(succeed))
	assert.Equal(t, 1, res.Success)
}

func TestEnqueue_CapturesValue(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	p := workoutPayload("w1")
	_, err := q.Enqueue(ctx, "user-1", p)
	require.NoError(t, err)

	// Изменение исходных данных после постановки в очередь
	p.Sessions[0].Name = "changed"

	var replayed models.WorkoutPayload
	q.Drain(ctx, "user-1", allKinds(func(ctx context.Context, userID string, payload models.Payload) error {
		replayed = payload.(models.WorkoutPayload)
		return nil
	}))

	require.Len(t, replayed.Sessions, 1)
	assert.Equal(t, "Session w1", replayed.Sessions[0].Name)
}

func TestEnqueue_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	seen := map[string]bool{}
	for range 200 {
		op, err := q.Enqueue(ctx, "user-1", models.BodyWeightPayload{})
		require.NoError(t, err)
		require.False(t, seen[op.ID], "duplicate id %s", op.ID)
		seen[op.ID] = true
	}
}

func TestNew_EvictsOperationsAtCeiling(t *testing.T) {
	ctx := context.Background()
	stored := []models.QueuedOperation{
		{ID: "ok", Kind: models.OpWorkout, RetryCount: DefaultMaxRetries - 1},
		{ID: "exhausted", Kind: models.OpWorkout, RetryCount: DefaultMaxRetries},
		{ID: "unknown", Kind: "calendar"},
	}
	st := &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.QueuedOperation, error) {
			return stored, nil
		},
		SaveQueueFunc: func(ctx context.Context, ops []models.QueuedOperation) error {
			return nil
		},
	}

	q := New(ctx, st, setupTestLogger())

	require.Equal(t, 1, q.Len())
	assert.Equal(t, "ok", q.Operations()[0].ID)
	require.Len(t, st.SaveQueueCalls(), 1)
	assert.Len(t, st.SaveQueueCalls()[0].Ops, 1)
}

func TestNew_LoadFailureStartsEmpty(t *testing.T) {
	st := &storage.QueueStorageMock{
		LoadQueueFunc: func(ctx context.Context) ([]models.QueuedOperation, error) {
			return nil, errors.New("corrupt blob")
		},
	}

	q := New(context.Background(), st, setupTestLogger())

	assert.Equal(t, 0, q.Len())
	assert.Error(t, q.Status().LastPersistError)
}

func TestQueue_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	st := newBoltStorage(t)

	q := New(ctx, st, setupTestLogger())
	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	q.Drain(ctx, "user-1", allKinds(alwaysFail))

	// Новый экземпляр поверх того же хранилища видит операцию и ее счетчик
	restarted := New(ctx, st, setupTestLogger())
	require.Equal(t, 1, restarted.Len())
	assert.Equal(t, 1, restarted.Operations()[0].RetryCount)

	res := restarted.Drain(ctx, "user-1", allKinds(succeed))
	assert.Equal(t, DrainResult{Success: 1}, res)
	assert.Equal(t, 0, New(ctx, st, setupTestLogger()).Len())
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	now := base
	q := New(ctx, memStorage(), setupTestLogger(), WithClock(func() time.Time { return now }))

	st := q.Status()
	assert.Equal(t, 0, st.Length)
	assert.Nil(t, st.OldestEnqueuedAt)
	assert.False(t, st.HasFailedOperations)

	first, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	now = base.Add(time.Minute)
	_, err = q.Enqueue(ctx, "user-1", workoutPayload("w2"))
	require.NoError(t, err)

	st = q.Status()
	assert.Equal(t, 2, st.Length)
	require.NotNil(t, st.OldestEnqueuedAt)
	assert.True(t, base.Equal(*st.OldestEnqueuedAt))
	assert.False(t, st.HasFailedOperations)

	require.NoError(t, q.IncrementRetry(ctx, first.ID))
	assert.True(t, q.Status().HasFailedOperations)
}

func TestClearAndClearUser(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	for _, user := range []string{"alice", "bob", "alice"} {
		_, err := q.Enqueue(ctx, user, models.BodyWeightPayload{})
		require.NoError(t, err)
	}

	n, err := q.ClearUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, q.Len())

	n, err = q.ClearUser(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, q.Clear(ctx))
	assert.Equal(t, 0, q.Len())
}

func TestSupersede(t *testing.T) {
	base := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		at        time.Time
		name      string
		user      string
		wantIDs   []string
		wantCount int
	}{
		{name: "drops older operations of the user", user: "alice", at: base.Add(time.Minute), wantCount: 2, wantIDs: []string{"bob-1", "alice-3"}},
		{name: "operation at the capture time is covered", user: "alice", at: base.Add(2 * time.Minute), wantCount: 3, wantIDs: []string{"bob-1"}},
		{name: "nothing older", user: "alice", at: base.Add(-time.Second), wantCount: 0, wantIDs: []string{"alice-1", "bob-1", "alice-2", "alice-3"}},
		{name: "other users untouched", user: "carol", at: base.Add(time.Hour), wantCount: 0, wantIDs: []string{"alice-1", "bob-1", "alice-2", "alice-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			now := base
			ids := []string{"alice-1", "bob-1", "alice-2", "alice-3"}
			next := 0
			q := New(ctx, memStorage(), setupTestLogger(),
				WithClock(func() time.Time { return now }),
				WithIDFunc(func() string { id := ids[next]; next++; return id }))

			// alice-1 и bob-1 в base, alice-2 через минуту, alice-3 через две
			for i, user := range []string{"alice", "bob", "alice", "alice"} {
				if i >= 2 {
					now = base.Add(time.Duration(i-1) * time.Minute)
				}
				_, err := q.Enqueue(ctx, user, models.BodyWeightPayload{})
				require.NoError(t, err)
			}

			n, err := q.Supersede(ctx, tt.user, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)

			var got []string
			for _, op := range q.Operations() {
				got = append(got, op.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestDrain_SkipsOperationsSupersededDuringPass(t *testing.T) {
	ctx := context.Background()
	q := New(ctx, memStorage(), setupTestLogger())

	_, err := q.Enqueue(ctx, "user-1", workoutPayload("w1"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, "user-1", workoutPayload("w2"))
	require.NoError(t, err)

	var replayed int
	res := q.Drain(ctx, "user-1", allKinds(func(ctx context.Context, userID string, p models.Payload) error {
		replayed++
		// Пока идет первая отправка, более новый снимок уже ушел на сервер
		_, err := q.Supersede(ctx, userID, time.Now())
		return err
	}))

	assert.Equal(t, 1, replayed)
	assert.Equal(t, DrainResult{Success: 1}, res)
	assert.Equal(t, 0, q.Len())
}

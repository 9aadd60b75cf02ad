package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/models"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newBoltStorage(t *testing.T) *boltdb.Storage {
	t.Helper()
	st, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestPersistence_DateRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newBoltStorage(t)
	loc := time.FixedZone("UTC+3", 3*60*60)
	started := time.Date(2024, time.March, 9, 18, 45, 30, 0, loc)
	finished := started.Add(75 * time.Minute)
	weighed := time.Date(2024, time.March, 10, 7, 5, 0, 0, loc)

	workouts := NewWorkoutStore(ctx, st, setupTestLogger())
	_, err := workouts.AddSession(ctx, models.WorkoutSession{ID: "w1", Name: "Legs", StartedAt: started, FinishedAt: &finished})
	require.NoError(t, err)

	nutrition := NewNutritionStore(ctx, st, setupTestLogger())
	_, err = nutrition.AddBodyWeight(ctx, models.BodyWeightEntry{ID: "b1", WeightKg: 82.4, RecordedAt: weighed})
	require.NoError(t, err)

	// Новый процесс: читаем из того же хранилища
	restoredWorkouts := NewWorkoutStore(ctx, st, setupTestLogger())
	restoredNutrition := NewNutritionStore(ctx, st, setupTestLogger())

	session, ok := restoredWorkouts.Session("w1")
	require.True(t, ok)
	assertSameSecond(t, started, session.StartedAt)
	require.NotNil(t, session.FinishedAt)
	assertSameSecond(t, finished, *session.FinishedAt)
	assert.True(t, session.FinishedAt.After(session.StartedAt))

	require.Len(t, restoredNutrition.BodyWeight(), 1)
	assertSameSecond(t, weighed, restoredNutrition.BodyWeight()[0].RecordedAt)
	assert.NoError(t, restoredWorkouts.PersistError())
}

func assertSameSecond(t *testing.T, want, got time.Time) {
	t.Helper()
	w, g := want.UTC(), got.UTC()
	assert.Equal(t,
		[]int{w.Year(), int(w.Month()), w.Day(), w.Hour(), w.Minute(), w.Second()},
		[]int{g.Year(), int(g.Month()), g.Day(), g.Hour(), g.Minute(), g.Second()})
}

func TestSubscribe_NotifiedSynchronously(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutStore(ctx, newBoltStorage(t), setupTestLogger())

	var seen []int
	unsubscribe := workouts.Subscribe(func(st WorkoutState) {
		seen = append(seen, len(st.Sessions))
	})

	_, err := workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
	require.NoError(t, err)
	// к моменту возврата подписчик уже вызван
	assert.Equal(t, []int{1}, seen)

	_, err = workouts.AddSession(ctx, models.WorkoutSession{Name: "B"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)

	unsubscribe()
	unsubscribe() // повторная отписка безопасна

	require.NoError(t, workouts.SetSessions(ctx, nil))
	assert.Equal(t, []int{1, 2}, seen)
}

func TestFailedMutation_DoesNotNotify(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutStore(ctx, newBoltStorage(t), setupTestLogger())

	calls := 0
	workouts.Subscribe(func(WorkoutState) { calls++ })

	err := workouts.DeleteSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, calls)
}

func TestMutations_AreImmutable(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutStore(ctx, newBoltStorage(t), setupTestLogger())

	first, err := workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
	require.NoError(t, err)
	_, err = workouts.AddSession(ctx, models.WorkoutSession{Name: "B"})
	require.NoError(t, err)

	before := workouts.State()

	updated := first
	updated.Name = "A (edited)"
	require.NoError(t, workouts.UpdateSession(ctx, updated))
	require.NoError(t, workouts.DeleteSession(ctx, first.ID))

	// Снимок, взятый до изменений, не поменялся
	require.Len(t, before.Sessions, 2)
	assert.Equal(t, "A", before.Sessions[0].Name)
	assert.Len(t, workouts.Sessions(), 1)
	assert.Equal(t, "B", workouts.Sessions()[0].Name)
}

func TestAddSession_Duplicate(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutStore(ctx, newBoltStorage(t), setupTestLogger())

	_, err := workouts.AddSession(ctx, models.WorkoutSession{ID: "w1"})
	require.NoError(t, err)
	_, err = workouts.AddSession(ctx, models.WorkoutSession{ID: "w1"})
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, workouts.Sessions(), 1)
}

func TestPersistFailure_IsNotPropagated(t *testing.T) {
	ctx := context.Background()
	st := &storage.StateStorageMock{
		LoadStateFunc: func(ctx context.Context, name string) ([]byte, error) {
			return nil, storage.ErrStateNotFound
		},
		SaveStateFunc: func(ctx context.Context, name string, data []byte) error {
			return errors.New("quota exceeded")
		},
	}
	workouts := NewWorkoutStore(ctx, st, setupTestLogger())

	_, err := workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
	require.NoError(t, err)
	assert.Len(t, workouts.Sessions(), 1)
	assert.Error(t, workouts.PersistError())
}

func TestLoad_NewerVersionStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := newBoltStorage(t)
	require.NoError(t, st.SaveState(ctx, WorkoutStateName, []byte(`{"state":{"sessions":[{"id":"x"}]},"version":99}`)))

	workouts := NewWorkoutStore(ctx, st, setupTestLogger())

	assert.Empty(t, workouts.Sessions())
	assert.Error(t, workouts.PersistError())
}

func TestLoad_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	st := newBoltStorage(t)

	nutrition := NewNutritionStore(ctx, st, setupTestLogger())
	require.NoError(t, nutrition.SetGoals(ctx, models.MacroGoals{Calories: 2500}))

	raw, err := st.LoadState(ctx, NutritionStateName)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": 1,
		"state": {
			"goals": {"calories": 2500, "protein_g": 0, "carbs_g": 0, "fat_g": 0, "water_ml": 0},
			"days": null,
			"body_weight": null
		}
	}`, string(raw))
}

func TestClear_RemovesBlob(t *testing.T) {
	ctx := context.Background()
	st := newBoltStorage(t)
	workouts := NewWorkoutStore(ctx, st, setupTestLogger())

	_, err := workouts.AddSession(ctx, models.WorkoutSession{Name: "A"})
	require.NoError(t, err)
	require.NoError(t, workouts.Clear(ctx))

	assert.Empty(t, workouts.Sessions())
	_, err = st.LoadState(ctx, WorkoutStateName)
	assert.ErrorIs(t, err, storage.ErrStateNotFound)
}

func TestMergeSessions_LocalWins(t *testing.T) {
	ctx := context.Background()
	workouts := NewWorkoutStore(ctx, newBoltStorage(t), setupTestLogger())
	now := time.Now()

	_, err := workouts.AddSession(ctx, models.WorkoutSession{ID: "w1", Name: "local", StartedAt: now})
	require.NoError(t, err)

	added := workouts.MergeSessions(ctx, []models.WorkoutSession{
		{ID: "w1", Name: "remote", StartedAt: now},
		{ID: "w2", Name: "remote only", StartedAt: now},
	})

	assert.Equal(t, 1, added)
	require.Len(t, workouts.Sessions(), 2)
	assert.Equal(t, "local", workouts.Sessions()[0].Name)
	assert.Equal(t, "remote only", workouts.Sessions()[1].Name)
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationKind_Valid(t *testing.T) {
	for _, k := range OperationKinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, OperationKind("calendar").Valid())
	assert.False(t, OperationKind("").Valid())
}

func TestDecodePayload_UnknownKind(t *testing.T) {
	_, err := DecodePayload("calendar", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOperationKind)
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := DecodePayload(OpWorkout, json.RawMessage(`{"sessions": 42}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodePayload_RestoresDates(t *testing.T) {
	started := time.Date(2024, 3, 9, 18, 30, 15, 0, time.UTC)
	raw, err := EncodePayload(WorkoutPayload{Sessions: []WorkoutSession{{ID: "w1", Name: "Push", StartedAt: started}}})
	require.NoError(t, err)

	p, err := DecodePayload(OpWorkout, raw)
	require.NoError(t, err)

	wp, ok := p.(WorkoutPayload)
	require.True(t, ok)
	require.Len(t, wp.Sessions, 1)
	assert.True(t, started.Equal(wp.Sessions[0].StartedAt))
}

func TestPayload_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		payload Payload
		name    string
		wantErr bool
	}{
		{
			name:    "valid workout",
			payload: WorkoutPayload{Sessions: []WorkoutSession{{ID: "w1", StartedAt: now}}},
		},
		{
			name:    "workout without id",
			payload: WorkoutPayload{Sessions: []WorkoutSession{{StartedAt: now}}},
			wantErr: true,
		},
		{
			name: "duplicate workout ids",
			payload: WorkoutPayload{Sessions: []WorkoutSession{
				{ID: "w1", StartedAt: now},
				{ID: "w1", StartedAt: now},
			}},
			wantErr: true,
		},
		{
			name: "negative set",
			payload: WorkoutPayload{Sessions: []WorkoutSession{{
				ID: "w1", StartedAt: now,
				Exercises: []ExerciseEntry{{Name: "Squat", Sets: []SetEntry{{Reps: -1}}}},
			}}},
			wantErr: true,
		},
		{
			name:    "bad nutrition date",
			payload: NutritionPayload{Log: NutritionLog{Days: []NutritionDay{{Date: "09/03/2024"}}}},
			wantErr: true,
		},
		{
			name:    "valid nutrition",
			payload: NutritionPayload{Log: NutritionLog{Days: []NutritionDay{{Date: "2024-03-09", WaterMl: 500}}}},
		},
		{
			name:    "negative goals",
			payload: NutritionPayload{Log: NutritionLog{Goals: MacroGoals{ProteinG: -5}}},
			wantErr: true,
		},
		{
			name:    "zero body weight",
			payload: BodyWeightPayload{Entries: []BodyWeightEntry{{ID: "b1", RecordedAt: now}}},
			wantErr: true,
		},
		{
			name:    "custom exercise without name",
			payload: CustomExercisesPayload{Exercises: []CustomExercise{{ID: "c1"}}},
			wantErr: true,
		},
		{
			name:    "empty snapshot",
			payload: Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPayload_PatchSlices(t *testing.T) {
	assert.Equal(t, []Slice{SliceWorkouts}, WorkoutPayload{}.Patch().Slices())
	assert.Equal(t, []Slice{SliceNutrition}, NutritionPayload{}.Patch().Slices())
	assert.Equal(t, []Slice{SliceCustomExercises}, CustomExercisesPayload{}.Patch().Slices())
	assert.Equal(t, []Slice{SliceBodyWeight}, BodyWeightPayload{}.Patch().Slices())
	assert.Len(t, Snapshot{}.Patch().Slices(), 4)
	assert.True(t, UserDataPatch{}.IsEmpty())

	// пустой срез уходит как [] а не как nil
	p := WorkoutPayload{}.Patch()
	require.NotNil(t, p.Workouts)
	assert.NotNil(t, *p.Workouts)
	assert.Empty(t, *p.Workouts)
}

func TestWorkoutSession_Clone(t *testing.T) {
	finished := time.Now()
	orig := WorkoutSession{
		ID:         "w1",
		StartedAt:  finished.Add(-time.Hour),
		FinishedAt: &finished,
		Exercises:  []ExerciseEntry{{Name: "Bench", Sets: []SetEntry{{Reps: 5, WeightKg: 80}}}},
	}

	c := orig.Clone()
	c.Exercises[0].Sets[0].Reps = 10
	*c.FinishedAt = finished.Add(time.Minute)

	assert.Equal(t, 5, orig.Exercises[0].Sets[0].Reps)
	assert.True(t, orig.FinishedAt.Equal(finished))
}

func TestSortBodyWeight(t *testing.T) {
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	in := []BodyWeightEntry{
		{ID: "a", RecordedAt: base},
		{ID: "c", RecordedAt: base.Add(48 * time.Hour)},
		{ID: "b", RecordedAt: base.Add(24 * time.Hour)},
	}

	out := SortBodyWeight(in)

	assert.Equal(t, []string{"c", "b", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
	assert.Equal(t, "a", in[0].ID, "input must not be reordered")
}

func TestNutritionDay_Totals(t *testing.T) {
	day := NutritionDay{
		Date:    "2024-03-09",
		WaterMl: 1200,
		Meals: []MealEntry{
			{ID: "m1", Calories: 400, ProteinG: 30, CarbsG: 40, FatG: 10},
			{ID: "m2", Calories: 600, ProteinG: 40, CarbsG: 60, FatG: 20},
		},
	}

	assert.Equal(t, MacroGoals{Calories: 1000, ProteinG: 70, CarbsG: 100, FatG: 30, WaterMl: 1200}, day.Totals())
}

package models

import "time"

// Slice имя подмножества данных пользователя на сервере
type Slice string

const (
	SliceWorkouts        Slice = "workout_data"
	SliceCustomExercises Slice = "custom_exercises"
	SliceNutrition       Slice = "nutrition_data"
	SliceBodyWeight      Slice = "body_weight_data"
)

// UserData запись пользователя в удаленном хранилище
type UserData struct {
	UpdatedAt       time.Time         `json:"updated_at"`
	Nutrition       *NutritionLog     `json:"nutrition_data,omitempty"`
	UserID          string            `json:"user_id"`
	Workouts        []WorkoutSession  `json:"workout_data,omitempty"`
	CustomExercises []CustomExercise  `json:"custom_exercises,omitempty"`
	BodyWeight      []BodyWeightEntry `json:"body_weight_data,omitempty"`
}

// UserDataPatch описывает один upsert: nil поле означает "не трогать колонку",
// указатель на пустой слайс означает "записать пустое значение".
type UserDataPatch struct {
	Workouts        *[]WorkoutSession
	CustomExercises *[]CustomExercise
	Nutrition       *NutritionLog
	BodyWeight      *[]BodyWeightEntry
}

// Slices возвращает имена колонок, которые пишет патч
func (p UserDataPatch) Slices() []Slice {
	var out []Slice
	if p.Workouts != nil {
		out = append(out, SliceWorkouts)
	}
	if p.CustomExercises != nil {
		out = append(out, SliceCustomExercises)
	}
	if p.Nutrition != nil {
		out = append(out, SliceNutrition)
	}
	if p.BodyWeight != nil {
		out = append(out, SliceBodyWeight)
	}
	return out
}

// IsEmpty true, если патч не пишет ни одной колонки
func (p UserDataPatch) IsEmpty() bool {
	return len(p.Slices()) == 0
}

// Snapshot полный снимок локального состояния для комбинированного push
type Snapshot struct {
	Nutrition       NutritionLog      `json:"nutrition"`
	Workouts        []WorkoutSession  `json:"workouts"`
	CustomExercises []CustomExercise  `json:"custom_exercises"`
	BodyWeight      []BodyWeightEntry `json:"body_weight"`
}

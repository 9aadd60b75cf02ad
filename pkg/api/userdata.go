package api

import (
	"encoding/json"
	"time"
)

// UserDataRecord запись пользователя, как ее отдает GET /api/v1/users/{userID}/data.
// Колонки хранятся на сервере как непрозрачный JSON; null означает, что колонка
// еще ни разу не записывалась.
type UserDataRecord struct {
	UpdatedAt       time.Time       `json:"updated_at"`
	UserID          string          `json:"user_id"`
	WorkoutData     json.RawMessage `json:"workout_data"`
	CustomExercises json.RawMessage `json:"custom_exercises"`
	NutritionData   json.RawMessage `json:"nutrition_data"`
	BodyWeightData  json.RawMessage `json:"body_weight_data"`
}

// UserDataPushRequest тело PUT /api/v1/users/{userID}/data.
// Отсутствующее поле не трогает колонку на сервере.
type UserDataPushRequest struct {
	WorkoutData     json.RawMessage `json:"workout_data,omitempty"`
	CustomExercises json.RawMessage `json:"custom_exercises,omitempty"`
	NutritionData   json.RawMessage `json:"nutrition_data,omitempty"`
	BodyWeightData  json.RawMessage `json:"body_weight_data,omitempty"`
}

// IsEmpty true, если запрос не пишет ни одной колонки
func (r UserDataPushRequest) IsEmpty() bool {
	return len(r.WorkoutData) == 0 && len(r.CustomExercises) == 0 &&
		len(r.NutritionData) == 0 && len(r.BodyWeightData) == 0
}

// UserDataPushResponse ответ на успешный upsert
type UserDataPushResponse struct {
	UpdatedAt time.Time `json:"updated_at"`
	Columns   []string  `json:"columns"` // какие колонки были записаны
}

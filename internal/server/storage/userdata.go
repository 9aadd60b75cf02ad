package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Column names of the user_data table. Each holds one opaque JSON document.
const (
	ColumnWorkoutData     = "workout_data"
	ColumnCustomExercises = "custom_exercises"
	ColumnNutritionData   = "nutrition_data"
	ColumnBodyWeightData  = "body_weight_data"
)

// DataColumns все колонки данных в порядке записи
var DataColumns = []string{ColumnWorkoutData, ColumnCustomExercises, ColumnNutritionData, ColumnBodyWeightData}

// UserDataRecord одна строка user_data. nil колонка еще не записывалась.
type UserDataRecord struct {
	UpdatedAt time.Time
	UserID    string
	Columns   map[string]json.RawMessage
}

//go:generate moq -out userdata_mock.go . UserDataStorage

// UserDataStorage defines interface for the per-user data record
type UserDataStorage interface {
	// GetUserData returns the record of the user
	// Returns ErrRecordNotFound if the user has no record yet
	GetUserData(ctx context.Context, userID string) (*UserDataRecord, error)

	// UpsertUserData writes the given columns and updated_at, creating the row
	// when missing. Columns that are not in the map are left untouched.
	// Returns the names of written columns in DataColumns order.
	UpsertUserData(ctx context.Context, userID string, columns map[string]json.RawMessage, updatedAt time.Time) ([]string, error)

	// CreateUserData creates an empty record; returns false if it already existed
	CreateUserData(ctx context.Context, userID string, createdAt time.Time) (bool, error)
}

//go:generate moq -out pinger_mock.go . Pinger

// Pinger проверка доступности базы для health check
type Pinger interface {
	Ping(ctx context.Context) error
}

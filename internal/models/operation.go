package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OperationKind тег операции в очереди синхронизации
type OperationKind string

const (
	OpWorkout         OperationKind = "workout"
	OpNutrition       OperationKind = "nutrition"
	OpCustomExercises OperationKind = "custom-exercises"
	OpBodyWeight      OperationKind = "body-weight"
	OpSnapshot        OperationKind = "snapshot" // все срезы одним push
)

// OperationKinds закрытый набор известных операций
var OperationKinds = []OperationKind{OpWorkout, OpNutrition, OpCustomExercises, OpBodyWeight, OpSnapshot}

// Valid true для известных типов операций
func (k OperationKind) Valid() bool {
	for _, known := range OperationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Payload типизированное содержимое операции
type Payload interface {
	Kind() OperationKind
	Validate() error
	Patch() UserDataPatch
}

// WorkoutPayload пишет журнал тренировок
type WorkoutPayload struct {
	Sessions []WorkoutSession `json:"sessions"`
}

func (WorkoutPayload) Kind() OperationKind { return OpWorkout }

func (p WorkoutPayload) Validate() error {
	return ValidateSessions(p.Sessions)
}

func (p WorkoutPayload) Patch() UserDataPatch {
	sessions := nonNil(p.Sessions)
	return UserDataPatch{Workouts: &sessions}
}

// NutritionPayload пишет журнал питания
type NutritionPayload struct {
	Log NutritionLog `json:"log"`
}

func (NutritionPayload) Kind() OperationKind { return OpNutrition }

func (p NutritionPayload) Validate() error { return p.Log.Validate() }

func (p NutritionPayload) Patch() UserDataPatch {
	log := p.Log
	log.Days = nonNil(log.Days)
	return UserDataPatch{Nutrition: &log}
}

// CustomExercisesPayload пишет пользовательские упражнения
type CustomExercisesPayload struct {
	Exercises []CustomExercise `json:"exercises"`
}

func (CustomExercisesPayload) Kind() OperationKind { return OpCustomExercises }

func (p CustomExercisesPayload) Validate() error {
	return ValidateCustomExercises(p.Exercises)
}

func (p CustomExercisesPayload) Patch() UserDataPatch {
	exercises := nonNil(p.Exercises)
	return UserDataPatch{CustomExercises: &exercises}
}

// BodyWeightPayload пишет журнал веса
type BodyWeightPayload struct {
	Entries []BodyWeightEntry `json:"entries"`
}

func (BodyWeightPayload) Kind() OperationKind { return OpBodyWeight }

func (p BodyWeightPayload) Validate() error {
	return ValidateBodyWeight(p.Entries)
}

func (p BodyWeightPayload) Patch() UserDataPatch {
	entries := nonNil(p.Entries)
	return UserDataPatch{BodyWeight: &entries}
}

func (Snapshot) Kind() OperationKind { return OpSnapshot }

// Validate проверяет все срезы снимка
func (s Snapshot) Validate() error {
	if err := ValidateSessions(s.Workouts); err != nil {
		return err
	}
	if err := ValidateCustomExercises(s.CustomExercises); err != nil {
		return err
	}
	if err := s.Nutrition.Validate(); err != nil {
		return err
	}
	return ValidateBodyWeight(s.BodyWeight)
}

// Patch снимок пишет все четыре колонки
func (s Snapshot) Patch() UserDataPatch {
	workouts := nonNil(s.Workouts)
	exercises := nonNil(s.CustomExercises)
	weight := nonNil(s.BodyWeight)
	nutrition := s.Nutrition
	nutrition.Days = nonNil(nutrition.Days)
	return UserDataPatch{
		Workouts:        &workouts,
		CustomExercises: &exercises,
		Nutrition:       &nutrition,
		BodyWeight:      &weight,
	}
}

// QueuedOperation операция записи, ожидающая отправки на сервер.
// Payload хранится уже сериализованным: изменения исходных данных после
// постановки в очередь на операцию не влияют.
type QueuedOperation struct {
	EnqueuedAt time.Time       `json:"enqueued_at"`
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Kind       OperationKind   `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	RetryCount int             `json:"retry_count"`
}

// EncodePayload сериализует payload для очереди
func EncodePayload(p Payload) (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", p.Kind(), err)
	}
	return data, nil
}

// DecodePayload восстанавливает типизированный payload по тегу операции
func DecodePayload(kind OperationKind, raw json.RawMessage) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch kind {
	case OpWorkout:
		var v WorkoutPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case OpNutrition:
		var v NutritionPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case OpCustomExercises:
		var v CustomExercisesPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case OpBodyWeight:
		var v BodyWeightPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case OpSnapshot:
		var v Snapshot
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperationKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s payload: %v", ErrInvalidPayload, kind, err)
	}
	return p, nil
}

// ValidateSessions проверяет каждую тренировку и уникальность id
func ValidateSessions(sessions []WorkoutSession) error {
	seen := make(map[string]struct{}, len(sessions))
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate workout session %s", ErrInvalidPayload, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// ValidateCustomExercises проверяет упражнения и уникальность id
func ValidateCustomExercises(exercises []CustomExercise) error {
	seen := make(map[string]struct{}, len(exercises))
	for _, e := range exercises {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate custom exercise %s", ErrInvalidPayload, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// ValidateBodyWeight проверяет взвешивания и уникальность id
func ValidateBodyWeight(entries []BodyWeightEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate body weight entry %s", ErrInvalidPayload, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// nonNil превращает nil в пустой слайс, чтобы на сервер ушел [] а не null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

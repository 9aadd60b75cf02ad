package models

import (
	"fmt"
	"slices"
	"time"
)

// SetEntry один подход упражнения
type SetEntry struct {
	Reps      int     `json:"reps"`
	WeightKg  float64 `json:"weight_kg"`
	RPE       float64 `json:"rpe,omitempty"`
	Completed bool    `json:"completed"`
}

// ExerciseEntry упражнение внутри тренировки
type ExerciseEntry struct {
	ExerciseID string     `json:"exercise_id"`
	Name       string     `json:"name"`
	Notes      string     `json:"notes,omitempty"`
	Sets       []SetEntry `json:"sets"`
}

// WorkoutSession представляет одну тренировку в журнале
type WorkoutSession struct {
	StartedAt  time.Time       `json:"started_at"`            // время начала
	FinishedAt *time.Time      `json:"finished_at,omitempty"` // nil пока тренировка не завершена
	ID         string          `json:"id"`                    // UUID тренировки
	Name       string          `json:"name"`
	Notes      string          `json:"notes,omitempty"`
	Exercises  []ExerciseEntry `json:"exercises"`
}

// Validate проверяет обязательные поля тренировки
func (w WorkoutSession) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("%w: workout session id is required", ErrInvalidPayload)
	}
	if w.StartedAt.IsZero() {
		return fmt.Errorf("%w: workout session %s has no start time", ErrInvalidPayload, w.ID)
	}
	if w.FinishedAt != nil && w.FinishedAt.Before(w.StartedAt) {
		return fmt.Errorf("%w: workout session %s finishes before it starts", ErrInvalidPayload, w.ID)
	}
	for _, ex := range w.Exercises {
		for i, set := range ex.Sets {
			if set.Reps < 0 || set.WeightKg < 0 {
				return fmt.Errorf("%w: exercise %q set %d has negative values", ErrInvalidPayload, ex.Name, i+1)
			}
		}
	}
	return nil
}

// Clone создает глубокую копию тренировки
func (w WorkoutSession) Clone() WorkoutSession {
	c := w
	if w.FinishedAt != nil {
		finished := *w.FinishedAt
		c.FinishedAt = &finished
	}
	if w.Exercises != nil {
		c.Exercises = make([]ExerciseEntry, len(w.Exercises))
		for i, ex := range w.Exercises {
			ex.Sets = slices.Clone(ex.Sets)
			c.Exercises[i] = ex
		}
	}
	return c
}

// TotalVolume сумма reps*weight по завершенным подходам
func (w WorkoutSession) TotalVolume() float64 {
	var volume float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				volume += float64(set.Reps) * set.WeightKg
			}
		}
	}
	return volume
}

// CustomExercise упражнение, созданное пользователем
type CustomExercise struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscle_group,omitempty"`
	Equipment   string    `json:"equipment,omitempty"`
}

// Validate проверяет обязательные поля упражнения
func (e CustomExercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: custom exercise id is required", ErrInvalidPayload)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: custom exercise %s has no name", ErrInvalidPayload, e.ID)
	}
	return nil
}

// CloneSessions копирует список тренировок вместе с вложенными подходами
func CloneSessions(sessions []WorkoutSession) []WorkoutSession {
	if sessions == nil {
		return nil
	}
	out := make([]WorkoutSession, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	return out
}

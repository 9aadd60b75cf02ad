package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fitsync/internal/client/storage"
	"github.com/iudanet/fitsync/internal/models"
)

// WorkoutStateName имя блоба журнала тренировок
const WorkoutStateName = "workout-storage"

// WorkoutState состояние журнала тренировок
type WorkoutState struct {
	Sessions        []models.WorkoutSession `json:"sessions"`
	CustomExercises []models.CustomExercise `json:"custom_exercises"`
}

// WorkoutStore журнал тренировок и пользовательских упражнений
type WorkoutStore struct {
	obs *observable[WorkoutState]
	now func() time.Time
}

// NewWorkoutStore восстанавливает журнал из хранилища
func NewWorkoutStore(ctx context.Context, st storage.StateStorage, logger *slog.Logger) *WorkoutStore {
	return &WorkoutStore{
		obs: newObservable(ctx, WorkoutStateName, WorkoutState{}, st, logger, repairWorkouts),
		now: time.Now,
	}
}

// State текущее состояние; возвращенные слайсы нельзя изменять
func (s *WorkoutStore) State() WorkoutState {
	return s.obs.get()
}

// Sessions тренировки в порядке добавления
func (s *WorkoutStore) Sessions() []models.WorkoutSession {
	return s.obs.get().Sessions
}

// Session ищет тренировку по id
func (s *WorkoutStore) Session(id string) (models.WorkoutSession, bool) {
	sessions := s.obs.get().Sessions
	idx := indexByID(sessions, id, sessionID)
	if idx < 0 {
		return models.WorkoutSession{}, false
	}
	return sessions[idx].Clone(), true
}

// CustomExercises пользовательские упражнения
func (s *WorkoutStore) CustomExercises() []models.CustomExercise {
	return s.obs.get().CustomExercises
}

// Subscribe подписывает fn на каждое изменение; возвращает функцию отписки
func (s *WorkoutStore) Subscribe(fn func(WorkoutState)) func() {
	return s.obs.subscribe(fn)
}

// PersistError последняя ошибка сохранения, nil если последнее сохранение успешно
func (s *WorkoutStore) PersistError() error {
	return s.obs.persistError()
}

// AddSession добавляет тренировку; пустой id генерируется
func (s *WorkoutStore) AddSession(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, error) {
	session = session.Clone()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = s.now()
	}
	if err := session.Validate(); err != nil {
		return models.WorkoutSession{}, err
	}

	err := s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		if indexByID(st.Sessions, session.ID, sessionID) >= 0 {
			return st, fmt.Errorf("%w: %s", ErrDuplicateID, session.ID)
		}
		st.Sessions = append(slices.Clip(st.Sessions), session)
		return st, nil
	})
	if err != nil {
		return models.WorkoutSession{}, err
	}
	return session, nil
}

// UpdateSession заменяет тренировку с тем же id
func (s *WorkoutStore) UpdateSession(ctx context.Context, session models.WorkoutSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	session = session.Clone()

	return s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		idx := indexByID(st.Sessions, session.ID, sessionID)
		if idx < 0 {
			return st, fmt.Errorf("%w: workout session %s", ErrNotFound, session.ID)
		}
		st.Sessions = slices.Clone(st.Sessions)
		st.Sessions[idx] = session
		return st, nil
	})
}

// DeleteSession удаляет тренировку
func (s *WorkoutStore) DeleteSession(ctx context.Context, id string) error {
	return s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		idx := indexByID(st.Sessions, id, sessionID)
		if idx < 0 {
			return st, fmt.Errorf("%w: workout session %s", ErrNotFound, id)
		}
		st.Sessions = slices.Delete(slices.Clone(st.Sessions), idx, idx+1)
		return st, nil
	})
}

// SetSessions заменяет весь журнал тренировок. Невалидный журнал отклоняется целиком.
func (s *WorkoutStore) SetSessions(ctx context.Context, sessions []models.WorkoutSession) error {
	if err := models.ValidateSessions(sessions); err != nil {
		return err
	}
	sessions = models.CloneSessions(sessions)
	return s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		st.Sessions = sessions
		return st, nil
	})
}

// AddCustomExercise добавляет упражнение; пустой id генерируется
func (s *WorkoutStore) AddCustomExercise(ctx context.Context, ex models.CustomExercise) (models.CustomExercise, error) {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = s.now()
	}
	if err := ex.Validate(); err != nil {
		return models.CustomExercise{}, err
	}

	err := s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		if indexByID(st.CustomExercises, ex.ID, exerciseID) >= 0 {
			return st, fmt.Errorf("%w: %s", ErrDuplicateID, ex.ID)
		}
		st.CustomExercises = append(slices.Clip(st.CustomExercises), ex)
		return st, nil
	})
	if err != nil {
		return models.CustomExercise{}, err
	}
	return ex, nil
}

// DeleteCustomExercise удаляет упражнение
func (s *WorkoutStore) DeleteCustomExercise(ctx context.Context, id string) error {
	return s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		idx := indexByID(st.CustomExercises, id, exerciseID)
		if idx < 0 {
			return st, fmt.Errorf("%w: custom exercise %s", ErrNotFound, id)
		}
		st.CustomExercises = slices.Delete(slices.Clone(st.CustomExercises), idx, idx+1)
		return st, nil
	})
}

// SetCustomExercises заменяет список упражнений. Невалидный список отклоняется целиком.
func (s *WorkoutStore) SetCustomExercises(ctx context.Context, exercises []models.CustomExercise) error {
	if err := models.ValidateCustomExercises(exercises); err != nil {
		return err
	}
	exercises = slices.Clone(exercises)
	return s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		st.CustomExercises = exercises
		return st, nil
	})
}

// MergeSessions добавляет удаленные тренировки, которых нет локально.
// Локальные тренировки с тем же id не перезаписываются, невалидные удаленные пропускаются.
func (s *WorkoutStore) MergeSessions(ctx context.Context, remote []models.WorkoutSession) int {
	remote, _ = keepValid(models.CloneSessions(remote), models.WorkoutSession.Validate, s.obs.logger, "workout session")
	var added int
	_ = s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		st.Sessions, added = appendMissing(st.Sessions, remote, sessionID)
		return st, nil
	})
	return added
}

// MergeCustomExercises добавляет удаленные упражнения, которых нет локально
func (s *WorkoutStore) MergeCustomExercises(ctx context.Context, remote []models.CustomExercise) int {
	remote, _ = keepValid(remote, models.CustomExercise.Validate, s.obs.logger, "custom exercise")
	var added int
	_ = s.obs.update(ctx, func(st WorkoutState) (WorkoutState, error) {
		st.CustomExercises, added = appendMissing(st.CustomExercises, remote, exerciseID)
		return st, nil
	})
	return added
}

// Clear сбрасывает журнал и удаляет сохраненный блоб (logout)
func (s *WorkoutStore) Clear(ctx context.Context) error {
	return s.obs.reset(ctx)
}

// repairWorkouts чистит восстановленный журнал от невалидных и повторяющихся записей
func repairWorkouts(st WorkoutState, logger *slog.Logger) (WorkoutState, int) {
	var dropped, n int
	st.Sessions, n = keepValid(st.Sessions, models.WorkoutSession.Validate, logger, "workout session")
	dropped += n
	st.Sessions, n = dedupByID(st.Sessions, sessionID)
	dropped += n
	st.CustomExercises, n = keepValid(st.CustomExercises, models.CustomExercise.Validate, logger, "custom exercise")
	dropped += n
	st.CustomExercises, n = dedupByID(st.CustomExercises, exerciseID)
	dropped += n
	return st, dropped
}

func sessionID(s models.WorkoutSession) string  { return s.ID }
func exerciseID(e models.CustomExercise) string { return e.ID }

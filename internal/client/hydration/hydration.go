// Package hydration fills the local stores from the remote record once per
// login session. Remote data is merged by identity and never replaces local
// entries.
package hydration

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out puller_mock.go . Puller
//go:generate moq -out workout_target_mock.go . WorkoutTarget
//go:generate moq -out nutrition_target_mock.go . NutritionTarget

// Puller читает запись пользователя с сервера; (nil, nil) значит "данных нет"
type Puller interface {
	Pull(ctx context.Context, userID string) (*models.UserData, error)
}

// WorkoutTarget локальный стор тренировок
type WorkoutTarget interface {
	MergeSessions(ctx context.Context, remote []models.WorkoutSession) int
	MergeCustomExercises(ctx context.Context, remote []models.CustomExercise) int
}

// NutritionTarget локальный стор питания и веса
type NutritionTarget interface {
	MergeNutrition(ctx context.Context, remote models.NutritionLog) (int, bool)
	MergeBodyWeight(ctx context.Context, remote []models.BodyWeightEntry) int
}

// Result что было добавлено при гидрации
type Result struct {
	Sessions        int  // добавлено тренировок
	CustomExercises int  // добавлено пользовательских упражнений
	NutritionDays   int  // добавлено дней питания
	BodyWeight      int  // добавлено взвешиваний
	GoalsApplied    bool // цели взяты с сервера
	Found           bool // на сервере была запись
	AlreadyHydrated bool // сессия уже гидрирована, запрос не выполнялся
}

// Added общее число добавленных записей
func (r Result) Added() int {
	return r.Sessions + r.CustomExercises + r.NutritionDays + r.BodyWeight
}

// Hydrator одноразовая гидрация в пределах сессии
type Hydrator struct {
	puller    Puller
	workouts  WorkoutTarget
	nutrition NutritionTarget
	logger    *slog.Logger
	userID    string // для кого выполнена гидрация
	mu        sync.Mutex
	hydrated  bool
}

// New создает Hydrator
func New(puller Puller, workouts WorkoutTarget, nutrition NutritionTarget, logger *slog.Logger) *Hydrator {
	return &Hydrator{
		puller:    puller,
		workouts:  workouts,
		nutrition: nutrition,
		logger:    logger,
	}
}

// Hydrate выполняет pull и мерж, если для userID это еще не сделано в текущей
// сессии. Флаг ставится до запроса: ошибка тоже считается попыткой.
func (h *Hydrator) Hydrate(ctx context.Context, userID string) (Result, error) {
	h.mu.Lock()
	if h.hydrated && h.userID == userID {
		h.mu.Unlock()
		return Result{AlreadyHydrated: true}, nil
	}
	h.hydrated = true
	h.userID = userID
	h.mu.Unlock()

	data, err := h.puller.Pull(ctx, userID)
	if err != nil {
		h.logger.Warn("Hydration failed, continuing with local data",
			slog.String("user_id", userID), slog.Any("error", err))
		return Result{}, err
	}
	if data == nil {
		h.logger.Info("No remote data for user", slog.String("user_id", userID))
		return Result{}, nil
	}

	res := h.merge(ctx, data)
	res.Found = true
	h.logger.Info("Hydration completed",
		slog.String("user_id", userID),
		slog.Int("sessions", res.Sessions),
		slog.Int("custom_exercises", res.CustomExercises),
		slog.Int("nutrition_days", res.NutritionDays),
		slog.Int("body_weight", res.BodyWeight),
		slog.Bool("goals_applied", res.GoalsApplied))
	return res, nil
}

// merge добавляет только непустые удаленные срезы
func (h *Hydrator) merge(ctx context.Context, data *models.UserData) Result {
	var res Result
	if len(data.Workouts) > 0 {
		res.Sessions = h.workouts.MergeSessions(ctx, data.Workouts)
	}
	if len(data.CustomExercises) > 0 {
		res.CustomExercises = h.workouts.MergeCustomExercises(ctx, data.CustomExercises)
	}
	if data.Nutrition != nil && !data.Nutrition.IsEmpty() {
		res.NutritionDays, res.GoalsApplied = h.nutrition.MergeNutrition(ctx, *data.Nutrition)
	}
	if len(data.BodyWeight) > 0 {
		res.BodyWeight = h.nutrition.MergeBodyWeight(ctx, data.BodyWeight)
	}
	return res
}

// Reset сбрасывает флаг (logout), следующий Hydrate снова сходит на сервер
func (h *Hydrator) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hydrated = false
	h.userID = ""
}

// Hydrated true, если гидрация для текущей сессии уже выполнялась
func (h *Hydrator) Hydrated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hydrated
}

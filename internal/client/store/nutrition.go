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

// NutritionStateName имя блоба журнала питания
const NutritionStateName = "nutrition-storage"

// NutritionState журнал питания, цели и журнал веса
type NutritionState struct {
	Goals      models.MacroGoals        `json:"goals"`
	Days       []models.NutritionDay    `json:"days"`
	BodyWeight []models.BodyWeightEntry `json:"body_weight"` // от новых к старым
}

// Log срез питания в формате сервера
func (st NutritionState) Log() models.NutritionLog {
	return models.NutritionLog{Goals: st.Goals, Days: st.Days}
}

// NutritionStore журнал питания, воды и веса
type NutritionStore struct {
	obs *observable[NutritionState]
	now func() time.Time
}

// NewNutritionStore восстанавливает журнал из хранилища
func NewNutritionStore(ctx context.Context, st storage.StateStorage, logger *slog.Logger) *NutritionStore {
	return &NutritionStore{
		obs: newObservable(ctx, NutritionStateName, NutritionState{}, st, logger, repairNutrition),
		now: time.Now,
	}
}

// State текущее состояние; возвращенные слайсы нельзя изменять
func (s *NutritionStore) State() NutritionState {
	return s.obs.get()
}

// Day записи за день date (YYYY-MM-DD)
func (s *NutritionStore) Day(date string) (models.NutritionDay, bool) {
	days := s.obs.get().Days
	idx := indexByID(days, date, dayDate)
	if idx < 0 {
		return models.NutritionDay{}, false
	}
	return days[idx], true
}

// BodyWeight записи веса от новых к старым
func (s *NutritionStore) BodyWeight() []models.BodyWeightEntry {
	return s.obs.get().BodyWeight
}

// Subscribe подписывает fn на каждое изменение; возвращает функцию отписки
func (s *NutritionStore) Subscribe(fn func(NutritionState)) func() {
	return s.obs.subscribe(fn)
}

// PersistError последняя ошибка сохранения
func (s *NutritionStore) PersistError() error {
	return s.obs.persistError()
}

// AddMeal добавляет прием пищи в день date. Пустой date берется из LoggedAt.
func (s *NutritionStore) AddMeal(ctx context.Context, date string, meal models.MealEntry) (models.MealEntry, error) {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.LoggedAt.IsZero() {
		meal.LoggedAt = s.now()
	}
	if date == "" {
		date = models.DayKey(meal.LoggedAt)
	}
	if err := validateDay(date, meal); err != nil {
		return models.MealEntry{}, err
	}

	err := s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		days, idx := withDay(st.Days, date)
		if indexByID(days[idx].Meals, meal.ID, mealID) >= 0 {
			return st, fmt.Errorf("%w: %s", ErrDuplicateID, meal.ID)
		}
		days[idx].Meals = append(slices.Clip(days[idx].Meals), meal)
		st.Days = days
		return st, nil
	})
	if err != nil {
		return models.MealEntry{}, err
	}
	return meal, nil
}

// UpdateMeal заменяет прием пищи с тем же id в дне date
func (s *NutritionStore) UpdateMeal(ctx context.Context, date string, meal models.MealEntry) error {
	if err := validateDay(date, meal); err != nil {
		return err
	}
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		dayIdx := indexByID(st.Days, date, dayDate)
		if dayIdx < 0 {
			return st, fmt.Errorf("%w: nutrition day %s", ErrNotFound, date)
		}
		mealIdx := indexByID(st.Days[dayIdx].Meals, meal.ID, mealID)
		if mealIdx < 0 {
			return st, fmt.Errorf("%w: meal %s", ErrNotFound, meal.ID)
		}
		days := slices.Clone(st.Days)
		days[dayIdx].Meals = slices.Clone(days[dayIdx].Meals)
		days[dayIdx].Meals[mealIdx] = meal
		st.Days = days
		return st, nil
	})
}

// DeleteMeal удаляет прием пищи
func (s *NutritionStore) DeleteMeal(ctx context.Context, date, id string) error {
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		dayIdx := indexByID(st.Days, date, dayDate)
		if dayIdx < 0 {
			return st, fmt.Errorf("%w: nutrition day %s", ErrNotFound, date)
		}
		mealIdx := indexByID(st.Days[dayIdx].Meals, id, mealID)
		if mealIdx < 0 {
			return st, fmt.Errorf("%w: meal %s", ErrNotFound, id)
		}
		days := slices.Clone(st.Days)
		days[dayIdx].Meals = slices.Delete(slices.Clone(days[dayIdx].Meals), mealIdx, mealIdx+1)
		st.Days = days
		return st, nil
	})
}

// AddWater добавляет ml воды к дню date
func (s *NutritionStore) AddWater(ctx context.Context, date string, ml int) error {
	if ml <= 0 {
		return fmt.Errorf("%w: water amount must be positive", models.ErrInvalidPayload)
	}
	if err := validateDay(date, models.MealEntry{ID: "-"}); err != nil {
		return err
	}
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		days, idx := withDay(st.Days, date)
		days[idx].WaterMl += ml
		st.Days = days
		return st, nil
	})
}

// SetGoals задает дневные цели
func (s *NutritionStore) SetGoals(ctx context.Context, goals models.MacroGoals) error {
	if err := goals.Validate(); err != nil {
		return err
	}
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		st.Goals = goals
		return st, nil
	})
}

// SetDays заменяет все дни журнала питания
func (s *NutritionStore) SetDays(ctx context.Context, days []models.NutritionDay) error {
	log := models.NutritionLog{Days: days}.Clone()
	if err := log.Validate(); err != nil {
		return err
	}
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		st.Days = log.Days
		return st, nil
	})
}

// AddBodyWeight добавляет взвешивание, сохраняя порядок от новых к старым
func (s *NutritionStore) AddBodyWeight(ctx context.Context, entry models.BodyWeightEntry) (models.BodyWeightEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now()
	}
	if err := entry.Validate(); err != nil {
		return models.BodyWeightEntry{}, err
	}

	err := s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		if indexByID(st.BodyWeight, entry.ID, weightID) >= 0 {
			return st, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}
		st.BodyWeight = models.SortBodyWeight(append(slices.Clip(st.BodyWeight), entry))
		return st, nil
	})
	if err != nil {
		return models.BodyWeightEntry{}, err
	}
	return entry, nil
}

// DeleteBodyWeight удаляет взвешивание
func (s *NutritionStore) DeleteBodyWeight(ctx context.Context, id string) error {
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		idx := indexByID(st.BodyWeight, id, weightID)
		if idx < 0 {
			return st, fmt.Errorf("%w: body weight entry %s", ErrNotFound, id)
		}
		st.BodyWeight = slices.Delete(slices.Clone(st.BodyWeight), idx, idx+1)
		return st, nil
	})
}

// SetBodyWeight заменяет журнал веса. Невалидный журнал отклоняется целиком.
func (s *NutritionStore) SetBodyWeight(ctx context.Context, entries []models.BodyWeightEntry) error {
	if err := models.ValidateBodyWeight(entries); err != nil {
		return err
	}
	sorted := models.SortBodyWeight(entries)
	return s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		st.BodyWeight = sorted
		return st, nil
	})
}

// MergeNutrition добавляет удаленные дни, которых нет локально. Цели
// применяются только если локальные не заданы. Невалидные дни и цели пропускаются.
func (s *NutritionStore) MergeNutrition(ctx context.Context, remote models.NutritionLog) (daysAdded int, goalsApplied bool) {
	remote = remote.Clone()
	remote.Days, _ = keepValid(remote.Days, models.NutritionDay.Validate, s.obs.logger, "nutrition day")
	if err := remote.Goals.Validate(); err != nil {
		s.obs.logger.Warn("dropping invalid remote goals", slog.Any("error", err))
		remote.Goals = models.MacroGoals{}
	}
	_ = s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		st.Days, daysAdded = appendMissing(st.Days, remote.Days, dayDate)
		if st.Goals.IsZero() && !remote.Goals.IsZero() {
			st.Goals = remote.Goals
			goalsApplied = true
		}
		return st, nil
	})
	return daysAdded, goalsApplied
}

// MergeBodyWeight добавляет удаленные взвешивания с новыми id
func (s *NutritionStore) MergeBodyWeight(ctx context.Context, remote []models.BodyWeightEntry) int {
	remote, _ = keepValid(remote, models.BodyWeightEntry.Validate, s.obs.logger, "body weight entry")
	var added int
	_ = s.obs.update(ctx, func(st NutritionState) (NutritionState, error) {
		var merged []models.BodyWeightEntry
		merged, added = appendMissing(st.BodyWeight, remote, weightID)
		st.BodyWeight = models.SortBodyWeight(merged)
		return st, nil
	})
	return added
}

// Clear сбрасывает журнал и удаляет сохраненный блоб (logout)
func (s *NutritionStore) Clear(ctx context.Context) error {
	return s.obs.reset(ctx)
}

// withDay возвращает копию days, где гарантированно есть день date, и его индекс
func withDay(days []models.NutritionDay, date string) ([]models.NutritionDay, int) {
	out := slices.Clone(days)
	if idx := indexByID(out, date, dayDate); idx >= 0 {
		return out, idx
	}
	out = append(out, models.NutritionDay{Date: date})
	return out, len(out) - 1
}

// repairNutrition чистит восстановленный журнал от невалидных и повторяющихся записей
func repairNutrition(st NutritionState, logger *slog.Logger) (NutritionState, int) {
	var dropped, n int
	if err := st.Goals.Validate(); err != nil {
		logger.Warn("dropping invalid goals", slog.Any("error", err))
		st.Goals = models.MacroGoals{}
		dropped++
	}
	st.Days, n = keepValid(st.Days, models.NutritionDay.Validate, logger, "nutrition day")
	dropped += n
	st.Days, n = dedupByID(st.Days, dayDate)
	dropped += n
	st.BodyWeight, n = keepValid(st.BodyWeight, models.BodyWeightEntry.Validate, logger, "body weight entry")
	dropped += n
	st.BodyWeight, n = dedupByID(st.BodyWeight, weightID)
	dropped += n
	return st, dropped
}

func validateDay(date string, meal models.MealEntry) error {
	day := models.NutritionLog{Days: []models.NutritionDay{{Date: date, Meals: []models.MealEntry{meal}}}}
	return day.Validate()
}

func dayDate(d models.NutritionDay) string     { return d.Date }
func mealID(m models.MealEntry) string         { return m.ID }
func weightID(e models.BodyWeightEntry) string { return e.ID }

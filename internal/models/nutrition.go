package models

import (
	"fmt"
	"slices"
	"time"
)

// DateLayout формат ключа дня в журнале питания
const DateLayout = "2006-01-02"

// MealEntry один прием пищи
type MealEntry struct {
	LoggedAt time.Time `json:"logged_at"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	MealType string    `json:"meal_type,omitempty"` // breakfast, lunch, dinner, snack
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
}

// NutritionDay записи питания и воды за один день
type NutritionDay struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Meals   []MealEntry `json:"meals"`
	WaterMl int         `json:"water_ml"`
}

// Totals суммарные макронутриенты за день
func (d NutritionDay) Totals() MacroGoals {
	var t MacroGoals
	for _, m := range d.Meals {
		t.Calories += m.Calories
		t.ProteinG += m.ProteinG
		t.CarbsG += m.CarbsG
		t.FatG += m.FatG
	}
	t.WaterMl = d.WaterMl
	return t
}

// MacroGoals дневные цели по КБЖУ и воде
type MacroGoals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	WaterMl  int     `json:"water_ml"`
}

// Validate цели не могут быть отрицательными
func (g MacroGoals) Validate() error {
	if g.Calories < 0 || g.ProteinG < 0 || g.CarbsG < 0 || g.FatG < 0 || g.WaterMl < 0 {
		return fmt.Errorf("%w: goals must not be negative", ErrInvalidPayload)
	}
	return nil
}

// IsZero true, если цели не заданы
func (g MacroGoals) IsZero() bool {
	return g == MacroGoals{}
}

// NutritionLog срез данных питания, который уходит на сервер целиком
type NutritionLog struct {
	Goals MacroGoals     `json:"goals"`
	Days  []NutritionDay `json:"days"`
}

// IsEmpty true, если в журнале нет ни дней, ни целей
func (l NutritionLog) IsEmpty() bool {
	return len(l.Days) == 0 && l.Goals.IsZero()
}

// Validate проверяет дни и приемы пищи
func (l NutritionLog) Validate() error {
	if err := l.Goals.Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(l.Days))
	for _, day := range l.Days {
		if err := day.Validate(); err != nil {
			return err
		}
		if _, dup := seen[day.Date]; dup {
			return fmt.Errorf("%w: duplicate nutrition day %s", ErrInvalidPayload, day.Date)
		}
		seen[day.Date] = struct{}{}
	}
	return nil
}

// Validate проверяет дату дня, воду и приемы пищи
func (d NutritionDay) Validate() error {
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: bad nutrition day %q", ErrInvalidPayload, d.Date)
	}
	if d.WaterMl < 0 {
		return fmt.Errorf("%w: negative water on %s", ErrInvalidPayload, d.Date)
	}
	for _, m := range d.Meals {
		if m.ID == "" {
			return fmt.Errorf("%w: meal on %s has no id", ErrInvalidPayload, d.Date)
		}
		if m.Calories < 0 || m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 {
			return fmt.Errorf("%w: meal %s has negative macros", ErrInvalidPayload, m.ID)
		}
	}
	return nil
}

// Clone глубокая копия журнала
func (l NutritionLog) Clone() NutritionLog {
	c := NutritionLog{Goals: l.Goals}
	if l.Days != nil {
		c.Days = make([]NutritionDay, len(l.Days))
		for i, d := range l.Days {
			d.Meals = slices.Clone(d.Meals)
			c.Days[i] = d
		}
	}
	return c
}

// DayKey ключ дня для момента времени в его локации
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/fitsync/internal/models"
)

// dateTimeLayouts допустимые форматы времени в флагах
var dateTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04", models.DateLayout}

// parseExercise разбирает "Bench press:3x8@60" или "Pull-up:3x10"
func parseExercise(arg string) (models.ExerciseEntry, error) {
	name, sets, ok := strings.Cut(arg, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return models.ExerciseEntry{}, fmt.Errorf("exercise %q: expected NAME:SETSxREPS[@KG]", arg)
	}

	volume, weightStr, hasWeight := strings.Cut(strings.TrimSpace(sets), "@")
	setsStr, repsStr, ok := strings.Cut(strings.ToLower(volume), "x")
	if !ok {
		return models.ExerciseEntry{}, fmt.Errorf("exercise %q: expected SETSxREPS", arg)
	}
	setCount, err := strconv.Atoi(setsStr)
	if err != nil || setCount < 1 {
		return models.ExerciseEntry{}, fmt.Errorf("exercise %q: bad set count %q", arg, setsStr)
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return models.ExerciseEntry{}, fmt.Errorf("exercise %q: bad rep count %q", arg, repsStr)
	}

	var weight float64
	if hasWeight {
		weight, err = strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(weightStr), "kg"), 64)
		if err != nil || weight < 0 {
			return models.ExerciseEntry{}, fmt.Errorf("exercise %q: bad weight %q", arg, weightStr)
		}
	}

	entry := models.ExerciseEntry{
		ExerciseID: exerciseSlug(name),
		Name:       name,
		Sets:       make([]models.SetEntry, setCount),
	}
	for i := range entry.Sets {
		entry.Sets[i] = models.SetEntry{Reps: reps, WeightKg: weight, Completed: true}
	}
	return entry, nil
}

// exerciseSlug id встроенного упражнения по имени: "Bench press" -> "bench-press"
func exerciseSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// parseTime разбирает время из флага; пустая строка дает now
func parseTime(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return now, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q, use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339", value)
}

// parseDay ключ дня из флага; пустая строка дает сегодня
func parseDay(value string, now time.Time) (string, error) {
	if value == "" {
		return models.DayKey(now), nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return "", fmt.Errorf("bad date %q, use YYYY-MM-DD", value)
	}
	return value, nil
}

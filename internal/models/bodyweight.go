package models

import (
	"fmt"
	"slices"
	"time"
)

// BodyWeightEntry одно взвешивание
type BodyWeightEntry struct {
	RecordedAt time.Time `json:"recorded_at"`
	ID         string    `json:"id"`
	Note       string    `json:"note,omitempty"`
	WeightKg   float64   `json:"weight_kg"`
}

// Validate проверяет запись веса
func (e BodyWeightEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: body weight entry id is required", ErrInvalidPayload)
	}
	if e.RecordedAt.IsZero() {
		return fmt.Errorf("%w: body weight entry %s has no date", ErrInvalidPayload, e.ID)
	}
	if e.WeightKg <= 0 {
		return fmt.Errorf("%w: body weight entry %s must be positive", ErrInvalidPayload, e.ID)
	}
	return nil
}

// SortBodyWeight сортирует записи от новых к старым, не меняя входной слайс
func SortBodyWeight(entries []BodyWeightEntry) []BodyWeightEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b BodyWeightEntry) int {
		return b.RecordedAt.Compare(a.RecordedAt)
	})
	return out
}

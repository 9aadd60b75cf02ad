package store

import (
	"log/slog"
	"slices"
)

// appendMissing добавляет remote записи, id которых нет в local.
// Локальные записи не меняются. Возвращает новый слайс и число добавленных.
func appendMissing[T any](local, remote []T, key func(T) string) ([]T, int) {
	seen := make(map[string]struct{}, len(local))
	for _, item := range local {
		seen[key(item)] = struct{}{}
	}

	out := slices.Clone(local)
	added := 0
	for _, item := range remote {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
		added++
	}
	return out, added
}

// dedupByID оставляет первую запись для каждого id
func dedupByID[T any](items []T, key func(T) string) ([]T, int) {
	out, kept := appendMissing(nil, items, key)
	if kept == len(items) {
		return items, 0
	}
	return out, len(items) - kept
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return key(item) == id })
}

// keepValid возвращает записи, прошедшие validate. Отброшенные записи
// логируются: в сторе не должно быть данных, которые очередь не примет.
func keepValid[T any](items []T, validate func(T) error, logger *slog.Logger, what string) ([]T, int) {
	out := make([]T, 0, len(items))
	dropped := 0
	for _, item := range items {
		if err := validate(item); err != nil {
			logger.Warn("dropping invalid record", slog.String("record", what), slog.Any("error", err))
			dropped++
			continue
		}
		out = append(out, item)
	}
	if dropped == 0 {
		return items, 0
	}
	return out, dropped
}

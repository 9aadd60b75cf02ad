package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastPush saves the time of the last successful push for the user
	SaveLastPush(ctx context.Context, userID string, at time.Time) error

	// GetLastPush returns zero time if the user never pushed from this client
	GetLastPush(ctx context.Context, userID string) (time.Time, error)
}

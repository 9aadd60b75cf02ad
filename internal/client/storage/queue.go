package storage

import (
	"context"

	"github.com/iudanet/fitsync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage хранит очередь операций синхронизации одним блобом
type QueueStorage interface {
	// LoadQueue returns operations in enqueue order; empty slice if nothing is stored
	LoadQueue(ctx context.Context) ([]models.QueuedOperation, error)

	// SaveQueue replaces the stored queue with ops
	SaveQueue(ctx context.Context, ops []models.QueuedOperation) error
}

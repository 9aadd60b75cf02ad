package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fitsync/internal/models"
)

// Вся очередь хранится одним JSON массивом под одним ключом
var queueKey = []byte("pending_operations")

// LoadQueue returns operations in enqueue order
func (s *Storage) LoadQueue(ctx context.Context) ([]models.QueuedOperation, error) {
	ops := []models.QueuedOperation{}
	err := s.view(bucketQueue, func(b *bbolt.Bucket) error {
		data := b.Get(queueKey)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &ops); err != nil {
			return fmt.Errorf("failed to unmarshal queue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// SaveQueue replaces the stored queue
func (s *Storage) SaveQueue(ctx context.Context, ops []models.QueuedOperation) error {
	if ops == nil {
		ops = []models.QueuedOperation{}
	}
	data, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to marshal queue: %w", err)
	}

	return s.update(bucketQueue, func(b *bbolt.Bucket) error {
		if err := b.Put(queueKey, data); err != nil {
			return fmt.Errorf("failed to save queue: %w", err)
		}
		return nil
	})
}

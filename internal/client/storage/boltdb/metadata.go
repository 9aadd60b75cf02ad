package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const keyLastPushPrefix = "last_push:"

// SaveLastPush saves the time of the last successful push for the user
func (s *Storage) SaveLastPush(ctx context.Context, userID string, at time.Time) error {
	// unix nano в BigEndian
	buf := binary.BigEndian.AppendUint64(nil, uint64(at.UnixNano()))
	return s.update(bucketMetadata, func(b *bbolt.Bucket) error {
		if err := b.Put([]byte(keyLastPushPrefix+userID), buf); err != nil {
			return fmt.Errorf("failed to save last push time: %w", err)
		}
		return nil
	})
}

// GetLastPush returns zero time if the user never pushed from this client
func (s *Storage) GetLastPush(ctx context.Context, userID string) (time.Time, error) {
	var at time.Time
	err := s.view(bucketMetadata, func(b *bbolt.Bucket) error {
		if buf := b.Get([]byte(keyLastPushPrefix + userID)); len(buf) == 8 {
			at = time.Unix(0, int64(binary.BigEndian.Uint64(buf)))
		}
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last push time: %w", err)
	}
	return at, nil
}

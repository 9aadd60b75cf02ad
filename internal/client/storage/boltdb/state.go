package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fitsync/internal/client/storage"
)

// LoadState returns the blob stored under name
func (s *Storage) LoadState(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.view(bucketState, func(b *bbolt.Bucket) error {
		v := b.Get([]byte(name))
		if v == nil {
			return storage.ErrStateNotFound
		}
		data = bytes.Clone(v)
		return nil
	})
	return data, err
}

// SaveState replaces the blob stored under name
func (s *Storage) SaveState(ctx context.Context, name string, data []byte) error {
	return s.update(bucketState, func(b *bbolt.Bucket) error {
		if err := b.Put([]byte(name), data); err != nil {
			return fmt.Errorf("failed to save state %q: %w", name, err)
		}
		return nil
	})
}

// DeleteState removes the blob stored under name. Missing blobs are not an error.
func (s *Storage) DeleteState(ctx context.Context, name string) error {
	return s.update(bucketState, func(b *bbolt.Bucket) error {
		if err := b.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete state %q: %w", name, err)
		}
		return nil
	})
}

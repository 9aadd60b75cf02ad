package storage

import "context"

//go:generate moq -out state_mock.go . StateStorage

// StateStorage хранит сериализованное состояние локальных сторов под именами
type StateStorage interface {
	// LoadState returns ErrStateNotFound if nothing was saved under name
	LoadState(ctx context.Context, name string) ([]byte, error)

	// SaveState replaces the blob stored under name
	SaveState(ctx context.Context, name string, data []byte) error

	// DeleteState is a no-op if the blob does not exist
	DeleteState(ctx context.Context, name string) error
}

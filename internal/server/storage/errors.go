package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRecordNotFound indicates that the user has no data record yet
	ErrRecordNotFound = errors.New("user data record not found")

	// ErrNoColumns indicates an upsert without any column to write
	ErrNoColumns = errors.New("no columns to write")
)

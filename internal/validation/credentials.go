// Package validation holds input checks shared by the client and the server.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen bcrypt учитывает только первые 72 байта
	MaxPasswordLen = 72
)

// usernamePattern латиница, цифры, точка, дефис и подчеркивание
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ErrInvalidUserID id пользователя не является UUID
var ErrInvalidUserID = errors.New("user id must be a UUID")

// ValidateUsername проверяет формат username
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return errors.New("username cannot be empty")
	case len(username) < MinUsernameLen:
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	case len(username) > MaxUsernameLen:
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	case !usernamePattern.MatchString(username):
		return errors.New("username can only contain letters, numbers, dots, dashes and underscores, and must start with a letter or number")
	}
	return nil
}

// ValidatePassword проверяет длину пароля в байтах
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return errors.New("password cannot be empty")
	case len(password) < MinPasswordLen:
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	case len(password) > MaxPasswordLen:
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLen)
	}
	return nil
}

// ValidateUserID проверяет, что id пользователя это UUID
func ValidateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, id)
	}
	return nil
}

// Package syncerr classifies failures at the sync boundary so callers can
// tell a retryable outage from a payload the server will never accept.
package syncerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind категория ошибки синхронизации
type Kind uint8

const (
	KindUnknown      Kind = iota
	KindTransient         // сеть, 5xx, 429, таймаут
	KindPermanent         // сервер никогда не примет этот запрос
	KindUnauthorized      // нужен повторный логин
	KindInvalid           // payload не прошел локальную валидацию
	KindStorage           // ошибка локального хранилища
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalid:
		return "invalid"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Retryable true для ошибок, которые имеет смысл повторить позже
func (k Kind) Retryable() bool {
	switch k {
	case KindPermanent, KindInvalid:
		return false
	default:
		return true
	}
}

// Error ошибка с категорией и именем операции
type Error struct {
	Err  error
	Op   string
	Kind Kind
}

// New оборачивает err в Error
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать по категории: errors.Is(err, &Error{Kind: KindPermanent})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Err == nil
}

// KindOf определяет категорию произвольной ошибки
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}

	return KindUnknown
}

// FromStatus классифицирует HTTP статус ответа сервера
func FromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status >= http.StatusInternalServerError:
		return KindTransient
	case status >= http.StatusBadRequest:
		return KindPermanent
	default:
		return KindUnknown
	}
}

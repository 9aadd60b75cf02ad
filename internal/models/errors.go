package models

import "errors"

var (
	// ErrInvalidPayload означает, что payload операции не прошел валидацию
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrUnknownOperationKind означает, что тип операции не входит в известный набор
	ErrUnknownOperationKind = errors.New("unknown operation kind")
)

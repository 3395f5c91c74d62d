package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTextRequired     = errors.New("text required")
	ErrTextEmpty        = errors.New("text empty")
	ErrInvalidSentiment = errors.New("invalid sentiment value")
)

// User-facing messages, kept identical to what existing clients already parse.
const (
	MsgTextRequired     = "Поле text обязательно."
	MsgTextEmpty        = "Текст отзыва не может быть пустым."
	MsgInvalidSentiment = "Неверное значение sentiment."
)

// ValidationError is a caller mistake. Message is safe to return to clients.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps any failure of the persistent store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func TextRequired() error { return &ValidationError{Field: "text", Message: MsgTextRequired, Err: ErrTextRequired} }
func TextEmpty() error    { return &ValidationError{Field: "text", Message: MsgTextEmpty, Err: ErrTextEmpty} }

func InvalidSentiment(v string) error {
	return &ValidationError{
		Field:   "sentiment",
		Message: MsgInvalidSentiment,
		Err:     fmt.Errorf("%w: %q", ErrInvalidSentiment, v),
	}
}

// Storage wraps err as a StorageError unless it already is one.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

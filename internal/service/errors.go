package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

// ValidationError names the offending field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// MaxDescriptionLength is the longest description, in characters, that a
// list or task accepts.
const MaxDescriptionLength = 1000

func checkDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return invalid("description", fmt.Sprintf("The description may not be greater than %d characters.", MaxDescriptionLength))
	}
	return nil
}

const genericFailure = "Something went wrong. Please try again."

// failure turns an operation error into the notification shown to the user.
func failure(err error, notFound string) flash.Message {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return flash.Error(ve.Message)
	case errors.Is(err, ErrValidation):
		return flash.Error("The given data was invalid.")
	case errors.Is(err, repo.ErrorNotFound):
		return flash.Error(notFound)
	default:
		return flash.Error(genericFailure)
	}
}

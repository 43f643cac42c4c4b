package services

import (
	"errors"

	apperrors "github.com/opteron-x86/exam-ace/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Bank specific errors
	ErrBankNotFound     = errors.New("question bank not found")
	ErrNoBanksSelected  = errors.New("no question banks selected")
	ErrNoQuestionsMatch = errors.New("no questions match the selected criteria")

	// Session specific errors
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionAlreadyCompleted = errors.New("session already submitted")
	ErrSessionNotCompleted     = errors.New("session has not been submitted")
)

// Use shared validation errors from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if err represents a "not found" condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrBankNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsValidation checks if err represents a validation failure.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBadRequest checks if err represents an invalid client request.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrNoBanksSelected) ||
		errors.Is(err, ErrNoQuestionsMatch) ||
		errors.Is(err, ErrSessionAlreadyCompleted) ||
		errors.Is(err, ErrSessionNotCompleted)
}

package recipe

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange          = errors.New("cooking time out of range")
	ErrInvalidTagSet       = errors.New("invalid tag set")
	ErrEmptyIngredientSet  = errors.New("empty ingredient set")
	ErrDuplicateIngredient = errors.New("duplicate ingredient")
	ErrNonPositiveAmount   = errors.New("non-positive ingredient amount")
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrDuplicateRecipe     = errors.New("duplicate recipe")

	ErrNotFound         = errors.New("recipe not found")
	ErrPermissionDenied = errors.New("only the author can modify the recipe")
)

// ValidationError is a rejected recipe submission. Field names the request
// field at fault; Err is one of the sentinels above.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

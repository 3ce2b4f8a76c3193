package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of restaurants, menu items and orders that
// reference ids with no backing row. Wrap it with context about what was
// missing.
var ErrNotFound = errors.New("not found")

// NotFound builds a wrapped ErrNotFound for an entity and id.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidationError carries field-level detail about a malformed request.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation extracts a ValidationError from err if present.
func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

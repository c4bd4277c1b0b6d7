package model

import (
	"fmt"
	"strings"
)

// ValidationError describes a single field-level problem in submitted data.
// Field is a path the editing UI can address ("geolocations[2].polygon").
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors aggregates field-level problems for one request. User
// submitted structured data is never silently dropped; anything that would
// be lost surfaces here instead.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Errorf appends a formatted validation error and returns the new slice.
func (e ValidationErrors) Errorf(field, format string, args ...any) ValidationErrors {
	return append(e, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

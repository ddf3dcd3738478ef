package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a field-level validation failure. Fields maps a JSON field path
// (for example "items.0.quantity") to a message a person can act on.
type Error struct {
	Fields map[string]string
}

func NewError(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

// Add records a message for field, keeping the first message per field.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// OrNil returns nil when no field failed, so callers can `return errs.OrNil()`.
func (e *Error) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

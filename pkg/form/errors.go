package form

import (
	"errors"

	"github.com/goliatone/go-formstate/pkg/model"
)

var (
	// ErrUnknownField is returned when a caller addresses a field the group's
	// schema does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrTypeMismatch is returned when a value cannot be represented in the
	// shape of the target control.
	ErrTypeMismatch = errors.New("form: value does not match field type")
)

// FieldError pairs a field name with its current user-input error.
type FieldError struct {
	Field string          `json:"field"`
	Code  model.ErrorCode `json:"code"`
}

package form

import "github.com/goliatone/go-formstate/pkg/model"

// Messages maps error codes to the text shown next to an invalid control.
type Messages map[model.ErrorCode]string

// DefaultMessages is used when no table is configured or a code is missing
// from the configured table.
var DefaultMessages = Messages{
	model.ErrorMissingValue: "This field is required",
	model.ErrorFormat:       "Invalid format",
}

// Lookup returns the message for code, falling back to DefaultMessages and
// finally to the code name. ErrorNone maps to the empty string.
func (m Messages) Lookup(code model.ErrorCode) string {
	if code == model.ErrorNone {
		return ""
	}
	if msg, ok := m[code]; ok && msg != "" {
		return msg
	}
	if msg, ok := DefaultMessages[code]; ok {
		return msg
	}
	return code.String()
}

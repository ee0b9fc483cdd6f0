package model

// FieldType is the closed enumeration of control kinds understood by the
// validator registry and the masking engine.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeMoney    FieldType = "money"
	FieldTypeObject   FieldType = "object"
)

// FieldTypes lists every supported FieldType in declaration order.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypePassword,
	FieldTypeMoney,
	FieldTypeObject,
}

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	for _, candidate := range FieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Textual reports whether values of this type are plain strings.
func (t FieldType) Textual() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePassword:
		return true
	default:
		return false
	}
}

// ErrorCode is the user-input error vocabulary attached to a control. The zero
// value means the control is valid.
type ErrorCode string

const (
	ErrorNone         ErrorCode = ""
	ErrorMissingValue ErrorCode = "MissingValue"
	ErrorFormat       ErrorCode = "FormatError"
)

// String returns a printable name, using "None" for the zero value.
func (c ErrorCode) String() string {
	if c == ErrorNone {
		return "None"
	}
	return string(c)
}

// Field declares one control: its name, type, required flag and default value.
// Label, Placeholder, Help and Options are render hints; the engine itself
// never reads them.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Schema is the ordered set of fields making up one form.
type Schema struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var (
	// ErrEmptyFieldName is returned when a field is declared without a name.
	ErrEmptyFieldName = errors.New("model: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("model: duplicate field")
	// ErrUnknownFieldType is returned for types outside the FieldType enum.
	ErrUnknownFieldType = errors.New("model: unknown field type")
	// ErrDefaultShape is returned when a default value cannot be held by the
	// field's type.
	ErrDefaultShape = errors.New("model: default value does not match field type")
)

// NewSchema returns a schema declaring fields in the given order.
func NewSchema(fields ...Field) Schema {
	out := make([]Field, len(fields))
	copy(out, fields)
	return Schema{Fields: out}
}

// Len returns the number of declared fields.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Names returns field names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Lookup returns the field declared under name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// With returns a copy of the schema with field appended, or replacing an
// existing field of the same name in place.
func (s Schema) With(field Field) Schema {
	out := NewSchema(s.Fields...)
	for i := range out.Fields {
		if out.Fields[i].Name == field.Name {
			out.Fields[i] = field
			return out
		}
	}
	out.Fields = append(out.Fields, field)
	return out
}

// Validate checks names, types and default shapes without modifying the
// schema.
func (s Schema) Validate() error {
	_, err := s.Normalize()
	return err
}

// Normalize validates the schema and returns a copy where every field has an
// explicit type and a default value of the canonical Go shape for that type.
func (s Schema) Normalize() (Schema, error) {
	seen := make(map[string]struct{}, len(s.Fields))
	out := Schema{Fields: make([]Field, 0, len(s.Fields))}

	for _, field := range s.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return Schema{}, ErrEmptyFieldName
		}
		if _, exists := seen[name]; exists {
			return Schema{}, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		seen[name] = struct{}{}

		normalized, err := field.normalize()
		if err != nil {
			return Schema{}, err
		}
		normalized.Name = name
		out.Fields = append(out.Fields, normalized)
	}

	return out, nil
}

func (f Field) normalize() (Field, error) {
	if f.Type == "" {
		f.Type = FieldTypeText
	}
	if !f.Type.Known() {
		return Field{}, fmt.Errorf("%w: %q on field %q", ErrUnknownFieldType, f.Type, f.Name)
	}

	def, err := canonicalDefault(f.Type, f.Default)
	if err != nil {
		return Field{}, fmt.Errorf("%w: field %q (%s): %v", ErrDefaultShape, f.Name, f.Type, err)
	}
	f.Default = def
	if len(f.Options) > 0 {
		f.Options = append([]string(nil), f.Options...)
	}
	return f, nil
}

func canonicalDefault(t FieldType, value any) (any, error) {
	switch {
	case t.Textual():
		if value == nil {
			return "", nil
		}
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return str, nil

	case t == FieldTypeMoney:
		if value == nil {
			return int64(0), nil
		}
		units, ok := MinorUnits(value)
		if !ok {
			return nil, fmt.Errorf("expected integer minor units, got %T", value)
		}
		return units, nil

	case t == FieldTypeObject:
		if value == nil {
			return []any{}, nil
		}
		switch reflect.ValueOf(value).Kind() {
		case reflect.Slice, reflect.Map:
			return value, nil
		}
		return nil, fmt.Errorf("expected list or structure, got %T", value)
	}
	return nil, fmt.Errorf("unsupported type %q", t)
}

// MinorUnits converts integer kinds and integral floats into int64. It reports
// false for any other value, including fractional floats.
func MinorUnits(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

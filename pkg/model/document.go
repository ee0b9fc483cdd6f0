package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// ErrInvalidDocument is returned when an entity document is not valid JSON.
var ErrInvalidDocument = errors.New("model: entity document is not valid JSON")

// DefaultsFromJSON returns a Decorator that replaces field defaults with the
// values stored in doc, a JSON record fetched from the document store. Field
// names are used as gjson paths, so nested records can be addressed with
// dotted names. Missing or null paths keep the declared default.
func DefaultsFromJSON(doc []byte) Decorator {
	return DecoratorFunc(func(schema *Schema) error {
		if !gjson.ValidBytes(doc) {
			return ErrInvalidDocument
		}
		for i := range schema.Fields {
			field := &schema.Fields[i]
			result := gjson.GetBytes(doc, field.Name)
			if !result.Exists() || result.Type == gjson.Null {
				continue
			}
			value, err := documentValue(field.Type, result)
			if err != nil {
				return fmt.Errorf("%w: field %q: %v", ErrDefaultShape, field.Name, err)
			}
			field.Default = value
		}
		return nil
	})
}

// WithDefaultsFromJSON is shorthand for Apply(schema, DefaultsFromJSON(doc)).
func WithDefaultsFromJSON(schema Schema, doc []byte) (Schema, error) {
	return Apply(schema, DefaultsFromJSON(doc))
}

func documentValue(t FieldType, result gjson.Result) (any, error) {
	switch t {
	case FieldTypeMoney:
		if result.Type != gjson.Number {
			return nil, fmt.Errorf("expected number, got %s", result.Type)
		}
		if result.Num != math.Trunc(result.Num) {
			return nil, fmt.Errorf("expected integer minor units, got %s", result.Raw)
		}
		return result.Int(), nil
	case FieldTypeObject:
		if !result.IsArray() && !result.IsObject() {
			return nil, fmt.Errorf("expected array or object, got %s", result.Type)
		}
		return result.Value(), nil
	case "", FieldTypeText, FieldTypeEmail, FieldTypePassword:
		if result.Type != gjson.String {
			return nil, fmt.Errorf("expected string, got %s", result.Type)
		}
		return result.String(), nil
	}
	return nil, fmt.Errorf("unsupported type %q", t)
}

package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Rule checks a non-empty value and returns the error code it violates, or
// model.ErrorNone.
type Rule func(value any) model.ErrorCode

// Registry maps field types to rules. The required check is applied by the
// registry itself before any rule runs, so rules only ever see non-empty
// values.
type Registry struct {
	rules map[model.FieldType]Rule
}

// Option customises a Registry.
type Option func(*Registry)

// WithRule overrides or adds the rule for a field type.
func WithRule(t model.FieldType, rule Rule) Option {
	return func(r *Registry) {
		r.Register(t, rule)
	}
}

var (
	shapes = validator.New()

	defaultRegistry = NewRegistry()
)

// NewRegistry returns a registry seeded with the built-in rules for every
// model.FieldType.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		rules: map[model.FieldType]Rule{
			model.FieldTypeText:     TextRule,
			model.FieldTypePassword: TextRule,
			model.FieldTypeEmail:    EmailRule,
			model.FieldTypeMoney:    MoneyRule,
			model.FieldTypeObject:   ObjectRule,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Default returns the shared registry used by Validate.
func Default() *Registry {
	return defaultRegistry
}

// Register sets the rule for t. A nil rule removes it, leaving only the
// required check for that type.
func (r *Registry) Register(t model.FieldType, rule Rule) {
	if rule == nil {
		delete(r.rules, t)
		return
	}
	r.rules[t] = rule
}

// Validate returns the error code for value under the given type and required
// flag.
func (r *Registry) Validate(value any, t model.FieldType, required bool) model.ErrorCode {
	if IsEmpty(value) {
		if required {
			return model.ErrorMissingValue
		}
		return model.ErrorNone
	}
	if r == nil {
		return model.ErrorNone
	}
	if rule, ok := r.rules[t]; ok {
		return rule(value)
	}
	return model.ErrorNone
}

// Validate runs the default registry.
func Validate(value any, t model.FieldType, required bool) model.ErrorCode {
	return defaultRegistry.Validate(value, t, required)
}

// IsEmpty reports whether value counts as missing: nil, a blank string, or an
// empty slice, array or map.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if str, ok := value.(string); ok {
		return strings.TrimSpace(str) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// TextRule accepts any string.
func TextRule(value any) model.ErrorCode {
	if _, ok := value.(string); !ok {
		return model.ErrorFormat
	}
	return model.ErrorNone
}

// EmailRule accepts strings shaped like an e-mail address.
func EmailRule(value any) model.ErrorCode {
	str, ok := value.(string)
	if !ok {
		return model.ErrorFormat
	}
	if err := shapes.Var(strings.TrimSpace(str), "email"); err != nil {
		return model.ErrorFormat
	}
	return model.ErrorNone
}

// MoneyRule accepts non-negative integer minor units, given either as a Go
// number or an integer literal string.
func MoneyRule(value any) model.ErrorCode {
	units, ok := MoneyUnits(value)
	if !ok || units < 0 {
		return model.ErrorFormat
	}
	return model.ErrorNone
}

// ObjectRule accepts slices, arrays and maps.
func ObjectRule(value any) model.ErrorCode {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return model.ErrorNone
	}
	return model.ErrorFormat
}

// MoneyUnits extracts integer minor units from value. Strings must be plain
// integer literals; display strings are the masking engine's concern.
func MoneyUnits(value any) (int64, bool) {
	if str, ok := value.(string); ok {
		units, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
		if err != nil {
			return 0, false
		}
		return units, true
	}
	return model.MinorUnits(value)
}

package form

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tiendc/go-deepcopy"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Control is one named field: its declared schema plus live state. The error
// code is always derived from (value, type, required) and cannot be set
// directly.
type Control struct {
	field      model.Field
	value      any
	touched    bool
	dirty      bool
	err        model.ErrorCode
	validators *validation.Registry
	masks      *mask.Registry
}

// NewControl builds a control for field. The field is normalized first, so an
// empty type becomes text and a nil default becomes the type's empty value.
func NewControl(field model.Field, options ...Option) (*Control, error) {
	normalized, err := model.NewSchema(field).Normalize()
	if err != nil {
		return nil, err
	}
	cfg := newConfig(options...)
	return newControl(normalized.Fields[0], cfg), nil
}

func newControl(field model.Field, cfg config) *Control {
	c := &Control{
		field:      field,
		validators: cfg.validators,
		masks:      cfg.masks,
	}
	c.Reset()
	return c
}

// Name returns the field name.
func (c *Control) Name() string { return c.field.Name }

// Type returns the field type.
func (c *Control) Type() model.FieldType { return c.field.Type }

// Required reports whether the field must be filled.
func (c *Control) Required() bool { return c.field.Required }

// Field returns the normalized field declaration.
func (c *Control) Field() model.Field { return c.field }

// Default returns a copy of the declared default value.
func (c *Control) Default() any { return cloneValue(c.field.Default) }

// Value returns a copy of the current value.
func (c *Control) Value() any { return cloneValue(c.value) }

// Touched reports whether the control received a write or a forced
// validation since the last reset.
func (c *Control) Touched() bool { return c.touched }

// Dirty reports whether the current value differs from the default.
func (c *Control) Dirty() bool { return c.dirty }

// Err returns the current user-input error code.
func (c *Control) Err() model.ErrorCode { return c.err }

// Valid reports whether Err is model.ErrorNone.
func (c *Control) Valid() bool { return c.err == model.ErrorNone }

// SetValue writes raw into the control, marking it touched, updating dirty and
// recomputing the error. Invalid user input is kept and reported through Err;
// an error is returned only when raw cannot take the control's shape, in which
// case the control is left unchanged. Money text is read through the mask;
// text with no digits at all is such a shape error.
func (c *Control) SetValue(raw any) error {
	value, err := c.conform(raw)
	if err != nil {
		return err
	}
	c.commit(value)
	return nil
}

// ForceTouch marks the control touched without changing its value.
func (c *Control) ForceTouch() {
	c.touched = true
}

// Reset restores the default value and clears touched and dirty.
func (c *Control) Reset() {
	c.value = cloneValue(c.field.Default)
	c.touched = false
	c.dirty = false
	c.revalidate()
}

func (c *Control) commit(value any) {
	c.value = value
	c.dirty = !cmp.Equal(value, c.field.Default, cmpopts.EquateEmpty())
	c.touched = true
	c.revalidate()
}

func (c *Control) revalidate() {
	c.err = c.validators.Validate(c.value, c.field.Type, c.field.Required)
}

// conform converts raw into the Go shape of the control's default value.
func (c *Control) conform(raw any) (any, error) {
	t := c.field.Type
	switch {
	case t.Textual():
		switch typed := raw.(type) {
		case nil:
			return "", nil
		case string:
			return typed, nil
		}

	case t == model.FieldTypeMoney:
		if raw == nil {
			return int64(0), nil
		}
		if str, ok := raw.(string); ok {
			if units, ok := c.moneyFromText(str); ok {
				return units, nil
			}
			break
		}
		if units, ok := model.MinorUnits(raw); ok {
			return units, nil
		}

	case t == model.FieldTypeObject:
		if value, ok := conformObject(c.field.Default, raw); ok {
			return value, nil
		}
	}

	return nil, fmt.Errorf("%w: field %q (%s) cannot hold %T", ErrTypeMismatch, c.field.Name, t, raw)
}

// moneyFromText reads an integer literal or masked display text as minor
// units. Blank text is zero. Text without digits cannot be read; a minus sign
// before the first digit keeps the amount negative so validation reports it.
func (c *Control) moneyFromText(text string) (int64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, true
	}
	if units, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return units, true
	}

	firstDigit := strings.IndexAny(trimmed, "0123456789")
	if firstDigit < 0 {
		return 0, false
	}
	units, ok := model.MinorUnits(c.masks.ToRaw(c.field.Type, trimmed))
	if !ok {
		return 0, false
	}
	if strings.Contains(trimmed[:firstDigit], "-") {
		units = -units
	}
	return units, true
}

func conformObject(def, raw any) (any, bool) {
	target := reflect.TypeOf(def)
	if raw == nil {
		switch target.Kind() {
		case reflect.Slice:
			return reflect.MakeSlice(target, 0, 0).Interface(), true
		case reflect.Map:
			return reflect.MakeMap(target).Interface(), true
		}
		return nil, false
	}

	src := reflect.ValueOf(raw)
	if src.Type() == target {
		return cloneValue(raw), true
	}

	switch target.Kind() {
	case reflect.Slice:
		if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
			return nil, false
		}
		out := reflect.MakeSlice(target, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			if !assign(out.Index(i), src.Index(i)) {
				return nil, false
			}
		}
		return cloneValue(out.Interface()), true

	case reflect.Map:
		if src.Kind() != reflect.Map || !src.Type().Key().AssignableTo(target.Key()) {
			return nil, false
		}
		out := reflect.MakeMapWithSize(target, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			elem := reflect.New(target.Elem()).Elem()
			if !assign(elem, iter.Value()) {
				return nil, false
			}
			out.SetMapIndex(iter.Key(), elem)
		}
		return cloneValue(out.Interface()), true
	}
	return nil, false
}

func assign(dst, src reflect.Value) bool {
	for src.Kind() == reflect.Interface {
		if src.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
			return true
		}
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dst.Type()) {
		return false
	}
	dst.Set(src)
	return true
}

func cloneValue(value any) any {
	switch value.(type) {
	case nil, string, int64:
		return value
	}
	var out any
	if err := deepcopy.Copy(&out, value); err != nil {
		return value
	}
	return out
}

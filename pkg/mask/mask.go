// Package mask converts field values between their stored (raw) form and the
// string shown to the user. Only money carries a real mask; every other field
// type uses the identity transform.
package mask

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Mask is a bidirectional display/raw transform. For every valid raw value v,
// ToRaw(ToDisplay(v)) must equal v.
type Mask interface {
	ToDisplay(raw any) string
	ToRaw(display string) any
}

// Registry maps field types to masks.
type Registry struct {
	masks map[model.FieldType]Mask
}

// Option customises a Registry.
type Option func(*Registry)

// WithLocale formats money using the conventions of tag.
func WithLocale(tag language.Tag) Option {
	return func(r *Registry) {
		r.masks[model.FieldTypeMoney] = NewMoney(tag)
	}
}

// WithMask installs m for t; a nil mask restores the identity transform.
func WithMask(t model.FieldType, m Mask) Option {
	return func(r *Registry) {
		r.Register(t, m)
	}
}

// DefaultLocale is used for money when no locale is configured.
var DefaultLocale = language.BrazilianPortuguese

var defaultRegistry = NewRegistry()

// NewRegistry returns a registry with the money mask in DefaultLocale.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		masks: map[model.FieldType]Mask{
			model.FieldTypeMoney: NewMoney(DefaultLocale),
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Default returns the shared registry.
func Default() *Registry {
	return defaultRegistry
}

// Register installs m for t.
func (r *Registry) Register(t model.FieldType, m Mask) {
	if m == nil {
		delete(r.masks, t)
		return
	}
	r.masks[t] = m
}

// HasMask reports whether t uses a non-identity transform.
func (r *Registry) HasMask(t model.FieldType) bool {
	if r == nil {
		return false
	}
	_, ok := r.masks[t]
	return ok
}

// ToDisplay renders raw for presentation.
func (r *Registry) ToDisplay(t model.FieldType, raw any) string {
	if r != nil {
		if m, ok := r.masks[t]; ok {
			return m.ToDisplay(raw)
		}
	}
	return identityDisplay(raw)
}

// ToRaw parses a display string back into the stored value.
func (r *Registry) ToRaw(t model.FieldType, display string) any {
	if r != nil {
		if m, ok := r.masks[t]; ok {
			return m.ToRaw(display)
		}
	}
	return display
}

// ToDisplay uses the default registry.
func ToDisplay(t model.FieldType, raw any) string {
	return defaultRegistry.ToDisplay(t, raw)
}

// ToRaw uses the default registry.
func ToRaw(t model.FieldType, display string) any {
	return defaultRegistry.ToRaw(t, display)
}

func identityDisplay(raw any) string {
	switch typed := raw.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

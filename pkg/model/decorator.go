package model

import "fmt"

// Decorator adjusts a schema before a form is built from it, for example to
// seed defaults from the entity being edited.
type Decorator interface {
	Decorate(*Schema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Schema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *Schema) error {
	return fn(schema)
}

// Apply runs decorators in order against a copy of schema and returns the
// normalized result. The input schema is never modified.
func Apply(schema Schema, decorators ...Decorator) (Schema, error) {
	out := NewSchema(schema.Fields...)
	for idx, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return Schema{}, fmt.Errorf("model: decorator %d: %w", idx, err)
		}
	}
	return out.Normalize()
}

// Package model defines the declarative field schema consumed by the form
// engine. A Schema is an ordered list of Field declarations; order is the
// declaration order and drives every iteration the engine performs
// (validation, error reporting, prompting). Each Field names one of the closed
// FieldType values, whether it is required, and a typed default: strings for
// text, email and password, int64 minor units for money, and a slice or
// map[string]any for object. Schemas can be declared in Go, parsed from YAML
// (preserving mapping order) or derived from an OpenAPI request body, and
// decorators such as DefaultsFromJSON seed defaults from an existing entity
// document before a form is built.
package model

// Package formstate is the entry point of the form state engine. It re-exports
// the types most callers need and wires the document fetcher and OpenAPI parser.
//
// A typical edit screen:
//
//	schema, _ := formstate.ParseSchema(planYAML)
//	o := formstate.NewOrchestrator(
//		orchestrator.WithDecorators(model.DefaultsFromJSON(record)),
//		orchestrator.WithSubmitHandler(save),
//	)
//	group, _ := o.Use(schema, plan.ID)
//	name, _ := o.Bind("name")
//	_ = name.Update("Plano Ouro")
//	o.Submit()
package formstate

import (
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

// Schema aliases model.Schema.
type Schema = model.Schema

// Field aliases model.Field.
type Field = model.Field

// FieldType aliases model.FieldType.
type FieldType = model.FieldType

// ErrorCode aliases model.ErrorCode.
type ErrorCode = model.ErrorCode

// Group aliases form.Group.
type Group = form.Group

// Binder aliases form.Binder.
type Binder = form.Binder

// Binding aliases form.Binding.
type Binding = form.Binding

// Messages aliases form.Messages.
type Messages = form.Messages

// NewSchema builds a schema from fields in declaration order.
func NewSchema(fields ...Field) Schema {
	return model.NewSchema(fields...)
}

// ParseSchema decodes a YAML schema declaration.
func ParseSchema(raw []byte) (Schema, error) {
	return model.ParseYAML(raw)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

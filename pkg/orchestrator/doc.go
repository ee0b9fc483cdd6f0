// Package orchestrator is the hook-style entry point of the form engine. An
// Orchestrator builds a form.Group from a schema, rebuilds it when the
// caller's dependency values change (for example when a modal switches from
// creating a plan to editing one), forwards committed mutations to a change
// handler and runs the submit flow: ValidateAll, then the submit handler with
// a values snapshot only when every control is valid.
//
// A typical page keeps one Orchestrator for its lifetime and calls Use on
// every render:
//
//	o := orchestrator.New(
//		orchestrator.WithSubmitHandler(func(values map[string]any) { save(values) }),
//	)
//	group, err := o.Use(schema, plan.ID)
//	...
//	o.Submit()
package orchestrator

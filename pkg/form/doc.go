// Package form implements the runtime side of the engine: Control holds one
// field's live state, Group owns an ordered set of controls plus an observer
// list, and Binder projects a single control into the read/write contract a
// rendering layer consumes.
//
// All operations are synchronous and a Group has a single owner; nothing in
// this package locks. User-input problems are represented as model.ErrorCode
// values on controls and never returned as errors. Programming mistakes such
// as writing a field the schema does not declare (ErrUnknownField) or handing
// a control a Go value its type cannot hold (ErrTypeMismatch) abort the whole
// operation and leave every control unchanged.
package form

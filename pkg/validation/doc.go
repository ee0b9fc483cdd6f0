// Package validation maps a raw value, its declared field type and the
// required flag to a model.ErrorCode. Validators are pure and deterministic so
// they can run on every keystroke. The package-level Validate uses a shared
// default Registry; callers needing extra rules build their own with
// NewRegistry and Register.
package validation

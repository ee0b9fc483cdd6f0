// Package openapi derives form schemas from OpenAPI request bodies.
//
// The package only exposes the Operation and Schema views and the Parser
// contract; documents are read through a source.Fetcher and the kin-openapi
// backed parser lives under internal/openapi. The formstate package wires both:
//
//	fetcher := formstate.NewFetcher(source.WithFileSystem(specs))
//	schema, err := openapi.SchemaFromOperation(ctx, fetcher, formstate.NewParser(),
//		source.FS("admin.yaml"), "createPlan")
//
// Request body properties become fields. The field type is taken from the
// x-formstate-type extension when present, otherwise from format (email,
// password, money) and finally from the JSON type (array and object map to
// object, everything else to text).
package openapi

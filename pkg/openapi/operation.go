package openapi

// Operation is the subset of an OpenAPI operation a form needs: its identity
// and the request body schema.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	RequestBody Schema
	Extensions  map[string]any
}

// Schema is a simplified view of an OpenAPI schema object. Extensions only
// carries x-formstate* keys.
type Schema struct {
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Extensions  map[string]any
}

// IsRequired reports whether name is listed in the schema's required list.
func (s Schema) IsRequired(name string) bool {
	for _, candidate := range s.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

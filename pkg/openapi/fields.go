package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/source"
)

const (
	// ExtensionType overrides the derived field type.
	ExtensionType = "x-formstate-type"
	// ExtensionOrder lists property names in display order.
	ExtensionOrder = "x-formstate-order"
	// ExtensionPlaceholder sets the field placeholder.
	ExtensionPlaceholder = "x-formstate-placeholder"
)

var (
	// ErrOperationNotFound is returned when the document has no operation with
	// the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when an operation has no object request body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
)

// SchemaFromOperation fetches the document at ref, finds operationID and
// converts its request body into a normalized form schema.
func SchemaFromOperation(ctx context.Context, fetcher source.Fetcher, parser Parser, ref source.Ref, operationID string) (model.Schema, error) {
	if fetcher == nil || parser == nil {
		return model.Schema{}, errors.New("openapi: fetcher and parser are required")
	}
	doc, err := fetcher.Fetch(ctx, ref)
	if err != nil {
		return model.Schema{}, err
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return model.Schema{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return model.Schema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	return FormSchema(op)
}

// FormSchema converts the request body of op into a normalized form schema.
// Property order follows x-formstate-order (on the body or the operation);
// properties it does not list come after it, sorted by name.
func FormSchema(op Operation) (model.Schema, error) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return model.Schema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, op.ID)
	}

	order := stringList(body.Extensions[ExtensionOrder])
	if len(order) == 0 {
		order = stringList(op.Extensions[ExtensionOrder])
	}

	schema := model.Schema{Fields: make([]model.Field, 0, len(body.Properties))}
	for _, name := range propertyOrder(body.Properties, order) {
		property := body.Properties[name]
		schema.Fields = append(schema.Fields, model.Field{
			Name:        name,
			Type:        fieldType(property),
			Required:    body.IsRequired(name),
			Default:     property.Default,
			Label:       property.Title,
			Placeholder: stringValue(property.Extensions[ExtensionPlaceholder]),
			Help:        property.Description,
			Options:     options(property),
		})
	}

	normalized, err := schema.Normalize()
	if err != nil {
		return model.Schema{}, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
	}
	return normalized, nil
}

func fieldType(s Schema) model.FieldType {
	if override := model.FieldType(stringValue(s.Extensions[ExtensionType])); override.Known() {
		return override
	}
	switch strings.ToLower(s.Format) {
	case "email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	case "money":
		return model.FieldTypeMoney
	}
	switch s.Type {
	case "array", "object":
		return model.FieldTypeObject
	}
	return model.FieldTypeText
}

func options(s Schema) []string {
	enum := s.Enum
	if len(enum) == 0 && s.Items != nil {
		enum = s.Items.Enum
	}
	if len(enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func propertyOrder(properties map[string]Schema, order []string) []string {
	names := make([]string, 0, len(properties))
	seen := make(map[string]bool, len(properties))
	for _, name := range order {
		if _, ok := properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}

	rest := make([]string, 0, len(properties)-len(names))
	for name := range properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func stringValue(value any) string {
	str, _ := value.(string)
	return str
}

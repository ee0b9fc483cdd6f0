package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
)

func TestParseYAML_PreservesDeclarationOrder(t *testing.T) {
	raw := []byte(`
name:
  required: true
  label: Nome
price:
  type: money
  default: 2500
description:
  type: text
permissions:
  type: object
  required: true
  options: [users.read, users.write]
`)

	schema, err := model.ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := model.NewSchema(
		model.Field{Name: "name", Type: model.FieldTypeText, Required: true, Default: "", Label: "Nome"},
		model.Field{Name: "price", Type: model.FieldTypeMoney, Default: int64(2500)},
		model.Field{Name: "description", Type: model.FieldTypeText, Default: ""},
		model.Field{
			Name:     "permissions",
			Type:     model.FieldTypeObject,
			Required: true,
			Default:  []any{},
			Options:  []string{"users.read", "users.write"},
		},
	)
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_NullFieldUsesDefaults(t *testing.T) {
	schema, err := model.ParseYAML([]byte("nickname:\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field, ok := schema.Lookup("nickname")
	if !ok {
		t.Fatalf("expected nickname field")
	}
	if field.Type != model.FieldTypeText || field.Default != "" {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestParseYAML_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"sequence":     "- name\n- price\n",
		"unknown type": "color:\n  type: color\n",
		"bad syntax":   "name: [\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := model.ParseYAML([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

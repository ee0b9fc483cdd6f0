package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/model"
)

func TestSchemaNormalize_Defaults(t *testing.T) {
	schema := model.NewSchema(
		model.Field{Name: "name", Required: true},
		model.Field{Name: "email", Type: model.FieldTypeEmail},
		model.Field{Name: "price", Type: model.FieldTypeMoney, Default: 1500},
		model.Field{Name: "permissions", Type: model.FieldTypeObject},
	)

	got, err := schema.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	want := model.NewSchema(
		model.Field{Name: "name", Type: model.FieldTypeText, Required: true, Default: ""},
		model.Field{Name: "email", Type: model.FieldTypeEmail, Default: ""},
		model.Field{Name: "price", Type: model.FieldTypeMoney, Default: int64(1500)},
		model.Field{Name: "permissions", Type: model.FieldTypeObject, Default: []any{}},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized schema mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email", "price", "permissions"}, got.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaNormalize_Errors(t *testing.T) {
	cases := []struct {
		name   string
		schema model.Schema
		want   error
	}{
		{
			name:   "empty name",
			schema: model.NewSchema(model.Field{Name: "  "}),
			want:   model.ErrEmptyFieldName,
		},
		{
			name:   "duplicate",
			schema: model.NewSchema(model.Field{Name: "name"}, model.Field{Name: "name"}),
			want:   model.ErrDuplicateField,
		},
		{
			name:   "unknown type",
			schema: model.NewSchema(model.Field{Name: "color", Type: "color"}),
			want:   model.ErrUnknownFieldType,
		},
		{
			name:   "fractional money default",
			schema: model.NewSchema(model.Field{Name: "price", Type: model.FieldTypeMoney, Default: 10.5}),
			want:   model.ErrDefaultShape,
		},
		{
			name:   "scalar object default",
			schema: model.NewSchema(model.Field{Name: "roles", Type: model.FieldTypeObject, Default: "admin"}),
			want:   model.ErrDefaultShape,
		},
		{
			name:   "numeric text default",
			schema: model.NewSchema(model.Field{Name: "name", Default: 3}),
			want:   model.ErrDefaultShape,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.schema.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSchemaWith_ReplacesInPlace(t *testing.T) {
	schema := model.NewSchema(
		model.Field{Name: "name"},
		model.Field{Name: "description"},
	)

	updated := schema.With(model.Field{Name: "name", Required: true})
	updated = updated.With(model.Field{Name: "color"})

	if diff := cmp.Diff([]string{"name", "description", "color"}, updated.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	field, ok := updated.Lookup("name")
	if !ok || !field.Required {
		t.Fatalf("expected name to be replaced with required field, got %+v", field)
	}
	if original, _ := schema.Lookup("name"); original.Required {
		t.Fatalf("expected original schema to stay untouched")
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: 10, want: 10, ok: true},
		{in: int32(-4), want: -4, ok: true},
		{in: uint8(7), want: 7, ok: true},
		{in: 12.0, want: 12, ok: true},
		{in: 12.5, ok: false},
		{in: "12", ok: false},
		{in: nil, ok: false},
	}
	for _, tc := range cases {
		got, ok := model.MinorUnits(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("MinorUnits(%v) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

package source_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/source"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want source.Ref
	}{
		{raw: "schemas/plan.yaml", want: source.Ref{Kind: source.KindFile, Location: "schemas/plan.yaml"}},
		{raw: " ./records/../records/user.json ", want: source.Ref{Kind: source.KindFile, Location: "records/user.json"}},
		{raw: "fs:schemas/plan.yaml", want: source.Ref{Kind: source.KindFS, Location: "schemas/plan.yaml"}},
		{raw: "https://store.example.com/plans/42?rev=3", want: source.Ref{Kind: source.KindURL, Location: "https://store.example.com/plans/42?rev=3"}},
	}
	for _, tt := range tests {
		got, err := source.Parse(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("parse %q mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}

	for _, raw := range []string{"", "   ", "http://", "https:///plans"} {
		if _, err := source.Parse(raw); !errors.Is(err, source.ErrInvalidRef) {
			t.Fatalf("parse %q: expected ErrInvalidRef, got %v", raw, err)
		}
	}
	if _, err := source.URL("ftp://store.example.com/plan.json"); !errors.Is(err, source.ErrInvalidRef) {
		t.Fatalf("expected ftp to be rejected, got %v", err)
	}
}

func TestRefString(t *testing.T) {
	ref := source.FS("/records/user.json")
	if got := ref.String(); got != "fs:records/user.json" {
		t.Fatalf("unexpected ref string %q", got)
	}
	if ref.Remote() {
		t.Fatalf("fs refs are local")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		mediaType string
		data      string
		want      source.Format
	}{
		{name: "media type wins", location: "plan.yaml", mediaType: "application/json; charset=utf-8", data: "a: b", want: source.FormatJSON},
		{name: "yaml media type", location: "plan", mediaType: "application/yaml", data: "{}", want: source.FormatYAML},
		{name: "extension", location: "https://store.example.com/plan.yml?rev=2", data: "{}", want: source.FormatYAML},
		{name: "json extension", location: "records/USER.JSON", data: "a: b", want: source.FormatJSON},
		{name: "sniff object", location: "plans/42", mediaType: "text/plain", data: "\n  {\"name\": \"x\"}", want: source.FormatJSON},
		{name: "sniff yaml", location: "plans/42", data: "name: x", want: source.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := source.DetectFormat(tt.location, tt.mediaType, []byte(tt.data)); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewDocumentRejectsEmpty(t *testing.T) {
	if _, err := source.NewDocument(source.File("plan.json"), []byte(" \n\t"), ""); !errors.Is(err, source.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

// Package testsupport loads schema and record fixtures and manages golden
// files for package tests. Goldens are rewritten when UPDATE_GOLDENS is set.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/internal/fetch"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/source"
)

var fixtures = fetch.New(source.NewOptions())

// MustLoadSchema reads a YAML schema fixture.
func MustLoadSchema(t *testing.T, path string) model.Schema {
	t.Helper()

	schema, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return schema
}

// LoadSchema reads a YAML schema fixture without requiring testing.T.
func LoadSchema(path string) (model.Schema, error) {
	if path == "" {
		return model.Schema{}, errors.New("testsupport: schema path is required")
	}
	schema, err := source.LoadSchema(Context(), fixtures, source.File(path))
	if err != nil {
		return model.Schema{}, fmt.Errorf("testsupport: %w", err)
	}
	return schema, nil
}

// MustReadRecord reads a JSON entity record fixture and checks it is valid
// JSON.
func MustReadRecord(t *testing.T, path string) []byte {
	t.Helper()

	doc, err := fixtures.Fetch(Context(), source.File(path))
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if doc.Format != source.FormatJSON || !json.Valid(doc.Data) {
		t.Fatalf("record %s is not valid JSON", path)
	}
	return doc.Data
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareJSONGolden marshals got through JSON and diffs it against the golden
// at path, so int64 and float64 numbers compare equal.
func CompareJSONGolden(t *testing.T, path string, got any) string {
	t.Helper()

	WriteGolden(t, path, got)

	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var normalized any
	if err := json.Unmarshal(payload, &normalized); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	return cmp.Diff(want, normalized)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

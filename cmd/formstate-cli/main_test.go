package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
	"github.com/goliatone/go-formstate/pkg/source"
)

const plansOpenAPI = `openapi: 3.0.3
info: {title: Plans, version: "1"}
paths:
  /plans:
    post:
      operationId: createPlan
      requestBody:
        content:
          application/json:
            schema:
              type: object
              x-formstate-order: [name, price]
              properties:
                name: {type: string}
                price: {type: integer, format: money}
      responses:
        "201": {description: created}
`

func newDocumentStore(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/schemas/plan.yaml":
			_, _ = w.Write([]byte("name:\n  type: text\n  required: true\nprice:\n  type: money\n"))
		case "/openapi.yaml":
			_, _ = w.Write([]byte(plansOpenAPI))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadSchemaFromEverySource(t *testing.T) {
	server := newDocumentStore(t)
	fetcher := formstate.NewFetcher(source.WithRemote(time.Second))

	path := filepath.Join(t.TempDir(), "plan.json")
	if err := os.WriteFile(path, []byte(`{"name": {"type": "text"}, "price": {"type": "money"}}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cases := []config{
		{schema: path},
		{schema: server.URL + "/schemas/plan.yaml"},
		{openapi: server.URL + "/openapi.yaml", operation: "createPlan"},
	}
	for _, cfg := range cases {
		schema, err := loadSchema(context.Background(), fetcher, cfg)
		if err != nil {
			t.Fatalf("load %+v: %v", cfg, err)
		}
		if diff := cmp.Diff([]string{"name", "price"}, schema.Names()); diff != "" {
			t.Fatalf("load %+v names mismatch (-want +got):\n%s", cfg, diff)
		}
	}

	invalid := []config{
		{},
		{schema: path, openapi: server.URL + "/openapi.yaml"},
		{openapi: server.URL + "/openapi.yaml"},
	}
	for _, cfg := range invalid {
		if _, err := loadSchema(context.Background(), fetcher, cfg); err == nil {
			t.Fatalf("expected %+v to be rejected", cfg)
		}
	}
}

func TestRunFailsOnMissingRecordBeforePrompting(t *testing.T) {
	server := newDocumentStore(t)

	err := run(context.Background(), zap.NewNop(), config{
		schema:  server.URL + "/schemas/plan.yaml",
		record:  server.URL + "/plans/404",
		timeout: time.Second,
		locale:  "pt-BR",
	})
	if !errors.Is(err, source.ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	cases := map[error]int{
		nil:                                  0,
		tui.ErrAborted:                       130,
		fmt.Errorf("tui: %w", tui.ErrAborted): 130,
		source.ErrRemoteDisabled:             1,
	}
	for err, want := range cases {
		if got := exitCode(err); got != want {
			t.Fatalf("exitCode(%v) = %d, want %d", err, got, want)
		}
	}
}

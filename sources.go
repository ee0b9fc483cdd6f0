package formstate

import (
	"context"

	"github.com/goliatone/go-formstate/internal/fetch"
	internalParser "github.com/goliatone/go-formstate/internal/openapi/parser"
	"github.com/goliatone/go-formstate/pkg/model"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/source"
)

// NewFetcher constructs a document fetcher for files, fs.FS entries and, when
// enabled, HTTP(S) URLs.
func NewFetcher(options ...source.Option) source.Fetcher {
	return fetch.New(source.NewOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadSchema fetches and parses a YAML or JSON schema declaration.
func LoadSchema(ctx context.Context, ref source.Ref, options ...source.Option) (model.Schema, error) {
	return source.LoadSchema(ctx, NewFetcher(options...), ref)
}

// LoadRecord fetches an entity record and returns the decorator that seeds
// field defaults from it.
func LoadRecord(ctx context.Context, ref source.Ref, options ...source.Option) (model.Decorator, error) {
	return source.LoadRecord(ctx, NewFetcher(options...), ref)
}

// SchemaFromOperation derives a form schema from the request body of
// operationID using the default parser.
func SchemaFromOperation(ctx context.Context, ref source.Ref, operationID string, options ...source.Option) (model.Schema, error) {
	return pkgopenapi.SchemaFromOperation(ctx, NewFetcher(options...), NewParser(), ref, operationID)
}

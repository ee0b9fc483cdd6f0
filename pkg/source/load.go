package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/model"
)

// LoadSchema fetches a schema declaration and parses it. JSON declarations
// are accepted since they are valid YAML; key order is kept either way.
func LoadSchema(ctx context.Context, fetcher Fetcher, ref Ref) (model.Schema, error) {
	doc, err := fetch(ctx, fetcher, ref)
	if err != nil {
		return model.Schema{}, err
	}
	schema, err := model.ParseYAML(doc.Data)
	if err != nil {
		return model.Schema{}, fmt.Errorf("source: schema %s: %w", ref, err)
	}
	return schema, nil
}

// LoadRecord fetches an entity record and returns a decorator that seeds
// field defaults from it. YAML records are converted to JSON first.
func LoadRecord(ctx context.Context, fetcher Fetcher, ref Ref) (model.Decorator, error) {
	doc, err := fetch(ctx, fetcher, ref)
	if err != nil {
		return nil, err
	}
	data, err := recordJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("source: record %s: %w", ref, err)
	}
	return model.DefaultsFromJSON(data), nil
}

func recordJSON(doc Document) ([]byte, error) {
	if doc.Format == FormatJSON {
		if !gjson.ValidBytes(doc.Data) {
			return nil, model.ErrInvalidDocument
		}
		return doc.Data, nil
	}

	var value any
	if err := yaml.Unmarshal(doc.Data, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidDocument, err)
	}
	if _, ok := value.(map[string]any); !ok {
		return nil, fmt.Errorf("%w: record must be a mapping", model.ErrInvalidDocument)
	}
	return json.Marshal(value)
}

func fetch(ctx context.Context, fetcher Fetcher, ref Ref) (Document, error) {
	if fetcher == nil {
		return Document{}, errors.New("source: fetcher is required")
	}
	return fetcher.Fetch(ctx, ref)
}

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
)

const defaultMaxAttempts = 3

// Renderer drives a form from the terminal. Every field is prompted through
// its Binder, so masking, validation and touch tracking stay in the engine;
// the renderer only turns answers into Update calls.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *zap.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Run prompts every field of the orchestrator's live group in declaration
// order and submits. While submit is blocked, the error of each invalid field
// is shown and only those fields are prompted again, up to the configured
// number of extra rounds. The submitted values are returned.
func (r *Renderer) Run(ctx context.Context, o *orchestrator.Orchestrator) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	binders, err := o.Binders()
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	pending := binders
	for round := 0; ; round++ {
		for _, binder := range pending {
			if err := r.promptBinder(ctx, binder); err != nil {
				return nil, err
			}
		}
		if o.Submit() {
			return o.Values()
		}

		pending = invalidBinders(binders)
		r.logger.Debug("tui: submit blocked", zap.Int("round", round), zap.Int("invalid", len(pending)))
		if round >= r.maxAttempts {
			names := make([]string, 0, len(pending))
			for _, binder := range pending {
				names = append(names, binder.Name())
			}
			return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.Join(names, ", "))
		}
		for _, binder := range pending {
			snapshot := binder.Snapshot()
			field := fieldOf(binder)
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, displayLabel(field), snapshot.ErrorMessage))
		}
	}
}

// Render runs the form and serializes the submitted values.
func (r *Renderer) Render(ctx context.Context, o *orchestrator.Orchestrator) ([]byte, error) {
	values, err := r.Run(ctx, o)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(o.Group(), values)
}

func (r *Renderer) promptBinder(ctx context.Context, binder *form.Binder) error {
	field := fieldOf(binder)
	label := displayLabel(field)

	for {
		input, err := r.ask(ctx, field, binder.Snapshot())
		if errors.Is(err, errRetry) {
			continue
		}
		if err != nil {
			return err
		}

		err = binder.Update(input)
		if errors.Is(err, form.ErrTypeMismatch) {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: unsupported value", r.theme.ErrorPrefix, label))
			continue
		}
		return err
	}
}

// errRetry asks promptBinder to prompt the same field again.
var errRetry = errors.New("tui: retry")

func (r *Renderer) ask(ctx context.Context, field model.Field, snapshot form.Binding) (any, error) {
	label := displayLabel(field)
	switch field.Type {
	case model.FieldTypePassword:
		return r.driver.Password(ctx, InputConfig{
			Message: label,
			Help:    field.Help,
		})

	case model.FieldTypeObject:
		if len(field.Options) > 0 && reflect.ValueOf(field.Default).Kind() == reflect.Slice {
			indices, err := r.driver.MultiSelect(ctx, SelectConfig{
				Message:  label,
				Options:  field.Options,
				Defaults: indicesOf(field.Options, stringifySlice(snapshot.Value)),
				Help:     field.Help,
			})
			if err != nil {
				return nil, err
			}
			return toAnySlice(valuesFromIndices(field.Options, indices)), nil
		}

		current, _ := json.Marshal(snapshot.Value)
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: label + " (JSON)",
			Default: string(current),
			Help:    field.Help,
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		var value any
		if err := json.Unmarshal([]byte(text), &value); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %v", r.theme.ErrorPrefix, label, err))
			return nil, errRetry
		}
		return value, nil

	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     label,
			Default:     snapshot.MaskedValue,
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
	}
}

func (r *Renderer) serialize(group *form.Group, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(group, values)), nil
	default:
		return json.Marshal(values)
	}
}

func fieldOf(binder *form.Binder) model.Field {
	control, err := binder.Group().Control(binder.Name())
	if err != nil {
		return model.Field{Name: binder.Name()}
	}
	return control.Field()
}

func invalidBinders(binders []*form.Binder) []*form.Binder {
	var out []*form.Binder
	for _, binder := range binders {
		if binder.Snapshot().IsInvalid {
			out = append(out, binder)
		}
	}
	return out
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func stringifySlice(value any) []string {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, fmt.Sprint(rv.Index(i).Interface()))
	}
	return out
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flatten(key, value, flattened)
	}
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(prefix+"."+key, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

// prettyPrint writes one "label: value" line per field in declaration order,
// using the masked display for fields the group knows. Keys added by a submit
// transformer follow, sorted.
func prettyPrint(group *form.Group, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]bool, len(values))
	if group != nil {
		for _, name := range group.Names() {
			value, ok := values[name]
			if !ok {
				continue
			}
			seen[name] = true
			control, _ := group.Control(name)
			fmt.Fprintf(&b, "%s: %s\n", displayLabel(control.Field()), displayValue(group, control.Type(), value))
		}
	}

	extra := make([]string, 0, len(values))
	for key := range values {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s: %v\n", key, values[key])
	}
	return b.String()
}

func displayValue(group *form.Group, t model.FieldType, value any) string {
	if items := stringifySlice(value); items != nil {
		return strings.Join(items, ", ")
	}
	return group.Display(t, value)
}

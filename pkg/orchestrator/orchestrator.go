package orchestrator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// ErrNotBuilt is returned by the imperative handle before the first Use call.
var ErrNotBuilt = errors.New("orchestrator: form has not been built")

// ChangeHandler runs after every committed mutation of the live group.
type ChangeHandler func(*form.Group)

// SubmitHandler receives the values snapshot of a group that passed
// ValidateAll. Any asynchronous work it starts is the caller's to track.
type SubmitHandler func(values map[string]any)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithChangeHandler registers the change callback.
func WithChangeHandler(fn ChangeHandler) Option {
	return func(o *Orchestrator) {
		o.onChange = fn
	}
}

// WithSubmitHandler registers the submit callback.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(o *Orchestrator) {
		o.onSubmit = fn
	}
}

// WithLogger sets the logger shared with every group the orchestrator builds.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidators replaces the validator registry used by built groups.
func WithValidators(registry *validation.Registry) Option {
	return func(o *Orchestrator) {
		o.validators = registry
	}
}

// WithMasks replaces the masking registry used by built groups.
func WithMasks(registry *mask.Registry) Option {
	return func(o *Orchestrator) {
		o.masks = registry
	}
}

// WithMessages sets the error message table handed to binders.
func WithMessages(messages form.Messages) Option {
	return func(o *Orchestrator) {
		o.messages = messages
	}
}

// WithSanitizer installs a markup sanitizer on every binder.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.sanitizer = policy
	}
}

// WithDecorators registers schema decorators applied on every (re)build.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// Orchestrator is the caller-visible handle of a form. It owns at most one
// live Group, rebuilt from scratch whenever the dependency values passed to
// Use change; the Orchestrator itself keeps its identity across rebuilds.
type Orchestrator struct {
	onChange   ChangeHandler
	onSubmit   SubmitHandler
	logger     *zap.Logger
	validators *validation.Registry
	masks      *mask.Registry
	messages   form.Messages
	sanitizer  *bluemonday.Policy
	decorators []model.Decorator

	group      *form.Group
	deps       []any
	generation int
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Use returns the live group, building it from schema on the first call and
// rebuilding it whenever deps differ by value from the previous call. The
// schema is only read when a build happens. Deps are compared structurally,
// unexported fields included; types with an Equal method use it.
func (o *Orchestrator) Use(schema model.Schema, deps ...any) (*form.Group, error) {
	if err := o.rebuildIfDepsChanged(schema, deps); err != nil {
		return nil, err
	}
	return o.group, nil
}

func (o *Orchestrator) rebuildIfDepsChanged(schema model.Schema, deps []any) error {
	if o.group != nil && depsEqual(o.deps, deps) {
		return nil
	}

	decorated, err := model.Apply(schema, o.decorators...)
	if err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}

	options := []form.Option{
		form.WithLogger(o.logger),
		form.WithValidators(o.validators),
		form.WithMasks(o.masks),
	}
	if o.onChange != nil {
		options = append(options, form.WithChangeHandler(func(g *form.Group) {
			o.onChange(g)
		}))
	}

	group, err := form.NewGroup(decorated, options...)
	if err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}

	if o.group != nil {
		o.group.Detach()
	}
	o.group = group
	o.deps = append([]any(nil), deps...)
	o.generation++

	o.logger.Debug("orchestrator: built form group",
		zap.Int("generation", o.generation),
		zap.Strings("fields", group.Names()),
	)
	return nil
}

var depsOptions = cmp.Options{
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	return cmp.Equal(prev, next, depsOptions)
}

// Generation counts how many groups have been built.
func (o *Orchestrator) Generation() int { return o.generation }

// Group returns the live group, or nil before the first Use call.
func (o *Orchestrator) Group() *form.Group { return o.group }

// Bind returns a binder on the live group configured with the orchestrator's
// message table and sanitizer. Binders must be re-created after a rebuild.
func (o *Orchestrator) Bind(name string) (*form.Binder, error) {
	if o.group == nil {
		return nil, ErrNotBuilt
	}
	return form.Bind(o.group, name, o.bindOptions()...)
}

// Binders returns one binder per field, in declaration order.
func (o *Orchestrator) Binders() ([]*form.Binder, error) {
	if o.group == nil {
		return nil, ErrNotBuilt
	}
	names := o.group.Names()
	binders := make([]*form.Binder, 0, len(names))
	for _, name := range names {
		binder, err := form.Bind(o.group, name, o.bindOptions()...)
		if err != nil {
			return nil, err
		}
		binders = append(binders, binder)
	}
	return binders, nil
}

func (o *Orchestrator) bindOptions() []form.BindOption {
	options := []form.BindOption{form.WithMessages(o.messages)}
	if o.sanitizer != nil {
		options = append(options, form.WithSanitizer(o.sanitizer))
	}
	return options
}

// Submit validates every control. When the group is valid the submit handler
// receives a values snapshot and Submit returns true; otherwise the invalid
// controls are now touched and nothing else happens.
func (o *Orchestrator) Submit() bool {
	if o.group == nil {
		return false
	}
	if !o.group.ValidateAll() {
		o.logger.Debug("orchestrator: submit blocked by invalid fields",
			zap.Any("errors", o.group.Errors()),
		)
		return false
	}
	if o.onSubmit != nil {
		o.onSubmit(o.group.Values())
	}
	return true
}

// SetValues delegates to the live group.
func (o *Orchestrator) SetValues(partial map[string]any) error {
	if o.group == nil {
		return ErrNotBuilt
	}
	return o.group.SetValues(partial)
}

// Reset delegates to the live group.
func (o *Orchestrator) Reset() error {
	if o.group == nil {
		return ErrNotBuilt
	}
	o.group.Reset()
	return nil
}

// Values delegates to the live group.
func (o *Orchestrator) Values() (map[string]any, error) {
	if o.group == nil {
		return nil, ErrNotBuilt
	}
	return o.group.Values(), nil
}

// ValidateAll delegates to the live group.
func (o *Orchestrator) ValidateAll() bool {
	if o.group == nil {
		return false
	}
	return o.group.ValidateAll()
}

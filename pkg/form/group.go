package form

import (
	"fmt"
	"sort"

	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/mask"
	"github.com/goliatone/go-formstate/pkg/model"
)

// Listener observes committed group mutations.
type Listener func(*Group)

type subscription struct {
	id int
	fn Listener
}

// Group is a named collection of controls built from one schema snapshot.
// Validity is never stored; it is recomputed from the controls on demand.
type Group struct {
	schema    model.Schema
	controls  []*Control
	index     map[string]*Control
	listeners []subscription
	nextID    int
	onChange  func(*Group)
	masks     *mask.Registry
	logger    *zap.Logger
	detached  bool
}

// NewGroup validates schema and builds one control per field, in declaration
// order, each starting at its default value.
func NewGroup(schema model.Schema, options ...Option) (*Group, error) {
	normalized, err := schema.Normalize()
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	cfg := newConfig(options...)
	g := &Group{
		schema:   normalized,
		controls: make([]*Control, 0, normalized.Len()),
		index:    make(map[string]*Control, normalized.Len()),
		onChange: cfg.onChange,
		masks:    cfg.masks,
		logger:   cfg.logger,
	}
	for _, field := range normalized.Fields {
		control := newControl(field, cfg)
		g.controls = append(g.controls, control)
		g.index[field.Name] = control
	}
	return g, nil
}

// Schema returns the normalized schema the group was built from.
func (g *Group) Schema() model.Schema { return g.schema }

// Names returns the control names in declaration order.
func (g *Group) Names() []string { return g.schema.Names() }

// Control returns the control registered under name.
func (g *Group) Control(name string) (*Control, error) {
	control, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return control, nil
}

// Valid reports whether every control is free of errors.
func (g *Group) Valid() bool {
	for _, control := range g.controls {
		if !control.Valid() {
			return false
		}
	}
	return true
}

// Errors lists the controls currently in error, in declaration order.
func (g *Group) Errors() []FieldError {
	var out []FieldError
	for _, control := range g.controls {
		if code := control.Err(); code != model.ErrorNone {
			out = append(out, FieldError{Field: control.Name(), Code: code})
		}
	}
	return out
}

// Values returns a deep copy of the current value of every control.
func (g *Group) Values() map[string]any {
	values := make(map[string]any, len(g.controls))
	for _, control := range g.controls {
		values[control.Name()] = control.value
	}
	var snapshot map[string]any
	if err := deepcopy.Copy(&snapshot, values); err != nil {
		g.logger.Warn("form: values snapshot fell back to per-control copies", zap.Error(err))
		for name, value := range values {
			values[name] = cloneValue(value)
		}
		return values
	}
	return snapshot
}

// Display formats value with the group's mask for t.
func (g *Group) Display(t model.FieldType, value any) string {
	return g.masks.ToDisplay(t, value)
}

// SetValues writes every entry of partial into its control, validating in
// declaration order, then notifies subscribers once and runs the change
// handler. Unknown names or values a control cannot hold abort the call before
// any control changes.
func (g *Group) SetValues(partial map[string]any) error {
	if len(partial) == 0 {
		return nil
	}

	if unknown := g.unknownNames(partial); len(unknown) > 0 {
		g.logger.Debug("form: rejected write to undeclared fields", zap.Strings("fields", unknown))
		return fmt.Errorf("%w: %q", ErrUnknownField, unknown[0])
	}

	type staged struct {
		control *Control
		value   any
	}
	pending := make([]staged, 0, len(partial))
	for _, control := range g.controls {
		raw, ok := partial[control.Name()]
		if !ok {
			continue
		}
		value, err := control.conform(raw)
		if err != nil {
			g.logger.Debug("form: rejected write with mismatched type",
				zap.String("field", control.Name()),
				zap.String("type", string(control.Type())),
			)
			return err
		}
		pending = append(pending, staged{control: control, value: value})
	}

	for _, entry := range pending {
		entry.control.commit(entry.value)
	}
	g.notify()
	return nil
}

// ValidateAll recomputes and force-touches every control so hidden errors
// become visible, notifies once and returns the group validity.
func (g *Group) ValidateAll() bool {
	for _, control := range g.controls {
		control.revalidate()
		control.ForceTouch()
	}
	g.notify()
	return g.Valid()
}

// Reset restores every control to its default and notifies once.
func (g *Group) Reset() {
	for _, control := range g.controls {
		control.Reset()
	}
	g.notify()
}

// Subscribe registers fn to run synchronously after every committed mutation.
// The returned function removes it and is safe to call more than once.
func (g *Group) Subscribe(fn Listener) func() {
	if fn == nil || g.detached {
		return func() {}
	}
	g.nextID++
	id := g.nextID
	g.listeners = append(g.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range g.listeners {
			if sub.id == id {
				g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
				return
			}
		}
	}
}

// Detach drops every subscriber and the change handler. A detached group keeps
// working but no longer reports mutations; it is what a rebuild leaves behind.
func (g *Group) Detach() {
	g.listeners = nil
	g.onChange = nil
	g.detached = true
}

// Detached reports whether Detach was called.
func (g *Group) Detached() bool { return g.detached }

func (g *Group) notify() {
	listeners := make([]subscription, len(g.listeners))
	copy(listeners, g.listeners)
	for _, sub := range listeners {
		sub.fn(g)
	}
	if g.onChange != nil {
		g.onChange(g)
	}
}

func (g *Group) unknownNames(partial map[string]any) []string {
	var unknown []string
	for name := range partial {
		if _, ok := g.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

package form

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Binding is the immutable view of one control handed to rendering code.
type Binding struct {
	Name         string
	Type         model.FieldType
	Value        any
	MaskedValue  string
	IsInvalid    bool
	ErrorMessage string
	Touched      bool
	Dirty        bool
}

// Binder connects one control of a group to rendering code. It keeps no field
// state of its own: every Snapshot is recomputed from the group.
type Binder struct {
	group     *Group
	name      string
	messages  Messages
	sanitizer *bluemonday.Policy
}

// BindOption customises a Binder.
type BindOption func(*Binder)

// WithMessages sets the error message table.
func WithMessages(messages Messages) BindOption {
	return func(b *Binder) {
		if messages != nil {
			b.messages = messages
		}
	}
}

// WithSanitizer strips markup from text and email input before it reaches the
// control. Password input is never rewritten.
func WithSanitizer(policy *bluemonday.Policy) BindOption {
	return func(b *Binder) {
		b.sanitizer = policy
	}
}

// Bind returns a binder for the control registered under name.
func Bind(group *Group, name string, options ...BindOption) (*Binder, error) {
	if _, err := group.Control(name); err != nil {
		return nil, err
	}
	b := &Binder{
		group:    group,
		name:     name,
		messages: DefaultMessages,
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b, nil
}

// Name returns the bound field name.
func (b *Binder) Name() string { return b.name }

// Group returns the group the binder reads from.
func (b *Binder) Group() *Group { return b.group }

// Snapshot projects the control's current state.
func (b *Binder) Snapshot() Binding {
	control := b.group.index[b.name]
	value := control.Value()
	code := control.Err()
	return Binding{
		Name:         b.name,
		Type:         control.Type(),
		Value:        value,
		MaskedValue:  b.group.masks.ToDisplay(control.Type(), value),
		IsInvalid:    control.Touched() && code != model.ErrorNone,
		ErrorMessage: b.messages.Lookup(code),
		Touched:      control.Touched(),
		Dirty:        control.Dirty(),
	}
}

// Update writes user input into the group. String input on a masked type is
// parsed as display text first; money text is left to the control, which
// rejects text without digits.
func (b *Binder) Update(input any) error {
	control := b.group.index[b.name]
	raw := input
	if str, ok := input.(string); ok {
		switch t := control.Type(); {
		case t == model.FieldTypeMoney:
		case b.group.masks.HasMask(t):
			raw = b.group.masks.ToRaw(t, str)
		case b.sanitizer != nil && (t == model.FieldTypeText || t == model.FieldTypeEmail):
			raw = html.UnescapeString(b.sanitizer.Sanitize(str))
		}
	}
	return b.group.SetValues(map[string]any{b.name: raw})
}

// Subscribe calls fn with a fresh Binding after every group mutation.
func (b *Binder) Subscribe(fn func(Binding)) func() {
	if fn == nil {
		return func() {}
	}
	return b.group.Subscribe(func(*Group) {
		fn(b.Snapshot())
	})
}

// Package debounce delays form change notifications until input goes quiet.
//
// Groups notify synchronously on every keystroke. Wrap turns a consumer that
// should only see settled values (a search request, an autosave) into a
// change handler:
//
//	d := debounce.New(300 * time.Millisecond)
//	defer d.Stop()
//	o := orchestrator.New(orchestrator.WithChangeHandler(d.Wrap(search)))
//
// The consumer runs on a timer goroutine with a values snapshot taken when
// the last change happened, so it never touches the group itself.
package debounce

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Option customises a Debouncer.
type Option func(*Debouncer)

// WithLogger sets the logger used to trace superseded and fired calls.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Debouncer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Debouncer runs at most one pending call at a time. A new call cancels and
// replaces the pending one.
type Debouncer struct {
	delay  time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	seq     uint64
	stopped bool
}

// New returns a Debouncer that waits delay after the last call before firing.
func New(delay time.Duration, options ...Option) *Debouncer {
	d := &Debouncer{
		delay:  delay,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Call schedules fn, superseding any call still waiting. It is a no-op after
// Stop.
func (d *Debouncer) Call(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if d.timer != nil && d.timer.Stop() {
		d.logger.Debug("debounce: superseded pending call")
	}
	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
}

// Wrap adapts fn into a group change handler. Each notification captures a
// values snapshot and schedules fn with it.
func (d *Debouncer) Wrap(fn func(values map[string]any)) func(*form.Group) {
	return func(g *form.Group) {
		values := g.Values()
		d.Call(func() { fn(values) })
	}
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Flush runs the pending call now, on the caller's goroutine, and reports
// whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.take()
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Stop drops the pending call and disables the Debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
	d.stopped = true
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()
	if fn == nil {
		return
	}
	d.logger.Debug("debounce: firing", zap.Duration("delay", d.delay))
	fn()
}

// take clears and returns the pending call. Callers hold mu.
func (d *Debouncer) take() func() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fn := d.pending
	d.pending = nil
	return fn
}

package events

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"sync"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/logger"
)

// Dispatcher fans events out to listeners by capability. The listener
// slice is replaced on every write, so a dispatch in progress keeps
// iterating the slice it started with.
type Dispatcher struct {
	name         string
	mu           sync.Mutex
	listeners    []any
	logger       contracts.Logger
	panicHandler PanicHandler
	errorHandler ErrorHandler
}

func New(name string, opts ...Option) *Dispatcher {
	cfg := &config{logger: logger.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.panicHandler == nil {
		cfg.panicHandler = NewDefaultPanicHandler(cfg.logger)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = NewDefaultErrorHandler(cfg.logger)
	}

	return &Dispatcher{
		name:         name,
		logger:       cfg.logger,
		panicHandler: cfg.panicHandler,
		errorHandler: cfg.errorHandler,
	}
}

func (d *Dispatcher) Name() string {
	return d.name
}

// AddListener appends l. The same listener may be added more than once and
// is then visited once per occurrence.
func (d *Dispatcher) AddListener(l any) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	next := make([]any, len(d.listeners), len(d.listeners)+1)
	copy(next, d.listeners)
	d.listeners = append(next, l)
}

// RemoveListener drops the first occurrence equal to l and reports whether
// one was found.
func (d *Dispatcher) RemoveListener(l any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, existing := range d.listeners {
		if !sameListener(existing, l) {
			continue
		}
		next := make([]any, 0, len(d.listeners)-1)
		next = append(next, d.listeners[:i]...)
		next = append(next, d.listeners[i+1:]...)
		d.listeners = next
		return true
	}
	return false
}

func (d *Dispatcher) Listeners() []any {
	snapshot := d.snapshot()
	out := make([]any, len(snapshot))
	copy(out, snapshot)
	return out
}

func (d *Dispatcher) snapshot() []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listeners
}

// Dispatch calls visit for every listener implementing T, in insertion
// order. Errors and panics are reported per listener and never stop the
// iteration.
func Dispatch[T any](d *Dispatcher, visit func(T) error) Report {
	report := Report{Event: reflect.TypeFor[T]().String()}

	for _, l := range d.snapshot() {
		target, ok := l.(T)
		if !ok {
			continue
		}
		report.Matched++

		if failure, failed := d.visit(report.Event, l, func() error { return visit(target) }); failed {
			report.Failures = append(report.Failures, failure)
			continue
		}
		report.Delivered++
	}

	d.logger.Trace("event dispatched",
		"dispatcher", d.name,
		"event", report.Event,
		"matched", report.Matched,
		"failed", len(report.Failures),
	)
	return report
}

func (d *Dispatcher) visit(event string, l any, call func() error) (failure Failure, failed bool) {
	listenerType := fmt.Sprintf("%T", l)

	defer func() {
		if r := recover(); r != nil {
			d.panicHandler.Handle(event, l, r, debug.Stack())
			failure = Failure{
				Listener:     l,
				ListenerType: listenerType,
				Err: ErrListenerPanic.
					WithDetail("listener", listenerType).
					WithDetail("event", event).
					WithDetail("value", fmt.Sprint(r)),
				Panicked: true,
			}
			failed = true
		}
	}()

	if err := call(); err != nil {
		d.errorHandler.Handle(event, l, err)
		return Failure{
			Listener:     l,
			ListenerType: listenerType,
			Err: ErrListenerFailed.
				WithDetail("listener", listenerType).
				WithDetail("event", event).
				WithCause(err),
		}, true
	}
	return Failure{}, false
}

// sameListener compares by ==, treating uncomparable values as distinct.
func sameListener(a, b any) (same bool) {
	if a == nil || b == nil {
		return false
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

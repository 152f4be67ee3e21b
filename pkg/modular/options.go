package modular

import (
	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/events"
)

// LookupMode decides what GetModule does with an unregistered key.
type LookupMode int

const (
	// LookupStrict returns ErrModuleNotFound.
	LookupStrict LookupMode = iota
	// LookupPermissive returns a nil module and no error.
	LookupPermissive
)

func (l LookupMode) String() string {
	if l == LookupPermissive {
		return "permissive"
	}
	return "strict"
}

type Option func(*options)

type options struct {
	logger        contracts.Logger
	mode          LookupMode
	onCreated     func(Module)
	onInitialized []func(Module)
	eventOpts     []events.Option

	setup     func(Module)
	preInit   func(*Manager)
	completed func(*Manager)
}

func WithLogger(l contracts.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithLookupMode(mode LookupMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithOnModuleCreated is called for every module right after registration.
func WithOnModuleCreated(fn func(Module)) Option {
	return func(o *options) {
		o.onCreated = fn
	}
}

// WithOnModuleInitialized is called after each module's Init returned
// successfully, in registration order. Callbacks from repeated options run
// in the order given.
func WithOnModuleInitialized(fn func(Module)) Option {
	return func(o *options) {
		if fn != nil {
			o.onInitialized = append(o.onInitialized, fn)
		}
	}
}

// WithEventOptions configures the manager's dispatcher.
func WithEventOptions(opts ...events.Option) Option {
	return func(o *options) {
		o.eventOpts = append(o.eventOpts, opts...)
	}
}

// WithSetup is a builder hook run for each module right after it was
// registered.
func WithSetup(fn func(Module)) Option {
	return func(o *options) {
		o.setup = fn
	}
}

// WithPreInit is a builder hook run after injection, before any Init.
func WithPreInit(fn func(*Manager)) Option {
	return func(o *options) {
		o.preInit = fn
	}
}

// WithCompleted is a builder hook run once the build finished.
func WithCompleted(fn func(*Manager)) Option {
	return func(o *options) {
		o.completed = fn
	}
}

package modular

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/events"
	"github.com/shuldan/modular/pkg/logger"
)

var managerActive atomic.Bool

// Manager is the module registry. One manager may be live per process;
// Release frees the slot.
type Manager struct {
	id            string
	mu            sync.RWMutex
	registry      map[Key]Module
	ordered       []Module
	dispatcher    *events.Dispatcher
	logger        contracts.Logger
	mode          LookupMode
	onCreated     func(Module)
	onInitialized []func(Module)
	sealed        atomic.Bool
	released      atomic.Bool
}

func NewManager(opts ...Option) (*Manager, error) {
	return newManager(applyOptions(opts))
}

func applyOptions(opts []Option) *options {
	o := &options{mode: LookupStrict}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger, _ = logger.NewLogger()
	}
	return o
}

func newManager(o *options) (*Manager, error) {
	if !managerActive.CompareAndSwap(false, true) {
		return nil, ErrManagerExists
	}

	m := &Manager{
		id:            uuid.NewString(),
		registry:      make(map[Key]Module),
		logger:        o.logger,
		mode:          o.mode,
		onCreated:     o.onCreated,
		onInitialized: o.onInitialized,
	}
	m.dispatcher = events.New("modules", append([]events.Option{events.WithLogger(o.logger)}, o.eventOpts...)...)

	m.logger.Debug("module manager created", "id", m.id, "lookup", m.mode.String())
	return m, nil
}

func (m *Manager) ID() string {
	return m.id
}

func (m *Manager) Logger() contracts.Logger {
	return m.logger
}

func (m *Manager) Dispatcher() *events.Dispatcher {
	return m.dispatcher
}

func (m *Manager) LookupMode() LookupMode {
	return m.mode
}

// Sealed reports whether the build completed. A sealed manager refuses
// further registrations.
func (m *Manager) Sealed() bool {
	return m.sealed.Load()
}

// Register constructs t and records it under all of its keys. It returns
// false when t's primary key is already registered, together with the
// module found there.
func (m *Manager) Register(t Type) (Module, bool, error) {
	if m.released.Load() {
		return nil, false, ErrManagerReleased
	}
	if m.sealed.Load() {
		return nil, false, ErrManagerSealed.WithDetail("module", t.Name())
	}
	if !t.valid() {
		return nil, false, ErrNilModule.WithDetail("module", t.Name())
	}

	m.mu.RLock()
	existing, found := m.registry[t.key]
	m.mu.RUnlock()
	if found {
		m.logger.Trace("module already registered", "module", t.Name())
		return existing, false, nil
	}

	mod := t.construct()
	if isNil(mod) {
		return nil, false, ErrNilModule.WithDetail("module", t.Name())
	}
	actual := reflect.TypeOf(mod)
	for _, key := range t.Keys() {
		if !actual.AssignableTo(key) {
			return nil, false, ErrAliasMismatch.
				WithDetail("module", t.Name()).
				WithDetail("alias", key.String())
		}
	}

	mod.bind(m, t.Name())

	m.mu.Lock()
	for _, key := range t.Keys() {
		if prev, ok := m.registry[key]; ok && prev != mod {
			m.logger.Warn("module key reassigned",
				"key", key.String(),
				"previous", prev.Name(),
				"module", mod.Name(),
			)
		}
		m.registry[key] = mod
	}
	m.ordered = append(m.ordered, mod)
	m.mu.Unlock()

	m.dispatcher.AddListener(mod)
	m.logger.Debug("module registered", "module", mod.Name(), "keys", len(t.Keys()))

	if m.onCreated != nil {
		m.onCreated(mod)
	}
	return mod, true, nil
}

// GetModule looks key up. A missing key is ErrModuleNotFound in strict
// mode and (nil, nil) in permissive mode.
func (m *Manager) GetModule(key Key) (Module, error) {
	if mod, ok := m.lookup(key); ok {
		return mod, nil
	}
	if m.mode == LookupPermissive {
		return nil, nil
	}
	name := "<nil>"
	if key != nil {
		name = key.String()
	}
	return nil, ErrModuleNotFound.WithDetail("type", name)
}

func (m *Manager) lookup(key Key) (Module, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mod, ok := m.registry[key]
	return mod, ok
}

// Modules returns the distinct modules in registration order.
func (m *Manager) Modules() []Module {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Module, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// Get returns the module registered under KeyOf[T], following the
// manager's lookup mode.
func Get[T any](m *Manager) (T, error) {
	var zero T
	mod, err := m.GetModule(KeyOf[T]())
	if err != nil || mod == nil {
		return zero, err
	}
	v, ok := mod.(T)
	if !ok {
		return zero, ErrModuleNotFound.WithDetail("type", KeyOf[T]().String())
	}
	return v, nil
}

// AssignableFrom returns every distinct module implementing T, in
// registration order.
func AssignableFrom[T any](m *Manager) []T {
	var out []T
	for _, mod := range m.Modules() {
		if v, ok := mod.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// initModules assigns defaults on every module, runs Init in order and,
// once every Init returned, runs Start in order.
func (m *Manager) initModules() error {
	modules := m.Modules()

	for _, mod := range modules {
		if assigner, ok := mod.(DefaultsAssigner); ok {
			assigner.AssignDefaults()
		}
	}

	for _, mod := range modules {
		m.logger.Trace("initializing module", "module", mod.Name())
		if err := mod.Init(); err != nil {
			return ErrModuleInit.WithDetail("module", mod.Name()).WithCause(err)
		}
		for _, fn := range m.onInitialized {
			fn(mod)
		}
	}

	for _, mod := range modules {
		starter, ok := mod.(Starter)
		if !ok {
			continue
		}
		if err := starter.Start(); err != nil {
			return ErrModuleStart.WithDetail("module", mod.Name()).WithCause(err)
		}
	}
	return nil
}

func (m *Manager) seal() {
	m.sealed.Store(true)
}

// Release tears the manager down and allows a new one to be created.
// Calling it more than once is a no-op.
func (m *Manager) Release() {
	if !m.released.CompareAndSwap(false, true) {
		return
	}
	for _, mod := range m.Modules() {
		m.dispatcher.RemoveListener(mod)
	}
	managerActive.Store(false)
	m.logger.Debug("module manager released", "id", m.id)
}

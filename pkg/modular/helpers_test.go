package modular

import (
	"sync"
	"testing"

	"github.com/shuldan/modular/pkg/contracts"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type mockLogger struct {
	mu   *sync.Mutex
	logs *[]logEntry
	with []any
}

func newMockLogger() *mockLogger {
	return &mockLogger{mu: &sync.Mutex{}, logs: &[]logEntry{}}
}

func (m *mockLogger) record(level, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := append(append([]any(nil), m.with...), args...)
	*m.logs = append(*m.logs, logEntry{level, msg, all})
}

func (m *mockLogger) Trace(msg string, args ...any)    { m.record("trace", msg, args) }
func (m *mockLogger) Debug(msg string, args ...any)    { m.record("debug", msg, args) }
func (m *mockLogger) Info(msg string, args ...any)     { m.record("info", msg, args) }
func (m *mockLogger) Warn(msg string, args ...any)     { m.record("warn", msg, args) }
func (m *mockLogger) Error(msg string, args ...any)    { m.record("error", msg, args) }
func (m *mockLogger) Critical(msg string, args ...any) { m.record("critical", msg, args) }

func (m *mockLogger) With(args ...any) contracts.Logger {
	return &mockLogger{
		mu:   m.mu,
		logs: m.logs,
		with: append(append([]any(nil), m.with...), args...),
	}
}

func (m *mockLogger) find(level, msg string) []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []logEntry
	for _, e := range *m.logs {
		if e.level == level && e.msg == msg {
			out = append(out, e)
		}
	}
	return out
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

// Greeter is a capability some test modules implement.
type Greeter interface {
	Greet() string
}

type greeterModule interface {
	Module
	Greeter
}

type moduleA struct {
	Base
	b           *moduleB
	initialized bool
	defaults    bool
	initOrder   *[]string
}

func (a *moduleA) Needs() []Need { return []Need{Slot(&a.b)} }
func (a *moduleA) AssignDefaults() { a.defaults = true }
func (a *moduleA) Greet() string  { return "a" }

func (a *moduleA) Init() error {
	a.initialized = true
	if a.initOrder != nil {
		*a.initOrder = append(*a.initOrder, "a")
	}
	return nil
}

type moduleB struct {
	Base
	initialized bool
}

func (b *moduleB) Init() error {
	b.initialized = true
	return nil
}

// moduleC observes moduleA from its own Init.
type moduleC struct {
	Base
	a              *moduleA
	marker         Module
	sawAReady      bool
	sawDefaultsRun bool
}

func (c *moduleC) Needs() []Need {
	return []Need{Slot(&c.a), Slot(&c.marker)}
}

func (c *moduleC) Init() error {
	c.sawAReady = c.a != nil && c.a.initialized
	c.sawDefaultsRun = c.a != nil && c.a.defaults
	return nil
}

func (c *moduleC) Greet() string { return "c" }

type orphan struct {
	Base
	missing *moduleB
}

func (o *orphan) Needs() []Need { return []Need{Slot(&o.missing)} }
func (o *orphan) Init() error   { return nil }

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(append([]Option{WithLogger(newMockLogger())}, opts...)...)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Release)
	return m
}

func build(t *testing.T, b *Builder) *Manager {
	t.Helper()
	m, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(m.Release)
	return m
}

func names(modules []Module) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.Name()
	}
	return out
}

type moduleD struct{ Base }

func (d *moduleD) Init() error { return nil }

type moduleE struct{ Base }

func (e *moduleE) Init() error { return nil }

// extendedA inherits moduleA's slots and adds its own.
type extendedA struct {
	moduleA
	extra *moduleD
}

func (e *extendedA) Needs() []Need {
	return Needs(e.moduleA.Needs(), []Need{Slot(&e.extra)})
}

type optionalUser struct {
	Base
	d *moduleD
}

func (o *optionalUser) Needs() []Need { return []Need{OptionalSlot(&o.d)} }
func (o *optionalUser) Init() error   { return nil }

type validating struct {
	Base
	problems []string
	initRan  *bool
}

func (v *validating) ValidateModule(result *ValidationResult) {
	for _, p := range v.problems {
		result.AddError("%s", p)
	}
}

func (v *validating) Init() error {
	if v.initRan != nil {
		*v.initRan = true
	}
	return nil
}

type failing struct {
	Base
	err error
}

func (f *failing) Init() error { return f.err }

type lifecycle struct {
	Base
	trace *[]string
}

func (l *lifecycle) Init() error {
	*l.trace = append(*l.trace, "init:"+l.Name())
	return nil
}

func (l *lifecycle) Start() error {
	*l.trace = append(*l.trace, "start:"+l.Name())
	return nil
}

func (l *lifecycle) PrintDetails() {
	*l.trace = append(*l.trace, "details:"+l.Name())
}

type validatorOne struct{ validating }
type validatorTwo struct{ validating }
type validatorThree struct{ validating }

type lifecycleOne struct{ lifecycle }
type lifecycleTwo struct{ lifecycle }

// peerReady is announced by announcer once it started.
type peerReady interface {
	OnPeerReady(from string) error
}

type announcer struct {
	Base
	initDone bool
}

func (a *announcer) Init() error {
	a.initDone = true
	return nil
}

func (a *announcer) Start() error {
	Dispatch(a.Manager(), a, "peer ready", func(l peerReady) error {
		return l.OnPeerReady(a.Name())
	})
	return nil
}

type readyWatcher struct {
	Base
	initDone      bool
	notifications int
	beforeInit    bool
}

func (w *readyWatcher) Init() error {
	w.initDone = true
	return nil
}

func (w *readyWatcher) OnPeerReady(string) error {
	w.notifications++
	if !w.initDone {
		w.beforeInit = true
	}
	return nil
}

type failingStart struct {
	Base
	err error
}

func (f *failingStart) Init() error  { return nil }
func (f *failingStart) Start() error { return f.err }

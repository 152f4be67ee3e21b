package modular

import (
	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/logger"
)

// Module is a process-lifetime singleton owned by a Manager. Implementations
// embed Base and provide Init.
type Module interface {
	// Init runs once, after injection, in registration order.
	Init() error
	// PrintDetails runs after every module initialized.
	PrintDetails()
	// ValidateModule runs before injection. Recording an error aborts the
	// build before any Init.
	ValidateModule(result *ValidationResult)
	Name() string
	Logger() contracts.Logger

	bind(m *Manager, name string)
}

// Injectable modules declare the peers they need. A module embedding
// another module type forwards the embedded Needs through modular.Needs.
type Injectable interface {
	Needs() []Need
}

// Starter modules are started after every module's Init returned. Events
// announcing that a module is usable belong in Start, not Init.
type Starter interface {
	Start() error
}

// DefaultsAssigner modules get a pass before any Init runs.
type DefaultsAssigner interface {
	AssignDefaults()
}

// Base carries the manager back-reference and the module-scoped logger.
type Base struct {
	manager *Manager
	name    string
	logger  contracts.Logger
}

func (b *Base) bind(m *Manager, name string) {
	b.manager = m
	b.name = name
	b.logger = m.logger.With("module", name)
}

func (b *Base) Manager() *Manager {
	return b.manager
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Logger() contracts.Logger {
	if b.logger == nil {
		return logger.Nop()
	}
	return b.logger
}

func (b *Base) GetModule(key Key) (Module, error) {
	if b.manager == nil {
		return nil, ErrModuleNotFound.WithDetail("type", key.String())
	}
	return b.manager.GetModule(key)
}

func (b *Base) PrintDetails() {}

func (b *Base) ValidateModule(*ValidationResult) {}

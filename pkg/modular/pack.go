package modular

// Pack is a named bundle of module types registered together.
type Pack interface {
	Name() string
	Modules() []Type
	// Init runs once every module of the build exists, before injection.
	Init(m *Manager) error
}

type SimplePack struct {
	name    string
	types   []Type
	manager *Manager
	setup   func(*Manager) error
}

func NewPack(name string, types ...Type) *SimplePack {
	return &SimplePack{
		name:  name,
		types: append([]Type(nil), types...),
	}
}

// OnInit sets pack-level setup logic run from Init.
func (p *SimplePack) OnInit(fn func(*Manager) error) *SimplePack {
	p.setup = fn
	return p
}

func (p *SimplePack) Name() string {
	return p.name
}

func (p *SimplePack) Modules() []Type {
	return append([]Type(nil), p.types...)
}

// Manager is nil until the pack was attached by a build.
func (p *SimplePack) Manager() *Manager {
	return p.manager
}

func (p *SimplePack) Init(m *Manager) error {
	p.manager = m
	if p.setup == nil {
		return nil
	}
	return p.setup(m)
}

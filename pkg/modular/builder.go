package modular

import (
	"sync/atomic"
)

// Builder collects packs and module types and turns them into a fully
// initialized, sealed Manager. A builder can be used once.
type Builder struct {
	opts  []Option
	packs []Pack
	types []Type
	used  atomic.Bool
}

func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: opts}
}

func (b *Builder) AddPacks(packs ...Pack) *Builder {
	for _, p := range packs {
		if p != nil {
			b.packs = append(b.packs, p)
		}
	}
	return b
}

func (b *Builder) AddModules(types ...Type) *Builder {
	b.types = append(b.types, types...)
	return b
}

// Build registers, validates, injects and initializes every collected
// module, in that order. On failure the manager is released so the
// process may build again. Release only unsubscribes modules: resources
// opened by modules whose Init already succeeded stay open, so callers
// owning such modules track them with WithOnModuleInitialized and close
// them when Build fails.
func (b *Builder) Build() (*Manager, error) {
	if !b.used.CompareAndSwap(false, true) {
		return nil, ErrBuilderReused
	}

	o := applyOptions(b.opts)
	m, err := newManager(o)
	if err != nil {
		return nil, err
	}

	if err := b.run(m, o); err != nil {
		m.logger.Error("module manager build failed", "error", err)
		m.Release()
		return nil, err
	}
	return m, nil
}

func (b *Builder) run(m *Manager, o *options) error {
	types := b.collect()
	m.logger.Debug("collected module types", "packs", len(b.packs), "modules", len(types))

	for _, t := range types {
		mod, created, err := m.Register(t)
		if err != nil {
			return err
		}
		if created && o.setup != nil {
			o.setup(mod)
		}
	}

	for _, p := range b.packs {
		if err := p.Init(m); err != nil {
			return ErrPackInit.WithDetail("pack", p.Name()).WithCause(err)
		}
	}

	if err := validate(m.Modules()); err != nil {
		return err
	}

	if err := m.inject(); err != nil {
		return err
	}

	if o.preInit != nil {
		o.preInit(m)
	}

	if err := m.initModules(); err != nil {
		return err
	}

	for _, mod := range m.Modules() {
		mod.PrintDetails()
	}

	if o.completed != nil {
		o.completed(m)
	}
	m.seal()

	m.logger.Info("module manager ready", "modules", len(m.Modules()), "lookup", m.mode.String())
	return nil
}

// collect returns pack types followed by raw types, keeping the first
// occurrence of each primary key.
func (b *Builder) collect() []Type {
	seen := make(map[Key]struct{})
	var out []Type

	add := func(t Type) {
		if t.key != nil {
			if _, dup := seen[t.key]; dup {
				return
			}
			seen[t.key] = struct{}{}
		}
		out = append(out, t)
	}

	for _, p := range b.packs {
		for _, t := range p.Modules() {
			add(t)
		}
	}
	for _, t := range b.types {
		add(t)
	}
	return out
}

func validate(modules []Module) error {
	result := &ValidationResult{}
	for _, mod := range modules {
		result.scope(mod.Name())
		mod.ValidateModule(result)
	}
	result.scope("")
	return result.Err()
}

package modular

import (
	"sync"

	"github.com/shuldan/modular/pkg/contracts"
)

// Catalog maps module names to their declarations so packs can be
// described in configuration:
//
//	modular:
//	  strict: true
//	  packs:
//	    - name: storage
//	      modules: [config, database, redis]
type Catalog struct {
	mu    sync.RWMutex
	types map[string]Type
	names []string
}

func NewCatalog() *Catalog {
	return &Catalog{types: make(map[string]Type)}
}

// Register adds types under their names. A name can be registered once;
// on a duplicate nothing from the call is added.
func (c *Catalog) Register(types ...Type) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	incoming := make(map[string]struct{}, len(types))
	for _, t := range types {
		_, exists := c.types[t.Name()]
		_, repeated := incoming[t.Name()]
		if exists || repeated {
			return ErrDuplicateModuleName.WithDetail("name", t.Name())
		}
		incoming[t.Name()] = struct{}{}
	}

	for _, t := range types {
		c.types[t.Name()] = t
		c.names = append(c.names, t.Name())
	}
	return nil
}

func (c *Catalog) Lookup(name string) (Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// Names returns the registered names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}

func (c *Catalog) Pack(name string, modules ...string) (*SimplePack, error) {
	types := make([]Type, 0, len(modules))
	for _, moduleName := range modules {
		t, ok := c.Lookup(moduleName)
		if !ok {
			return nil, ErrUnknownModuleName.
				WithDetail("name", moduleName).
				WithDetail("pack", name)
		}
		types = append(types, t)
	}
	return NewPack(name, types...), nil
}

// PacksFromConfig reads a list of {name, modules} sections at key.
func (c *Catalog) PacksFromConfig(cfg contracts.Config, key string) ([]Pack, error) {
	if cfg == nil || !cfg.Has(key) {
		return nil, nil
	}

	sections := cfg.GetMapSlice(key)
	packs := make([]Pack, 0, len(sections))
	for i, section := range sections {
		name := section.GetString("name")
		if name == "" {
			return nil, ErrInvalidPack.
				WithDetail("key", key).
				WithDetail("index", i).
				WithDetail("reason", "missing name")
		}
		modules := section.GetStringSlice("modules")
		if len(modules) == 0 {
			return nil, ErrInvalidPack.
				WithDetail("key", key).
				WithDetail("index", i).
				WithDetail("reason", "no modules")
		}

		pack, err := c.Pack(name, modules...)
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// OptionsFromConfig maps the "modular" section to builder options.
// Only modular.strict is read.
func OptionsFromConfig(cfg contracts.Config) []Option {
	if cfg == nil || !cfg.Has("modular.strict") {
		return nil
	}
	mode := LookupPermissive
	if cfg.GetBool("modular.strict", true) {
		mode = LookupStrict
	}
	return []Option{WithLookupMode(mode)}
}

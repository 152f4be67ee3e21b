package config

import (
	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/modular"
)

const ModuleName = "config"

// Module loads configuration in Init and serves it to peers. It is
// registered under both *config.Module and contracts.Config, so modules
// can declare either as a slot.
type Module struct {
	modular.Base
	contracts.Config

	loader Loader
}

func NewModule(loader Loader) modular.Type {
	return modular.Provide(func() *Module {
		return &Module{
			Config: NewMapConfig(nil),
			loader: loader,
		}
	}).Named(ModuleName).As(modular.KeyOf[contracts.Config]())
}

func (m *Module) ValidateModule(result *modular.ValidationResult) {
	if m.loader == nil {
		result.AddError("no configuration loader")
	}
}

func (m *Module) Init() error {
	values, err := m.loader.Load()
	if err != nil {
		return err
	}
	m.Config = NewMapConfig(values)
	return nil
}

func (m *Module) PrintDetails() {
	m.Logger().Info("configuration loaded", "sections", len(m.All()))
}

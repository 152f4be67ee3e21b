package bootstrap

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/shuldan/modular/pkg/config"
	"github.com/shuldan/modular/pkg/contracts"
	"github.com/shuldan/modular/pkg/database"
	"github.com/shuldan/modular/pkg/logger"
	"github.com/shuldan/modular/pkg/modular"
	"github.com/shuldan/modular/pkg/redis"
)

const packsKey = "modular.packs"

// Bootstrap is the composition root: it loads configuration, resolves the
// configured packs against a catalog of known modules and builds the
// manager.
type Bootstrap struct {
	appName     string
	envPrefix   string
	configPaths []string
	types       []modular.Type
	options     []modular.Option
}

// New layers every readable file in configPaths, later files winning, and
// overlays environment variables carrying envPrefix. The file format
// follows the extension: .toml, .json, anything else is read as YAML.
func New(appName string, envPrefix string, configPaths ...string) *Bootstrap {
	return &Bootstrap{
		appName:     appName,
		envPrefix:   envPrefix,
		configPaths: configPaths,
	}
}

func (b *Bootstrap) WithDatabase(opts ...database.Option) *Bootstrap {
	b.types = append(b.types, database.NewModule(opts...))
	return b
}

func (b *Bootstrap) WithRedis(opts ...redis.Option) *Bootstrap {
	b.types = append(b.types, redis.NewModule(opts...))
	return b
}

// WithModules makes application modules available. Without a configured
// pack list every added module is built, in the order added.
func (b *Bootstrap) WithModules(types ...modular.Type) *Bootstrap {
	b.types = append(b.types, types...)
	return b
}

func (b *Bootstrap) WithOptions(opts ...modular.Option) *Bootstrap {
	b.options = append(b.options, opts...)
	return b
}

func (b *Bootstrap) loader() config.Loader {
	layers := make([]config.Loader, 0, len(b.configPaths)+1)
	for _, path := range b.configPaths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			layers = append(layers, config.NewTomlLoader(path))
		case ".json":
			layers = append(layers, config.NewJSONLoader(path))
		default:
			layers = append(layers, config.NewYamlLoader(path))
		}
	}
	layers = append(layers, config.NewEnvLoader(b.envPrefix))
	return config.NewTemplatedLoader(config.NewChainLoader(layers...))
}

func (b *Bootstrap) Build() (*modular.Manager, error) {
	values, err := b.loader().Load()
	if err != nil {
		return nil, err
	}
	cfg := config.NewMapConfig(values)

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	log = log.With("app", b.appName)

	configType := config.NewModule(config.NewStaticLoader(values))
	catalog := modular.NewCatalog()
	if err := catalog.Register(append([]modular.Type{configType}, b.types...)...); err != nil {
		return nil, err
	}

	packs, err := catalog.PacksFromConfig(cfg, packsKey)
	if err != nil {
		return nil, err
	}
	if len(packs) == 0 {
		packs = []modular.Pack{modular.NewPack("app", b.types...)}
	}
	packs = append([]modular.Pack{modular.NewPack("core", configType)}, packs...)

	var initialized []modular.Module
	opts := []modular.Option{
		modular.WithLogger(log),
		modular.WithOnModuleInitialized(func(mod modular.Module) {
			initialized = append(initialized, mod)
		}),
	}
	opts = append(opts, modular.OptionsFromConfig(cfg)...)
	opts = append(opts, b.options...)

	m, err := modular.NewBuilder(opts...).AddPacks(packs...).Build()
	if err != nil {
		closeAll(log, initialized)
		return nil, err
	}
	return m, nil
}

// Shutdown closes every module holding resources, newest first, and
// releases the manager. Close errors are logged.
func Shutdown(m *modular.Manager) {
	closeAll(m.Logger(), m.Modules())
	m.Release()
}

func closeAll(log contracts.Logger, modules []modular.Module) {
	for i := len(modules) - 1; i >= 0; i-- {
		closer, ok := modules[i].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			log.Error("failed to close module", "module", modules[i].Name(), "error", err)
		}
	}
}

func newLogger(cfg contracts.Config) (contracts.Logger, error) {
	section, ok := cfg.GetSub("log")
	if !ok {
		return logger.NewLogger()
	}
	return logger.NewLogger(logger.WithConfig(section))
}

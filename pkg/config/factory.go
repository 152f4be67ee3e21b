package config

import "github.com/shuldan/modular/pkg/contracts"

var (
	_ Loader = (*envLoader)(nil)
	_ Loader = (*yamlLoader)(nil)
	_ Loader = (*jsonLoader)(nil)
	_ Loader = (*tomlLoader)(nil)
	_ Loader = (*chainLoader)(nil)
	_ Loader = (*templatedLoader)(nil)
)

// NewEnvLoader reads variables starting with prefix. "APP_DATABASE__DSN"
// with prefix "APP_" becomes database.dsn.
func NewEnvLoader(prefix string) Loader {
	return &envLoader{prefix: prefix}
}

// NewYamlLoader loads the first readable file among paths.
func NewYamlLoader(paths ...string) Loader {
	return &yamlLoader{paths: paths}
}

// NewJSONLoader loads the first readable file among paths.
func NewJSONLoader(paths ...string) Loader {
	return &jsonLoader{paths: paths}
}

// NewTomlLoader loads the first readable file among paths.
func NewTomlLoader(paths ...string) Loader {
	return &tomlLoader{paths: paths}
}

func NewChainLoader(loaders ...Loader) Loader {
	return &chainLoader{loaders: loaders}
}

func NewStaticLoader(values map[string]any) Loader {
	return &staticLoader{values: deepCopy(values)}
}

// NewTemplatedLoader renders string values containing text/template actions
// such as {{ env "DB_DSN" | default "sqlite::memory:" }}.
func NewTemplatedLoader(loader Loader) Loader {
	return &templatedLoader{loader: loader}
}

func NewMapConfig(values map[string]any) contracts.Config {
	if values == nil {
		values = map[string]any{}
	}
	return &MapConfig{values: values}
}

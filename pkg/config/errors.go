package config

import "github.com/shuldan/modular/pkg/errors"

var newConfigCode = errors.WithPrefix("CONFIG")

var (
	ErrNoConfigSource = newConfigCode().New("no valid configuration source found (loader: {{.loader}})")
	ErrParseYAML      = newConfigCode().New("failed to parse YAML file {{.path}}: {{.reason}}")
	ErrParseJSON      = newConfigCode().New("failed to parse JSON file {{.path}}: {{.reason}}")
	ErrParseTOML      = newConfigCode().New("failed to parse TOML file {{.path}}: {{.reason}}")
	ErrTemplate       = newConfigCode().New("failed to render template at {{.key}}")
)

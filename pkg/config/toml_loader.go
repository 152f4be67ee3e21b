package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

type tomlLoader struct {
	paths []string
}

func (l *tomlLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		values := map[string]any{}
		if err = toml.Unmarshal(data, &values); err != nil {
			return nil, ErrParseTOML.
				WithDetail("path", path).
				WithDetail("reason", err.Error()).
				WithCause(err)
		}

		return values, nil
	}

	return nil, ErrNoConfigSource.WithDetail("loader", "toml")
}

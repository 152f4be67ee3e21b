package config

import "github.com/shuldan/modular/pkg/errors"

// Loader produces a raw configuration tree.
type Loader interface {
	Load() (map[string]any, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func() (map[string]any, error)

func (f LoaderFunc) Load() (map[string]any, error) {
	return f()
}

type staticLoader struct {
	values map[string]any
}

func (l *staticLoader) Load() (map[string]any, error) {
	return deepCopy(l.values), nil
}

// chainLoader merges the trees of its loaders in order; later layers win.
// Missing layers are skipped unless every layer is missing. A layer that
// exists but cannot be parsed fails the chain.
type chainLoader struct {
	loaders []Loader
}

func (c *chainLoader) Load() (map[string]any, error) {
	final := make(map[string]any)
	var (
		lastErr error
		loaded  int
	)

	for _, loader := range c.loaders {
		layer, err := loader.Load()
		if isParseError(err) {
			return nil, err
		}
		if err != nil {
			lastErr = err
			continue
		}
		loaded++
		mergeMaps(final, layer)
	}

	if loaded == 0 {
		if lastErr == nil {
			return nil, ErrNoConfigSource.WithDetail("loader", "chain")
		}
		return nil, ErrNoConfigSource.WithDetail("loader", "chain").WithCause(lastErr)
	}

	return final, nil
}

func isParseError(err error) bool {
	return errors.Is(err, ErrParseYAML) || errors.Is(err, ErrParseJSON) || errors.Is(err, ErrParseTOML)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if vMap, ok := normalizeMap(v); ok {
			if dstMap, ok := normalizeMap(dst[k]); ok {
				merged := deepCopy(dstMap)
				mergeMaps(merged, vMap)
				dst[k] = merged
				continue
			}
			dst[k] = deepCopy(vMap)
			continue
		}
		dst[k] = v
	}
}

func deepCopy(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		if m, ok := normalizeMap(v); ok {
			out[k] = deepCopy(m)
			continue
		}
		out[k] = v
	}
	return out
}

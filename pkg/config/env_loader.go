package config

import (
	"os"
	"strconv"
	"strings"
)

type envLoader struct {
	prefix string
}

func (l *envLoader) Load() (map[string]any, error) {
	values := make(map[string]any)

	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		key = strings.ReplaceAll(key, "__", ".")
		if key == "" {
			continue
		}

		setNested(values, key, typed(value))
	}

	return values, nil
}

func typed(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func setNested(m map[string]any, key string, value any) {
	keys := strings.Split(key, ".")
	last := len(keys) - 1

	current := m
	for i, k := range keys {
		if i == last {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}
		current = next
	}
}

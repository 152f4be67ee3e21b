package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

type templatedLoader struct {
	loader Loader
}

func (t *templatedLoader) Load() (map[string]any, error) {
	raw, err := t.loader.Load()
	if err != nil {
		return nil, err
	}

	env := environ()
	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		value, err := t.process(k, v, env)
		if err != nil {
			return nil, err
		}
		processed[k] = value
	}
	return processed, nil
}

func (t *templatedLoader) process(path string, v any, env map[string]string) (any, error) {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "{{") || !strings.Contains(val, "}}") {
			return val, nil
		}
		rendered, err := render(val, env)
		if err != nil {
			return nil, ErrTemplate.WithDetail("key", path).WithCause(err)
		}
		return rendered, nil
	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			out, err := t.process(path+"."+k, item, env)
			if err != nil {
				return nil, err
			}
			mapped[k] = out
		}
		return mapped, nil
	case []any:
		result := make([]any, 0, len(val))
		for _, item := range val {
			out, err := t.process(path, item, env)
			if err != nil {
				return nil, err
			}
			result = append(result, out)
		}
		return result, nil
	default:
		return val, nil
	}
}

var funcMap = template.FuncMap{
	"default": func(def, val any) string {
		if s, ok := val.(string); ok && s != "" {
			return s
		}
		if s, ok := def.(string); ok {
			return s
		}
		return ""
	},
	"env":   os.Getenv,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

func render(input string, env map[string]string) (string, error) {
	tmpl, err := template.New("config").Funcs(funcMap).Option("missingkey=zero").Parse(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, env); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func environ() map[string]string {
	data := make(map[string]string)
	for _, env := range os.Environ() {
		if k, v, ok := strings.Cut(env, "="); ok {
			data[k] = v
		}
	}
	return data
}

package config

import (
	"errors"
	"testing"
)

func layer(values map[string]any, err error) Loader {
	return LoaderFunc(func() (map[string]any, error) {
		return values, err
	})
}

func TestChainLoader_MergesLaterLayersOverEarlier(t *testing.T) {
	chain := NewChainLoader(
		layer(map[string]any{
			"database": map[string]any{"driver": "sqlite3", "dsn": "file.db"},
		}, nil),
		layer(map[string]any{
			"database": map[string]any{"dsn": ":memory:"},
			"redis":    "localhost:6379",
		}, nil),
	)

	values, err := chain.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg := NewMapConfig(values)
	if got := cfg.GetString("database.driver"); got != "sqlite3" {
		t.Errorf("expected database.driver = sqlite3, got %q", got)
	}
	if got := cfg.GetString("database.dsn"); got != ":memory:" {
		t.Errorf("expected database.dsn = :memory:, got %q", got)
	}
	if got := cfg.GetString("redis"); got != "localhost:6379" {
		t.Errorf("expected redis = localhost:6379, got %q", got)
	}
}

func TestChainLoader_DoesNotMutateLayers(t *testing.T) {
	first := map[string]any{"app": map[string]any{"name": "first"}}
	chain := NewChainLoader(
		layer(first, nil),
		layer(map[string]any{"app": map[string]any{"name": "second"}}, nil),
	)

	if _, err := chain.Load(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := first["app"].(map[string]any)["name"]; got != "first" {
		t.Errorf("expected first layer untouched, got %v", got)
	}
}

func TestChainLoader_SkipsFailingLayer(t *testing.T) {
	chain := NewChainLoader(
		layer(nil, errors.New("missing file")),
		layer(map[string]any{"key": "value"}, nil),
	)

	values, err := chain.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if values["key"] != "value" {
		t.Errorf("expected key = value, got %v", values["key"])
	}
}

func TestChainLoader_StopsOnParseError(t *testing.T) {
	chain := NewChainLoader(
		layer(nil, ErrParseYAML.WithDetail("path", "app.yaml").WithDetail("reason", "bad indent")),
		layer(map[string]any{"key": "value"}, nil),
	)

	if _, err := chain.Load(); !errors.Is(err, ErrParseYAML) {
		t.Fatalf("expected ErrParseYAML, got %v", err)
	}
}

func TestChainLoader_AllLayersFail(t *testing.T) {
	cause := errors.New("second")
	chain := NewChainLoader(
		layer(nil, errors.New("first")),
		layer(nil, cause),
	)

	_, err := chain.Load()
	if !errors.Is(err, ErrNoConfigSource) {
		t.Fatalf("expected ErrNoConfigSource, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected last cause to be wrapped, got %v", err)
	}
}

func TestChainLoader_EmptyLayerCountsAsLoaded(t *testing.T) {
	chain := NewChainLoader(layer(map[string]any{}, nil))

	values, err := chain.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty tree, got %v", values)
	}
}

func TestChainLoader_ScalarReplacesSection(t *testing.T) {
	chain := NewChainLoader(
		layer(map[string]any{"nested": map[string]any{"key": "value"}}, nil),
		layer(map[string]any{"nested": "scalar"}, nil),
	)

	values, err := chain.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if values["nested"] != "scalar" {
		t.Errorf("expected nested = scalar, got %v", values["nested"])
	}
}

func TestStaticLoader_ReturnsIndependentCopies(t *testing.T) {
	loader := NewStaticLoader(map[string]any{"app": map[string]any{"name": "demo"}})

	first, _ := loader.Load()
	first["app"].(map[string]any)["name"] = "changed"

	second, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := second["app"].(map[string]any)["name"]; got != "demo" {
		t.Errorf("expected demo, got %v", got)
	}
}

package config

import (
	"reflect"
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("MODTEST_NAME", "demo")
	t.Setenv("MODTEST_PORT", "8080")
	t.Setenv("MODTEST_MODULAR__STRICT", "false")
	t.Setenv("MODTEST_DATABASE__POOL__MAX_OPEN", "10")
	t.Setenv("MODTEST_RATIO", "0.5")
	t.Setenv("MODTEST_HOSTS", "a,b,c")
	t.Setenv("OTHER_IGNORED", "x")

	values, err := NewEnvLoader("MODTEST_").Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]any{
		"name":    "demo",
		"port":    8080,
		"modular": map[string]any{"strict": false},
		"database": map[string]any{
			"pool": map[string]any{"max_open": 10},
		},
		"ratio": 0.5,
		"hosts": "a,b,c",
	}
	if !reflect.DeepEqual(values, expected) {
		t.Errorf("got %v, expected %v", values, expected)
	}
}

func TestEnvLoader_ScalarThenSection(t *testing.T) {
	values := map[string]any{}
	setNested(values, "redis", "localhost")
	setNested(values, "redis.addr", "localhost:6379")

	cfg := NewMapConfig(values)
	if got := cfg.GetString("redis.addr"); got != "localhost:6379" {
		t.Errorf("expected redis.addr to win, got %q", got)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestYamlLoader_Load(t *testing.T) {
	path := writeFile(t, "app.yaml", `
modular:
  strict: true
  packs:
    - name: storage
      modules: [config, database]
database:
  driver: sqlite3
  dsn: ":memory:"
  pool:
    max_open: 4
    conn_max_lifetime: 30s
`)

	values, err := NewYamlLoader("missing.yaml", path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewMapConfig(values)
	if !cfg.GetBool("modular.strict") {
		t.Error("expected modular.strict = true")
	}
	if got := cfg.GetString("database.dsn"); got != ":memory:" {
		t.Errorf("expected :memory:, got %q", got)
	}
	if got := cfg.GetInt("database.pool.max_open"); got != 4 {
		t.Errorf("expected max_open = 4, got %d", got)
	}

	packs := cfg.GetMapSlice("modular.packs")
	if len(packs) != 1 {
		t.Fatalf("expected one pack, got %d", len(packs))
	}
	if got := packs[0].GetStringSlice("modules"); len(got) != 2 || got[1] != "database" {
		t.Errorf("unexpected modules %v", got)
	}
}

func TestYamlLoader_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "database: [unterminated")

	_, err := NewYamlLoader(path).Load()
	if !errors.Is(err, ErrParseYAML) {
		t.Errorf("expected ErrParseYAML, got %v", err)
	}
}

func TestYamlLoader_FileNotFound(t *testing.T) {
	_, err := NewYamlLoader("nonexistent.yaml").Load()
	if !errors.Is(err, ErrNoConfigSource) {
		t.Errorf("expected ErrNoConfigSource, got %v", err)
	}
}

func TestJSONLoader_Load(t *testing.T) {
	path := writeFile(t, "app.json", `{"redis": {"addrs": ["localhost:6379"], "db": 2}}`)

	values, err := NewJSONLoader(path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewMapConfig(values)
	if got := cfg.GetInt("redis.db"); got != 2 {
		t.Errorf("expected redis.db = 2, got %d", got)
	}
	if got := cfg.GetStringSlice("redis.addrs"); len(got) != 1 || got[0] != "localhost:6379" {
		t.Errorf("unexpected addrs %v", got)
	}
}

func TestJSONLoader_InvalidJSON(t *testing.T) {
	path := writeFile(t, "bad.json", `{"redis":`)

	_, err := NewJSONLoader(path).Load()
	if !errors.Is(err, ErrParseJSON) {
		t.Errorf("expected ErrParseJSON, got %v", err)
	}
}

func TestJSONLoader_SkipsDirectories(t *testing.T) {
	_, err := NewJSONLoader(t.TempDir()).Load()
	if !errors.Is(err, ErrNoConfigSource) {
		t.Errorf("expected ErrNoConfigSource, got %v", err)
	}
}

func TestTomlLoader_Load(t *testing.T) {
	path := writeFile(t, "app.toml", `
[modular]
strict = false

[[modular.packs]]
name = "cache"
modules = ["redis"]

[redis]
addrs = ["localhost:6379"]
db = 3
dial_timeout = "2s"
ping = true
`)

	values, err := NewTomlLoader("missing.toml", path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewMapConfig(values)
	if cfg.GetBool("modular.strict", true) {
		t.Error("expected modular.strict = false")
	}
	if got := cfg.GetInt("redis.db"); got != 3 {
		t.Errorf("expected redis.db = 3, got %d", got)
	}
	if got := cfg.GetDuration("redis.dial_timeout"); got.Seconds() != 2 {
		t.Errorf("expected 2s, got %v", got)
	}

	packs := cfg.GetMapSlice("modular.packs")
	if len(packs) != 1 || packs[0].GetString("name") != "cache" {
		t.Fatalf("unexpected packs %v", packs)
	}
}

func TestTomlLoader_InvalidTOML(t *testing.T) {
	path := writeFile(t, "bad.toml", "[redis\naddrs = ")

	_, err := NewTomlLoader(path).Load()
	if !errors.Is(err, ErrParseTOML) {
		t.Errorf("expected ErrParseTOML, got %v", err)
	}
}

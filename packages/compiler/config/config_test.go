package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"vertzc-go/packages/compiler/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vertzc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.RuntimeImport != "vertz/reactivity" {
		t.Errorf("unexpected runtime import %q", cfg.RuntimeImport)
	}
	if cfg.CacheSize != 128 {
		t.Errorf("unexpected cache size %d", cfg.CacheSize)
	}
	if cfg.RegistryExtras() != nil {
		t.Error("expected no registry extras by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `runtimeImport: "my/runtime"
cacheSize: 16
signalApis:
  useStore:
    signalProperties: [state]
    plainProperties: [dispatch]
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RuntimeImport != "my/runtime" {
		t.Errorf("unexpected runtime import %q", cfg.RuntimeImport)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("unexpected cache size %d", cfg.CacheSize)
	}

	extras := cfg.RegistryExtras()
	api, ok := extras["useStore"]
	if !ok {
		t.Fatal("expected useStore extra")
	}
	if !api.SignalProperties["state"] {
		t.Error("expected state to be a signal property")
	}
	if !api.PlainProperties["dispatch"] {
		t.Error("expected dispatch to be a plain property")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "cacheSize: 4\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RuntimeImport != "vertz/reactivity" {
		t.Errorf("expected default runtime import, got %q", cfg.RuntimeImport)
	}
	if cfg.CacheSize != 4 {
		t.Errorf("unexpected cache size %d", cfg.CacheSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "cacheSize: [oops\n")
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

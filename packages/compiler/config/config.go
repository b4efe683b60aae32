// Package config loads the optional vertzc.yaml compiler configuration.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"vertzc-go/packages/compiler/registry"
)

// APIEntry declares one additional signal-producing factory for the
// registry.
type APIEntry struct {
	SignalProperties      []string `yaml:"signalProperties"`
	PlainProperties       []string `yaml:"plainProperties"`
	FieldSignalProperties []string `yaml:"fieldSignalProperties"`
}

// Config is the compiler configuration. The zero-value-ish Default is fully
// usable; a config file only overrides what it sets.
type Config struct {
	// RuntimeImport is the module the injected signal/computed constructors
	// are imported from.
	RuntimeImport string `yaml:"runtimeImport"`
	// CacheSize bounds the per-compiler transform result cache; 0 disables
	// caching.
	CacheSize int `yaml:"cacheSize"`
	// SignalAPIs extends the built-in signal API table.
	SignalAPIs map[string]APIEntry `yaml:"signalApis"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		RuntimeImport: "vertz/reactivity",
		CacheSize:     128,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if cfg.RuntimeImport == "" {
		cfg.RuntimeImport = Default().RuntimeImport
	}
	return cfg, nil
}

// RegistryExtras converts the configured extra APIs into registry entries.
func (c *Config) RegistryExtras() map[string]*registry.SignalAPIConfig {
	if len(c.SignalAPIs) == 0 {
		return nil
	}
	extras := make(map[string]*registry.SignalAPIConfig, len(c.SignalAPIs))
	for name, entry := range c.SignalAPIs {
		extras[name] = &registry.SignalAPIConfig{
			SignalProperties:      toSet(entry.SignalProperties),
			PlainProperties:       toSet(entry.PlainProperties),
			FieldSignalProperties: toSet(entry.FieldSignalProperties),
		}
	}
	return extras
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

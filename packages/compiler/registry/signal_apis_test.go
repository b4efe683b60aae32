package registry_test

import (
	"testing"

	"vertzc-go/packages/compiler/registry"
)

func TestBuiltinAPIs(t *testing.T) {
	reg := registry.Default()

	for _, name := range []string{"query", "form", "createLoader"} {
		if !reg.IsSignalAPI(name) {
			t.Errorf("expected %q to be a signal API", name)
		}
	}
	if reg.IsSignalAPI("useContext") {
		t.Error("useContext is a reactive source, not a signal API")
	}
	if !reg.IsReactiveSourceAPI("useContext") {
		t.Error("expected useContext to be a reactive source")
	}
	if reg.IsSignalAPI("fetch") || reg.IsReactiveSourceAPI("fetch") {
		t.Error("unknown names must not resolve")
	}
}

func TestQueryConfig(t *testing.T) {
	cfg := registry.Default().Config("query")
	if cfg == nil {
		t.Fatal("expected a config for query")
	}
	if !cfg.SignalProperties["data"] {
		t.Error("query.data must be a signal property")
	}
	if !cfg.PlainProperties["refetch"] {
		t.Error("query.refetch must be a plain property")
	}
	if cfg.SignalProperties["refetch"] {
		t.Error("query.refetch must not be a signal property")
	}
}

func TestUnknownConfigAbsent(t *testing.T) {
	if cfg := registry.Default().Config("nope"); cfg != nil {
		t.Errorf("expected no config for unknown name, got %+v", cfg)
	}
}

func TestWithExtra(t *testing.T) {
	reg := registry.WithExtra(map[string]*registry.SignalAPIConfig{
		"useStore": {SignalProperties: map[string]bool{"state": true}},
	})
	if !reg.IsSignalAPI("useStore") {
		t.Error("expected extra entry to resolve")
	}
	if !reg.IsSignalAPI("query") {
		t.Error("extras must not hide the built-in table")
	}
	if cfg := reg.Config("useStore"); cfg == nil || !cfg.SignalProperties["state"] {
		t.Error("extra config not returned")
	}
}

// Package registry is the single source of truth for which vertz factory
// calls produce signal-object values, which of their returned properties are
// reactive, and which factories are reactive sources whose every property
// read is reactive. Extending support for a new factory means adding one
// entry to the table (or supplying it through WithExtra).
package registry

// SignalAPIConfig describes the returned shape of one signal-producing
// factory API.
type SignalAPIConfig struct {
	// SignalProperties are the returned properties that are themselves
	// signals and need `.value` unwrapping at read sites.
	SignalProperties map[string]bool
	// PlainProperties are passthrough values (callbacks, handles) that must
	// never be unwrapped.
	PlainProperties map[string]bool
	// FieldSignalProperties are properties holding a map of per-field
	// signals, unwrapped one level deeper (`form.fields.email` reads the
	// `email` signal).
	FieldSignalProperties map[string]bool
}

// UIPackageName is the module specifier component imports the signal APIs
// from.
const UIPackageName = "vertz"

func set(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

var signalAPIs = map[string]*SignalAPIConfig{
	"query": {
		SignalProperties: set("data", "error", "loading"),
		PlainProperties:  set("refetch", "mutate"),
	},
	"form": {
		SignalProperties:      set("values", "errors", "submitting"),
		PlainProperties:       set("handleSubmit", "reset"),
		FieldSignalProperties: set("fields"),
	},
	"createLoader": {
		SignalProperties: set("data", "loading", "error"),
		PlainProperties:  set("reload"),
	},
}

var reactiveSourceAPIs = set("useContext")

// Registry answers which factory names produce signal objects or reactive
// sources. The zero table is process-wide and immutable; per-compiler
// extensions are layered on top without mutating it.
type Registry struct {
	extra map[string]*SignalAPIConfig
}

// Default returns a registry backed by the built-in table only.
func Default() *Registry {
	return &Registry{}
}

// WithExtra returns a registry that resolves the given entries in addition
// to the built-in table. Extra entries win on name collision.
func WithExtra(extra map[string]*SignalAPIConfig) *Registry {
	return &Registry{extra: extra}
}

// IsSignalAPI reports whether name is a registered signal-producing factory.
func (r *Registry) IsSignalAPI(name string) bool {
	if _, ok := r.extra[name]; ok {
		return true
	}
	_, ok := signalAPIs[name]
	return ok
}

// IsReactiveSourceAPI reports whether every property read on name's result
// is implicitly reactive.
func (r *Registry) IsReactiveSourceAPI(name string) bool {
	return reactiveSourceAPIs[name]
}

// Config returns the configuration for a registered signal API, or nil when
// name is unknown.
func (r *Registry) Config(name string) *SignalAPIConfig {
	if c, ok := r.extra[name]; ok {
		return c
	}
	return signalAPIs[name]
}

// KnownName reports whether name is either a signal API or a reactive
// source; used when resolving import aliases.
func (r *Registry) KnownName(name string) bool {
	return r.IsSignalAPI(name) || r.IsReactiveSourceAPI(name)
}

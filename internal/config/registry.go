package config

import (
	"sync"

	"github.com/ironlog/ironlog/internal/engine"
)

// Named context providers and hooks, since YAML configuration cannot
// carry Go closures directly (spec.md §10): a host application registers
// functions under a name at startup, and the config names them by
// string. Mirrors the teacher's internal/format.RegisterCustom /
// LookupCustom package-registry pattern, applied here to providers and
// hooks instead of formatters.
var (
	providerRegistryMu sync.Mutex
	providerRegistry   = map[string]engine.ContextProvider{}

	hookRegistryMu sync.Mutex
	hookRegistry   = map[string]engine.Hooks{}
)

// RegisterContextProvider makes a named context provider resolvable from
// a config's context_providers list.
func RegisterContextProvider(name string, fn engine.ContextProvider) {
	providerRegistryMu.Lock()
	defer providerRegistryMu.Unlock()
	providerRegistry[name] = fn
}

// LookupContextProvider resolves a name registered via
// RegisterContextProvider.
func LookupContextProvider(name string) (engine.ContextProvider, bool) {
	providerRegistryMu.Lock()
	defer providerRegistryMu.Unlock()
	fn, ok := providerRegistry[name]
	return fn, ok
}

// RegisterHooks makes a named Hooks bundle resolvable from a config's
// hooks list.
func RegisterHooks(name string, h engine.Hooks) {
	hookRegistryMu.Lock()
	defer hookRegistryMu.Unlock()
	hookRegistry[name] = h
}

// LookupHooks resolves a name registered via RegisterHooks.
func LookupHooks(name string) (engine.Hooks, bool) {
	hookRegistryMu.Lock()
	defer hookRegistryMu.Unlock()
	h, ok := hookRegistry[name]
	return h, ok
}

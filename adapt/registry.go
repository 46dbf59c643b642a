package adapt

import "sync"

// The registry lets NestedNamed fields reference models that are declared
// later (or reference each other). It is the only mutable package state,
// guarded for the declaration phase; loads only read it.
var (
	registryMu sync.RWMutex
	registry   = map[string]*Model{}
)

// Register makes the model available to NestedNamed lookups under its
// name. Registering a second model with the same name replaces the first.
func Register(m *Model) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[m.name] = m
}

// Lookup returns the registered model with the given name.
func Lookup(name string) (*Model, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	return m, ok
}

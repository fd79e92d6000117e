package check

import (
	"sort"
	"sync"
)

// globalRegistry is the single global registry for all checks.
var globalRegistry = &Registry{
	checks: make(map[string]Def),
}

// Registry stores registered checks for discovery.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Def // keyed by Name
}

// Register adds a check to the global registry.
// Call this from init() functions in check packages.
func Register(def Def) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.checks[def.Name] = def
}

// GetAll returns all registered checks sorted by ID.
func GetAll() []Def {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	defs := make([]Def, 0, len(globalRegistry.checks))
	for _, def := range globalRegistry.checks {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// GetByName returns a check by its config-facing name.
func GetByName(name string) (Def, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	def, ok := globalRegistry.checks[name]
	return def, ok
}

// Count returns the number of registered checks.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.checks)
}

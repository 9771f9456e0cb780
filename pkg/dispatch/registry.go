package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/simforge/fea-sim/pkg/contract"
)

// Registry maps test types to their setup routines.
type Registry struct {
	mu       sync.RWMutex
	routines map[string]func() Routine
}

// NewRegistry creates an empty routine registry.
func NewRegistry() *Registry {
	return &Registry{
		routines: make(map[string]func() Routine),
	}
}

// Register adds a routine factory for a test type. The test type must be one
// the configuration contract recognizes: the registry and the contract's
// lookup table grow together.
func (r *Registry) Register(testType string, factory func() Routine) error {
	if _, ok := contract.CanonicalTestType(testType); !ok {
		return fmt.Errorf("test type %s is not part of the configuration contract", testType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routines[testType]; exists {
		return fmt.Errorf("routine for %s already registered", testType)
	}

	r.routines[testType] = factory
	return nil
}

// Get returns a new routine instance for the given test type.
func (r *Registry) Get(testType string) (Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.routines[testType]
	if !exists {
		return nil, fmt.Errorf("no routine registered for test type %s", testType)
	}

	return factory(), nil
}

// List returns all registered test types, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.routines))
	for testType := range r.routines {
		types = append(types, testType)
	}
	sort.Strings(types)
	return types
}

// DefaultRegistry is the global routine registry routine packages register
// into from init.
var DefaultRegistry = NewRegistry()

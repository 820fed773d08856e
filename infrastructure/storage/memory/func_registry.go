// Package memory provides in-memory implementations of domain repositories.
package memory

import (
	"sync"

	"github.com/go-enclave/enclave/domain/tool"
)

// FuncRegistry is an in-memory, order-preserving implementation of
// tool.Registry, bounded at tool.MaxFunctions entries.
type FuncRegistry struct {
	mu    sync.RWMutex
	funcs map[string]tool.Func
	order []string
}

// NewFuncRegistry creates an empty registry.
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{funcs: make(map[string]tool.Func)}
}

// Register adds fn under name, preserving registration order for Names().
func (r *FuncRegistry) Register(name string, fn tool.Func) error {
	if name == "" {
		return tool.ErrEmptyName
	}
	if fn == nil {
		return tool.ErrNoHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return tool.ErrFuncExists
	}
	if len(r.funcs) >= tool.MaxFunctions {
		return tool.ErrTooManyFuncs
	}

	r.funcs[name] = fn
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a function by name.
func (r *FuncRegistry) Get(name string) (tool.Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns registered names in registration order.
func (r *FuncRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Has checks if a function is registered.
func (r *FuncRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.funcs[name]
	return ok
}

// Unregister removes a function from the registry.
func (r *FuncRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; !exists {
		return tool.ErrFuncNotFound
	}

	delete(r.funcs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports how many functions are currently registered.
func (r *FuncRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

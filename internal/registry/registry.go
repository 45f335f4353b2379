package registry

import (
	"fmt"
	"sort"
)

// Func computes a builtin's result from its already evaluated arguments. The
// slice always has exactly Arity elements.
type Func func(args []float64) float64

// Builtin describes one callable function.
type Builtin struct {
	Name  string
	Arity int
	Fn    Func
}

// Registry holds the builtins available to a forward pass.
type Registry struct {
	builtins map[string]*Builtin
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{builtins: make(map[string]*Builtin)}
}

// Register adds a builtin. It panics if the name is already taken or the
// definition is unusable; both are programming errors caught at startup.
func (r *Registry) Register(b *Builtin) {
	if b == nil || b.Name == "" || b.Fn == nil || b.Arity < 0 {
		panic(fmt.Sprintf("invalid builtin definition: %+v", b))
	}
	if _, exists := r.builtins[b.Name]; exists {
		panic(fmt.Sprintf("builtin with name '%s' already registered", b.Name))
	}
	r.builtins[b.Name] = b
}

// Lookup returns the builtin registered under name.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered builtins.
func (r *Registry) Len() int {
	return len(r.builtins)
}

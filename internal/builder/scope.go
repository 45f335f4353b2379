package builder

import (
	"sort"

	"github.com/specialistvlad/noma/internal/nodeid"
)

// Scope maps identifier names to the node ids they are bound to.
type Scope map[string]nodeid.ID

// Clone returns an independent copy of s.
func (s Scope) Clone() Scope {
	out := make(Scope, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Names returns the bound names in sorted order.
func (s Scope) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

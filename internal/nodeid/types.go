// internal/nodeid/types.go
package nodeid

import "strconv"

// ID identifies a node within one graph.
type ID uint32

// String renders the id in the form used by diagnostics, e.g. `%3`.
func (id ID) String() string {
	return "%" + strconv.FormatUint(uint64(id), 10)
}

// Before reports whether id was issued before other.
func (id ID) Before(other ID) bool {
	return id < other
}

// Strings renders a list of ids, keeping order.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

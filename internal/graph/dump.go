package graph

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/specialistvlad/noma/internal/node"
	"github.com/specialistvlad/noma/internal/nodeid"
)

// Dump writes a human-readable table of the graph: one row per node with its
// id, type, current value and inputs. The format is for debugging only.
func (g *ComputationalGraph) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tVALUE\tINPUTS")
	for _, n := range g.nodes {
		value := "-"
		if v, ok := n.Value(); ok {
			value = node.FormatValue(v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t[%s]\n", n.ID, n.Type, value, strings.Join(nodeid.Strings(n.Inputs), " "))
	}
	return tw.Flush()
}

// String returns the Dump output.
func (g *ComputationalGraph) String() string {
	var sb strings.Builder
	_ = g.Dump(&sb)
	return sb.String()
}

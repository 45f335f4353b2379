package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/compiler"
	"github.com/specialistvlad/noma/internal/node"
)

type reportOptions struct {
	DumpGraph bool
	Evaluated bool
	Structs   []*ast.StructDecl
}

// styles binds the report styles to one writer so color is only emitted when
// that writer is a terminal.
type styles struct {
	title lipgloss.Style
	name  lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		name:  r.NewStyle().Bold(true).Width(16),
		label: r.NewStyle().Foreground(lipgloss.Color("241")),
		value: r.NewStyle().Foreground(lipgloss.Color("42")),
		muted: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// writeReport prints one line per compiled function and, if requested, its
// node table.
func writeReport(w io.Writer, units []*compiler.Unit, opts reportOptions) error {
	st := newStyles(w)
	var sb strings.Builder

	sb.WriteString(st.title.Render("Functions"))
	sb.WriteString("\n")
	for _, u := range units {
		sb.WriteString(st.name.Render(u.Name()))
		sb.WriteString(field(st, "result", valueText(st, u.HasResult, opts.Evaluated, u.ResultValue)))
		sb.WriteString(field(st, "objective", valueText(st, u.HasObjective, opts.Evaluated, u.ObjectiveValue)))
		sb.WriteString(field(st, "nodes", fmt.Sprint(u.Graph.Len())))
		sb.WriteString(field(st, "learnables", fmt.Sprint(len(u.Graph.Learnables()))))
		sb.WriteString("\n")
	}

	if len(opts.Structs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(st.title.Render("Structs"))
		sb.WriteString("\n")
		for _, s := range opts.Structs {
			fields := make([]string, len(s.Fields))
			for i, f := range s.Fields {
				fields[i] = f.String()
			}
			sb.WriteString(st.name.Render(s.Name))
			sb.WriteString(st.label.Render("{" + strings.Join(fields, ", ") + "}"))
			sb.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if !opts.DumpGraph {
		return nil
	}
	for _, u := range units {
		if _, err := fmt.Fprintf(w, "\n%s\n", st.title.Render("fn "+u.Name())); err != nil {
			return err
		}
		if err := u.Graph.Dump(w); err != nil {
			return err
		}
	}
	return nil
}

func field(st styles, label, value string) string {
	return "  " + st.label.Render(label+"=") + value
}

func valueText(st styles, present, evaluated bool, get func() (float64, bool)) string {
	if !present {
		return st.muted.Render("none")
	}
	if !evaluated {
		return st.muted.Render("not evaluated")
	}
	v, ok := get()
	if !ok {
		return st.muted.Render("unset")
	}
	return st.value.Render(node.FormatValue(v))
}

// writeProgram prints the statements of every function as they were loaded.
func writeProgram(w io.Writer, prog *ast.Program) error {
	st := newStyles(w)
	var sb strings.Builder
	for _, fn := range prog.Functions {
		sb.WriteString(st.title.Render(fmt.Sprintf("fn %s", fn.Name)))
		sb.WriteString(st.muted.Render("  " + fn.Pos.String()))
		sb.WriteString("\n")
		for _, s := range fn.Body {
			sb.WriteString("  ")
			sb.WriteString(s.String())
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

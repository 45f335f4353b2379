package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/ctxlog"
	"github.com/specialistvlad/noma/internal/fsutil"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader parses program files. It keeps every parsed file so diagnostics can
// be rendered with source snippets.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a loader with an empty file cache.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns the parsed files keyed by name, for hcl.NewDiagnosticTextWriter.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load resolves paths into program files, parses each one and merges them into
// one program. Function names must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*ast.Program, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ResolveFiles(FileExtension, paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", FileExtension, paths)
	}
	logger.Debug("Found program files to load.", "files", files)

	prog := &ast.Program{}
	for _, path := range files {
		hclFile, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		p, diags := decodeFile(hclFile)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}
		prog.Merge(p)
		logger.Debug("Loaded program file.", "file", path, "functions", len(p.Functions), "structs", len(p.Structs))
	}

	if diags := checkUnique(prog); diags.HasErrors() {
		return nil, diags
	}

	logger.Info("📦 Program loaded.", "files", len(files), "functions", len(prog.Functions), "structs", len(prog.Structs))
	return prog, nil
}

// Parse translates a single in-memory source.
func (l *Loader) Parse(filename string, src []byte) (*ast.Program, hcl.Diagnostics) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	prog, more := decodeFile(hclFile)
	diags = append(diags, more...)
	if diags.HasErrors() {
		return nil, diags
	}
	diags = append(diags, checkUnique(prog)...)
	if diags.HasErrors() {
		return nil, diags
	}
	return prog, diags
}

func decodeFile(f *hcl.File) (*ast.Program, hcl.Diagnostics) {
	content, diags := f.Body.Content(fileSchema)
	prog := &ast.Program{}

	for _, block := range content.Blocks {
		switch block.Type {
		case "fn":
			fn, more := decodeFunction(block)
			diags = append(diags, more...)
			if fn != nil {
				prog.Functions = append(prog.Functions, fn)
			}
		case "struct":
			decl, more := decodeStruct(block)
			diags = append(diags, more...)
			if decl != nil {
				prog.Structs = append(prog.Structs, decl)
			}
		}
	}
	return prog, diags
}

func decodeFunction(block *hcl.Block) (*ast.Function, hcl.Diagnostics) {
	content, diags := block.Body.Content(fnSchema)
	fn := &ast.Function{Name: block.Labels[0], Pos: pos(block.DefRange)}
	for _, name := range []string{"minimize", "return"} {
		_, more := findUniqueBlock(content.Blocks, name)
		diags = append(diags, more...)
	}

	for _, sb := range content.Blocks {
		st, more := decodeStatement(sb)
		diags = append(diags, more...)
		if st != nil {
			fn.Body = append(fn.Body, st)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return fn, diags
}

func decodeStatement(block *hcl.Block) (ast.Statement, hcl.Diagnostics) {
	p := pos(block.DefRange)

	switch block.Type {
	case "param":
		var body paramBody
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		return &ast.Param{Name: block.Labels[0], Value: body.Value, Pos: p}, nil

	case "learn":
		initial, diags := decodeExpr(block, learnSchema, "init")
		if diags.HasErrors() {
			return nil, diags
		}
		return &ast.Learn{Name: block.Labels[0], Init: initial, Pos: p}, diags

	case "return":
		value, diags := decodeExpr(block, returnSchema, "value")
		if diags.HasErrors() {
			return nil, diags
		}
		return &ast.Return{Value: value, Pos: p}, diags
	}

	value, diags := decodeExpr(block, valueSchema, "value")
	if diags.HasErrors() {
		return nil, diags
	}

	switch block.Type {
	case "let":
		return &ast.Let{Name: block.Labels[0], Value: value, Pos: p}, diags
	case "expr":
		return &ast.ExprStmt{Value: value, Pos: p}, diags
	default:
		return &ast.Minimize{Value: value, Pos: p}, diags
	}
}

// decodeExpr translates the named attribute of block. An optional attribute
// that is absent yields a nil expression.
func decodeExpr(block *hcl.Block, schema *hcl.BodySchema, name string) (ast.Expr, hcl.Diagnostics) {
	content, diags := block.Body.Content(schema)
	if diags.HasErrors() {
		return nil, diags
	}
	attr, ok := content.Attributes[name]
	if !ok {
		return nil, diags
	}
	value, more := TranslateExpr(attr.Expr)
	diags = append(diags, more...)
	if diags.HasErrors() {
		return nil, diags
	}
	return value, diags
}

func decodeStruct(block *hcl.Block) (*ast.StructDecl, hcl.Diagnostics) {
	content, diags := block.Body.Content(structSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	decl := &ast.StructDecl{Name: block.Labels[0], Pos: pos(block.DefRange)}
	attr, ok := content.Attributes["fields"]
	if !ok {
		return decl, diags
	}
	fields, more := decodeFields(attr.Expr)
	diags = append(diags, more...)
	if diags.HasErrors() {
		return nil, diags
	}
	decl.Fields = fields
	return decl, diags
}

// decodeFields accepts `{ x = f64 }` for typed fields, keeping source order,
// or `["x"]` for untyped ones.
func decodeFields(expr hcl.Expression) ([]ast.Field, hcl.Diagnostics) {
	if pairs, diags := hcl.ExprMap(expr); !diags.HasErrors() {
		fields := make([]ast.Field, 0, len(pairs))
		for _, pair := range pairs {
			name, diags := fieldWord(pair.Key)
			if diags.HasErrors() {
				return nil, diags
			}
			typ, diags := fieldWord(pair.Value)
			if diags.HasErrors() {
				return nil, diags
			}
			fields = append(fields, ast.Field{Name: name, Type: typ})
		}
		return fields, nil
	}

	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid struct fields",
			Detail:   "Fields must be a list of names or a map of names to types.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	fields := make([]ast.Field, 0, len(items))
	for _, item := range items {
		name, diags := fieldWord(item)
		if diags.HasErrors() {
			return nil, diags
		}
		fields = append(fields, ast.Field{Name: name})
	}
	return fields, nil
}

// fieldWord reads a bare word such as f64 or a quoted string.
func fieldWord(expr hcl.Expression) (string, hcl.Diagnostics) {
	if word := hcl.ExprAsKeyword(expr); word != "" {
		return word, nil
	}
	invalid := hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid struct field",
		Detail:   "Field names and types must be plain words or strings.",
		Subject:  expr.Range().Ptr(),
	}}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.IsKnown() {
		return "", invalid
	}
	var s string
	if err := gocty.FromCtyValue(v, &s); err != nil || s == "" {
		return "", invalid
	}
	return s, nil
}

// findUniqueBlock returns the block of the given type, reporting every repeat
// after the first.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed per function.",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}
	return found, diags
}

func checkUnique(prog *ast.Program) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := make(map[string]ast.Pos)
	for _, fn := range prog.Functions {
		if first, ok := seen[fn.Name]; ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate function",
				Detail:   fmt.Sprintf("Function %q was already declared at %s.", fn.Name, first),
				Subject:  rangeOf(fn.Pos),
			})
			continue
		}
		seen[fn.Name] = fn.Pos
	}
	return diags
}

func pos(r hcl.Range) ast.Pos {
	return ast.Pos{File: r.Filename, Line: r.Start.Line, Column: r.Start.Column}
}

func rangeOf(p ast.Pos) *hcl.Range {
	start := hcl.Pos{Line: p.Line, Column: p.Column}
	return &hcl.Range{Filename: p.File, Start: start, End: start}
}

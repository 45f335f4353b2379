package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/noma/internal/ast"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var binaryOperators = map[*hclsyntax.Operation]ast.BinaryOperator{
	hclsyntax.OpAdd:                ast.Add,
	hclsyntax.OpSubtract:           ast.Sub,
	hclsyntax.OpMultiply:           ast.Mul,
	hclsyntax.OpDivide:             ast.Div,
	hclsyntax.OpEqual:              ast.Equal,
	hclsyntax.OpNotEqual:           ast.NotEqual,
	hclsyntax.OpLessThan:           ast.Less,
	hclsyntax.OpGreaterThan:        ast.Greater,
	hclsyntax.OpLessThanOrEqual:    ast.LessEq,
	hclsyntax.OpGreaterThanOrEqual: ast.GreaterEq,
}

// rejectedOperators name the HCL operators that have no graph opcode.
var rejectedOperators = map[*hclsyntax.Operation]string{
	hclsyntax.OpModulo:     "%",
	hclsyntax.OpLogicalAnd: "&&",
	hclsyntax.OpLogicalOr:  "||",
}

// TranslateExpr converts an HCL expression into an ast.Expr. Only expressions
// produced by the native syntax parser are accepted.
func TranslateExpr(expr hcl.Expression) (ast.Expr, hcl.Diagnostics) {
	se, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported expression",
			Detail:   "Only native HCL syntax expressions can be compiled.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return translate(se)
}

func translate(expr hclsyntax.Expression) (ast.Expr, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		v, diags := literal(e.Val, e.SrcRange)
		if diags.HasErrors() {
			return nil, diags
		}
		return &ast.Number{Value: v}, nil

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, unsupported(e.SrcRange, "attribute or index access", "Only plain names can be referenced.")
		}
		return &ast.Identifier{Name: e.Traversal.RootName()}, nil

	case *hclsyntax.RelativeTraversalExpr, *hclsyntax.IndexExpr, *hclsyntax.SplatExpr:
		return nil, unsupported(expr.Range(), "attribute or index access", "Only plain names can be referenced.")

	case *hclsyntax.ParenthesesExpr:
		return translate(e.Expression)

	case *hclsyntax.BinaryOpExpr:
		if sym, rejected := rejectedOperators[e.Op]; rejected {
			return nil, unsupported(e.SrcRange, fmt.Sprintf("operator %q", sym), "This operator has no numeric meaning in a graph.")
		}
		op, ok := binaryOperators[e.Op]
		if !ok {
			return nil, unsupported(e.SrcRange, "binary operator", "")
		}
		left, diags := translate(e.LHS)
		if diags.HasErrors() {
			return nil, diags
		}
		right, diags := translate(e.RHS)
		if diags.HasErrors() {
			return nil, diags
		}
		return &ast.Binary{Left: left, Op: op, Right: right}, nil

	case *hclsyntax.UnaryOpExpr:
		var op ast.UnaryOperator
		switch e.Op {
		case hclsyntax.OpNegate:
			op = ast.Neg
		case hclsyntax.OpLogicalNot:
			op = ast.Not
		default:
			return nil, unsupported(e.SrcRange, "unary operator", "")
		}
		operand, diags := translate(e.Val)
		if diags.HasErrors() {
			return nil, diags
		}
		return &ast.Unary{Op: op, Operand: operand}, nil

	case *hclsyntax.FunctionCallExpr:
		if e.ExpandFinal {
			return nil, unsupported(e.Range(), "argument expansion", "Calls take a fixed list of arguments.")
		}
		args := make([]ast.Expr, 0, len(e.Args))
		for _, a := range e.Args {
			arg, diags := translate(a)
			if diags.HasErrors() {
				return nil, diags
			}
			args = append(args, arg)
		}
		return &ast.Call{Name: e.Name, Args: args}, nil

	case *hclsyntax.TemplateExpr, *hclsyntax.TemplateWrapExpr:
		return nil, unsupported(expr.Range(), "string", "Only numbers and booleans are scalar values.")

	case *hclsyntax.ConditionalExpr:
		return nil, unsupported(e.SrcRange, "conditional expression", "Use the relational operators, which yield 1 or 0.")

	default:
		return nil, unsupported(expr.Range(), fmt.Sprintf("%T", expr), "")
	}
}

// literal converts a literal cty value to a float64. Booleans map to 1 and 0.
func literal(v cty.Value, rng hcl.Range) (float64, hcl.Diagnostics) {
	if v.IsNull() || !v.IsKnown() {
		return 0, unsupported(rng, "null value", "")
	}
	switch v.Type() {
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return 0, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid number",
				Detail:   err.Error(),
				Subject:  rng.Ptr(),
			}}
		}
		return f, nil
	case cty.Bool:
		if v.True() {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, unsupported(rng, v.Type().FriendlyName()+" literal", "Only numbers and booleans are scalar values.")
	}
}

func unsupported(rng hcl.Range, what, detail string) hcl.Diagnostics {
	if detail == "" {
		detail = "This construct cannot be lowered into a computational graph."
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported " + what,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}

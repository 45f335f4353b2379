package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// FileExtension is the suffix used to discover program files in a directory.
const FileExtension = ".noma.hcl"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "fn", LabelNames: []string{"name"}},
		{Type: "struct", LabelNames: []string{"name"}},
	},
}

var fnSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "param", LabelNames: []string{"name"}},
		{Type: "learn", LabelNames: []string{"name"}},
		{Type: "let", LabelNames: []string{"name"}},
		{Type: "expr"},
		{Type: "minimize"},
		{Type: "return"},
	},
}

// paramBody is the body of `param "x" { value = 2 }`.
type paramBody struct {
	Value float64 `hcl:"value"`
}

// learnSchema is the body of `learn "w" { init = 0.5 }`.
var learnSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "init", Required: true}},
}

// valueSchema is the body of let, expr and minimize blocks.
var valueSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "value", Required: true}},
}

// returnSchema allows `return {}` for a function without a result.
var returnSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "value"}},
}

// structSchema is the body of `struct "Point" { fields = { x = f64, y = f64 } }`.
// A list of names declares untyped fields.
var structSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "fields"}},
}

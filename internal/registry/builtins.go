package registry

import "math"

// Default returns a registry with the standard builtins.
func Default() *Registry {
	r := New()
	RegisterMath(r)
	return r
}

// RegisterMath adds the numeric builtins to r.
func RegisterMath(r *Registry) {
	unary := func(name string, fn func(float64) float64) {
		r.Register(&Builtin{Name: name, Arity: 1, Fn: func(a []float64) float64 { return fn(a[0]) }})
	}
	binary := func(name string, fn func(float64, float64) float64) {
		r.Register(&Builtin{Name: name, Arity: 2, Fn: func(a []float64) float64 { return fn(a[0], a[1]) }})
	}

	unary("sigmoid", Sigmoid)
	unary("relu", ReLU)
	unary("tanh", math.Tanh)
	unary("exp", math.Exp)
	unary("log", math.Log)
	unary("abs", math.Abs)
	unary("sqrt", math.Sqrt)

	binary("pow", math.Pow)
	binary("min", math.Min)
	binary("max", math.Max)
	binary("mse", MSE)
}

// Sigmoid is 1/(1+e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ReLU is max(0, x). NaN propagates.
func ReLU(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// MSE is the squared error of a single prediction against its target.
func MSE(prediction, target float64) float64 {
	d := prediction - target
	return d * d
}

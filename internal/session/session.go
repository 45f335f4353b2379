// Package session compiles and evaluates the functions of a program. Each
// function gets its own graph, so functions run concurrently without sharing
// any mutable state.
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/compiler"
	"github.com/specialistvlad/noma/internal/ctxlog"
	"github.com/specialistvlad/noma/internal/executor"
	"github.com/specialistvlad/noma/internal/graph"
	"github.com/specialistvlad/noma/internal/metrics"
	"github.com/specialistvlad/noma/internal/registry"
	"golang.org/x/sync/errgroup"
)

// Options controls a session run.
type Options struct {
	// Workers bounds how many functions are processed at once. Zero or less
	// means GOMAXPROCS.
	Workers int
	// Evaluate runs the forward pass after compiling. When false the run stops
	// after graph construction.
	Evaluate bool
	// Registry resolves function calls. Nil means registry.Default().
	Registry *registry.Registry
}

// Run compiles every function and, if requested, evaluates it. The first
// failure cancels the remaining work and is returned. On success the units are
// returned in the order of fns.
func Run(ctx context.Context, fns []*ast.Function, opts Options) ([]*compiler.Unit, error) {
	logger := ctxlog.FromContext(ctx)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	logger.Debug("Starting session.", "functions", len(fns), "workers", workers, "evaluate", opts.Evaluate)

	units := make([]*compiler.Unit, len(fns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			u, err := runOne(gctx, fn, reg, opts.Evaluate)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Session finished.", "functions", len(units))
	return units, nil
}

func runOne(ctx context.Context, fn *ast.Function, reg *registry.Registry, evaluate bool) (*compiler.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, logger := ctxlog.With(ctx, "function", fn.Name)

	u, err := compiler.Compile(ctx, fn, compiler.WithRegistry(reg))
	if err != nil {
		metrics.ObserveCompileError(Reason(err))
		return nil, err
	}
	metrics.ObserveGraph(u.Graph)

	if !evaluate {
		return u, nil
	}

	start := time.Now()
	err = executor.New(u.Graph, reg).Execute(ctx)
	metrics.ObserveForwardPass(start, err)
	if err != nil {
		return nil, fmt.Errorf("fn %q: forward pass failed: %w", fn.Name, err)
	}
	logger.Debug("Forward pass complete.", "nodes", u.Graph.Len(), "duration", time.Since(start))
	return u, nil
}

// Reason classifies a compile error for metrics labels.
func Reason(err error) string {
	var gerr *graph.Error
	switch {
	case errors.As(err, &gerr):
		return gerr.Kind.Error()
	case errors.Is(err, compiler.ErrDuplicateObjective):
		return "duplicate objective"
	case errors.Is(err, compiler.ErrDuplicateResult):
		return "duplicate result"
	default:
		return "other"
	}
}

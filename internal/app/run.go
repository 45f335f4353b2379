package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/noma/internal/ctxlog"
	"github.com/specialistvlad/noma/internal/metrics"
	"github.com/specialistvlad/noma/internal/session"
)

// Run loads the program, compiles and evaluates its functions, and writes the
// report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()
	defer func() {
		if err := a.closeHealthCheckServer(); err != nil {
			a.logger.Warn("Health check server did not shut down cleanly.", "error", err)
		}
	}()

	prog, err := a.loader.Load(ctx, a.config.ProgramPaths...)
	if err != nil {
		a.writeDiagnostics(err)
		return fmt.Errorf("failed to load program: %w", err)
	}

	if len(prog.Functions) == 0 {
		a.logger.Warn("No functions found in program, nothing to compile.")
	}

	if a.config.PrintAST {
		if err := writeProgram(a.outW, prog); err != nil {
			return err
		}
	}

	a.logger.Info("🚀 Compiling functions...", "count", len(prog.Functions), "evaluate", !a.config.CheckOnly)
	units, err := session.Run(ctx, prog.Functions, session.Options{
		Workers:  a.config.WorkerCount,
		Evaluate: !a.config.CheckOnly,
		Registry: a.registry,
	})
	if err != nil {
		a.writeMetricsFile()
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.", "functions", len(units))

	if err := writeReport(a.outW, units, reportOptions{
		DumpGraph: a.config.DumpGraph,
		Evaluated: !a.config.CheckOnly,
		Structs:   prog.Structs,
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.writeMetricsFile()
	a.logger.Debug("App.Run method finished.")
	return nil
}

// writeDiagnostics renders HCL diagnostics with source snippets when err
// carries any.
func (a *App) writeDiagnostics(err error) {
	var diags hcl.Diagnostics
	if !errors.As(err, &diags) {
		return
	}
	wr := hcl.NewDiagnosticTextWriter(a.outW, a.loader.Files(), 78, false)
	if werr := wr.WriteDiagnostics(diags); werr != nil {
		a.logger.Warn("Failed to render diagnostics.", "error", werr)
	}
}

func (a *App) writeMetricsFile() {
	if a.config.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(a.config.MetricsFile); err != nil {
		a.logger.Error("Failed to write metrics file.", "path", a.config.MetricsFile, "error", err)
		return
	}
	a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
}

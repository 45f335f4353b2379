package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/noma/internal/ctxlog"
	"github.com/specialistvlad/noma/internal/hcl"
	"github.com/specialistvlad/noma/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	loader     *hcl.Loader
	registry   *registry.Registry
	httpServer *http.Server
}

// NewApp creates an App that writes its report to outW and its logs to logW.
// If reg is nil the default builtins are used.
func NewApp(outW, logW io.Writer, cfg *Config, reg *registry.Registry) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if reg == nil {
		reg = registry.Default()
	}
	logger.Debug("Builtins registered.", "count", reg.Len(), "names", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		ctx:      ctxlog.WithLogger(context.Background(), logger),
		config:   cfg,
		loader:   hcl.NewLoader(),
		registry: reg,
	}
}

// Registry returns the builtins the app evaluates against.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Package testutil runs the application end to end against program files
// written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/noma/internal/app"
	"github.com/specialistvlad/noma/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	Dir       string
	App       *app.App
}

// Option adjusts the app configuration used by the harness.
type Option func(cfg *app.Config)

// WithGraph enables the node table dump.
func WithGraph() Option { return func(cfg *app.Config) { cfg.DumpGraph = true } }

// WithAST enables the statement listing.
func WithAST() Option { return func(cfg *app.Config) { cfg.PrintAST = true } }

// CheckOnly disables the forward pass.
func CheckOnly() Option { return func(cfg *app.Config) { cfg.CheckOnly = true } }

// WithMetricsFile writes metrics to name inside the program directory
// (HarnessResult.Dir).
func WithMetricsFile(name string) Option {
	return func(cfg *app.Config) {
		cfg.MetricsFile = filepath.Join(cfg.ProgramPaths[0], name)
	}
}

// RunIntegrationTest writes files into a temporary directory and runs the app
// over it with the default builtins.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithRegistry(context.Background(), t, files, nil, opts...)
}

// RunIntegrationTestWithRegistry is RunIntegrationTest with a caller supplied
// context and builtin registry.
func RunIntegrationTestWithRegistry(ctx context.Context, t *testing.T, files map[string]string, reg *registry.Registry, opts ...Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	programDir := filepath.Join(tmpDir, "program")
	require.NoError(t, os.Mkdir(programDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(programDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		ProgramPaths: []string{programDir},
		LogLevel:     "debug",
		LogFormat:    "text",
		WorkerCount:  4,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	testApp := app.NewApp(out, logs, appConfig, reg)
	runErr := testApp.Run(ctx)

	if os.Getenv("NOMA_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		Dir:       programDir,
		App:       testApp,
	}
}

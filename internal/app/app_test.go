package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/specialistvlad/noma/internal/ast"
	"github.com/specialistvlad/noma/internal/compiler"
	"github.com/specialistvlad/noma/internal/executor"
	"github.com/specialistvlad/noma/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	newLogger("warn", "json", &buf).Info("hidden")
	newLogger("warn", "json", &buf).Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	newLogger("bogus", "text", &buf).Info("default level is info")
	assert.Contains(t, buf.String(), "msg=\"default level is info\"")
}

func TestNewApp_DefaultRegistry(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfig(Config{ProgramPaths: []string{"p"}})
	require.NoError(t, err)

	a := NewApp(io.Discard, io.Discard, cfg, nil)

	_, ok := a.Registry().Lookup("sigmoid")
	assert.True(t, ok)
}

func TestHealthMux(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfig(Config{ProgramPaths: []string{"p"}})
	require.NoError(t, err)
	a := NewApp(io.Discard, io.Discard, cfg, registry.New())
	srv := httptest.NewServer(a.newHealthMux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "noma_forward_pass_duration_seconds")
}

func TestHealthCheckServer_Disabled(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfig(Config{ProgramPaths: []string{"p"}})
	require.NoError(t, err)
	a := NewApp(io.Discard, io.Discard, cfg, nil)

	a.healthCheckServer()

	assert.Nil(t, a.httpServer)
	assert.NoError(t, a.closeHealthCheckServer())
}

func TestWriteReport(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	fn := &ast.Function{Name: "main", Body: []ast.Statement{
		&ast.Learn{Name: "w", Init: &ast.Number{Value: 3}},
		&ast.Return{Value: &ast.Binary{Left: &ast.Identifier{Name: "w"}, Op: ast.Mul, Right: &ast.Number{Value: 2}}},
	}}
	u, err := compiler.Compile(context.Background(), fn)
	require.NoError(t, err)
	require.NoError(t, executor.Evaluate(context.Background(), u.Graph, registry.Default()))
	var out bytes.Buffer

	// --- Act ---
	err = writeReport(&out, []*compiler.Unit{u}, reportOptions{
		DumpGraph: true,
		Evaluated: true,
		Structs:   []*ast.StructDecl{{Name: "Point", Fields: []ast.Field{{Name: "x", Type: "f64"}, {Name: "y"}}}},
	})

	// --- Assert ---
	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Functions")
	assert.Contains(t, text, "main")
	assert.Contains(t, text, "result=")
	assert.Contains(t, text, "6")
	assert.Contains(t, text, "objective=")
	assert.Contains(t, text, "none")
	assert.Contains(t, text, "learnables=")
	assert.Contains(t, text, "Point")
	assert.Contains(t, text, "x: f64, y")
	assert.Contains(t, text, "Learnable(w)")
	assert.Contains(t, text, "BinaryOp(mul)")
}

func TestWriteProgram(t *testing.T) {
	t.Parallel()
	prog := &ast.Program{Functions: []*ast.Function{{
		Name: "f",
		Pos:  ast.Pos{File: "f.noma.hcl", Line: 1, Column: 1},
		Body: []ast.Statement{&ast.Param{Name: "x", Value: 2}, &ast.Return{Value: &ast.Identifier{Name: "x"}}},
	}}}
	var out bytes.Buffer

	require.NoError(t, writeProgram(&out, prog))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "fn f")
	assert.Contains(t, lines[0], "f.noma.hcl:1:1")
	assert.Equal(t, "  param x = 2", lines[1])
	assert.Equal(t, "  return x", lines[2])
}

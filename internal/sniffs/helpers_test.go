package sniffs_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/engine"
	"phpsniff/internal/source"
)

const (
	plainPath       = "src/core/lib/helpers.php"
	integrationPath = "src/integrations/google-sheets/actions/add-row.php"
)

type harness struct {
	t    *testing.T
	e    *engine.Engine
	path string
}

func newHarness(t *testing.T, path string, mutate func(*config.Config), rules ...engine.Rule) *harness {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	compiled, err := config.Compile(cfg)
	require.NoError(t, err)
	reg := engine.NewRegistry()
	require.NoError(t, reg.Register(rules...))
	return &harness{t: t, e: engine.New(compiled, reg), path: path}
}

func (h *harness) ctx() context.Context {
	return zerolog.New(zerolog.NewTestWriter(h.t)).WithContext(context.Background())
}

func (h *harness) file(src string) *source.File {
	return source.NewFile(1, h.path, []byte(src), source.FileVirtual)
}

func (h *harness) lint(src string) []diag.Diagnostic {
	h.t.Helper()
	res, err := h.e.Lint(h.ctx(), h.file(src))
	require.NoError(h.t, err)
	require.False(h.t, res.Aborted, "source did not lex: %v", res.Diagnostics)
	return res.Diagnostics
}

func (h *harness) fix(src string) string {
	h.t.Helper()
	res, err := h.e.Fix(h.ctx(), h.file(src), engine.FixOptions{})
	require.NoError(h.t, err)
	require.True(h.t, res.Converged)
	for _, d := range res.Final.Diagnostics {
		require.False(h.t, d.Fixable(), "fix left %s: %s", d.Code.ID(), d.Message)
	}
	return string(res.Output)
}

func codesOf(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

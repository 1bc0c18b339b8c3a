package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/sniffs"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeProject(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "phpsniff.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version = 1\n\n[fixer]\nmax_passes = 10\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "dirty.php"), []byte("<?php\n$a = 1;   \n"), 0o644))
	return dir, cfgPath
}

func TestCheckReportsAndFails(t *testing.T) {
	dir, cfg := writeProject(t)

	stdout, stderr, err := execute(t, "check", "--config", cfg, "--color", "off", "--log-level", "disabled",
		"--format", "short", "--quiet=false", filepath.Join(dir, "src"))
	require.ErrorIs(t, err, errFindings)
	assert.Contains(t, stdout, "dirty.php:2:8: error STY6003 WhiteSpace.SuperfluousWhitespace.EndLine: Whitespace found at end of line (fixable)")
	assert.Contains(t, stderr, "1 files checked: 1 errors, 0 warnings (1 fixable)")
}

func TestFixRewritesFiles(t *testing.T) {
	dir, cfg := writeProject(t)
	path := filepath.Join(dir, "src", "dirty.php")

	_, stderr, err := execute(t, "fix", "--config", cfg, "--color", "off", "--log-level", "disabled",
		"--format", "short", "--dry-run=false", filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "fixed")
	assert.Contains(t, stderr, "dirty.php (1 fixes in 1 passes)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n$a = 1;\n", string(data))
}

func TestFixRejectsUnknownCode(t *testing.T) {
	_, cfg := writeProject(t)
	_, _, err := execute(t, "fix", "--config", cfg, "--log-level", "disabled", "--only", "Nope.Nothing", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown code or rule")
	// flags persist on the shared command
	require.NoError(t, fixCmd.Flags().Set("only", ""))
}

func TestRulesJSON(t *testing.T) {
	_, cfg := writeProject(t)
	stdout, _, err := execute(t, "rules", "--config", cfg, "--log-level", "disabled", "--format", "json")
	require.NoError(t, err)

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	require.Len(t, infos, len(sniffs.All()))
	for _, r := range infos {
		assert.False(t, r.Disabled, r.Name)
		assert.NotEmpty(t, r.Codes, r.Name)
	}
}

func TestDescribeRulesMarksDisabled(t *testing.T) {
	all := sniffs.All()
	enabled := all[1:]
	infos := describeRules([]string{"STY6003"}, all, enabled)

	assert.True(t, infos[0].Disabled)
	for _, c := range infos[0].Codes {
		assert.True(t, c.Disabled)
	}
	for _, r := range infos[1:] {
		assert.False(t, r.Disabled, r.Name)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	require.NoError(t, err)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "phpsniff", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.Equal(t, "unknown", payload.GitCommit)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"30s", 30 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"0", -1},
		{"0s", -1},
	}
	for _, tt := range tests {
		got, err := parseTimeout(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := parseTimeout("soon")
	require.Error(t, err)
}

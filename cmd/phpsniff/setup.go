package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/config"
	"phpsniff/internal/diag"
	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/engine"
	"phpsniff/internal/sniffs"
)

// loadEngine resolves the config for the working directory (or --config)
// and builds an engine with every built-in rule.
func loadEngine(cmd *cobra.Command) (*engine.Engine, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, errors.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("working directory: %w", err)
	}
	cfg := config.ResolveOrDefault(cmd.Context(), wd, explicit)
	compiled, err := config.Compile(cfg)
	if err != nil {
		return nil, errors.Errorf("compile config: %w", err)
	}
	zerolog.Ctx(cmd.Context()).Debug().Str("fingerprint", compiled.Fingerprint).Msg("config ready")
	return engine.New(compiled, sniffs.Registry()), nil
}

// scanFlags are shared by check and fix.
type scanFlags struct {
	jobs           int
	timeout        string
	progress       bool
	maxDiagnostics int
	quiet          bool
	timings        bool
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("timeout", driver.DefaultTimeout.String(), "per-file scan timeout (0 disables)")
	cmd.Flags().Bool("progress", false, "show a live progress view while scanning")
}

func readScanFlags(cmd *cobra.Command) (scanFlags, error) {
	var sf scanFlags
	var err error
	if sf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return sf, errors.Errorf("failed to get jobs flag: %w", err)
	}
	if sf.timeout, err = cmd.Flags().GetString("timeout"); err != nil {
		return sf, errors.Errorf("failed to get timeout flag: %w", err)
	}
	if sf.progress, err = cmd.Flags().GetBool("progress"); err != nil {
		return sf, errors.Errorf("failed to get progress flag: %w", err)
	}
	if sf.maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
		return sf, errors.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if sf.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return sf, errors.Errorf("failed to get quiet flag: %w", err)
	}
	if sf.timings, err = cmd.Flags().GetBool("timings"); err != nil {
		return sf, errors.Errorf("failed to get timings flag: %w", err)
	}
	return sf, nil
}

func (sf scanFlags) options() (driver.Options, error) {
	timeout, err := parseTimeout(sf.timeout)
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Jobs:           sf.jobs,
		Timeout:        timeout,
		MaxDiagnostics: sf.maxDiagnostics,
	}, nil
}

func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// collect merges per-file diagnostics into one bag in report order.
func collect(rep *driver.Report, keep func(*diag.Diagnostic) bool) *diag.Bag {
	bag := diag.NewBag(0)
	for _, f := range rep.Files {
		for _, d := range f.Diagnostics {
			if keep == nil || keep(&d) {
				bag.Add(d)
			}
		}
	}
	return bag
}

// sarifRules describes the engine's rules for SARIF output.
func sarifRules(eng *engine.Engine) []diagfmt.RuleMeta {
	rules := eng.Rules()
	out := make([]diagfmt.RuleMeta, 0, len(rules))
	for _, r := range rules {
		meta := diagfmt.RuleMeta{Name: r.Name()}
		for _, c := range engine.RuleCodes(r) {
			meta.Codes = append(meta.Codes, diagfmt.CodeMeta{ID: c.ID(), Name: c.Name(), Title: c.Title()})
		}
		out = append(out, meta)
	}
	return out
}

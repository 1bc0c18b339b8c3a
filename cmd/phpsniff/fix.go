package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Apply automatic fixes to PHP files",
	Long: `Fix rescans and rewrites each file until no safe fix applies, then reports
whatever diagnostics remain. Files keep their line endings, BOM and mode.`,
	RunE: runFix,
}

func init() {
	addOutputFlags(fixCmd)
	addScanFlags(fixCmd)
	fixCmd.Flags().Bool("once", false, "apply only the first fix of each file")
	fixCmd.Flags().String("only", "", "apply only fixes for this code, sniff name or rule")
	fixCmd.Flags().Bool("dry-run", false, "compute fixes without writing files")
	fixCmd.Flags().Int("max-passes", 0, "cap on scan and fix passes per file (0 = configured value)")
}

func runFix(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	sf, err := readScanFlags(cmd)
	if err != nil {
		return err
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return errors.Errorf("failed to get once flag: %w", err)
	}
	only, err := cmd.Flags().GetString("only")
	if err != nil {
		return errors.Errorf("failed to get only flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return errors.Errorf("failed to get dry-run flag: %w", err)
	}
	maxPasses, err := cmd.Flags().GetInt("max-passes")
	if err != nil {
		return errors.Errorf("failed to get max-passes flag: %w", err)
	}
	if once && only != "" {
		return errors.New("--once and --only cannot be used together")
	}
	if only != "" && !knownRule(only) {
		return errors.Errorf("unknown code or rule %q", only)
	}

	eng, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	opts, err := sf.options()
	if err != nil {
		return err
	}
	opts.Fix = true
	opts.DryRun = dryRun
	opts.FixOptions.MaxPasses = maxPasses
	switch {
	case once:
		opts.FixOptions.Apply = fix.ApplyOptions{Mode: fix.ApplyModeOnce}
	case only != "":
		opts.FixOptions.Apply = fix.ApplyOptions{Mode: fix.ApplyModeCode, Target: only}
	}

	paths := defaultPaths(args)
	var rep *driver.Report
	if sf.progress {
		rep, err = runWithProgress(ctx, "fix", eng, paths, opts)
	} else {
		rep, err = driver.Run(ctx, eng, paths, opts)
	}
	if err != nil {
		return err
	}

	if !sf.quiet {
		reportFixes(cmd.ErrOrStderr(), rep, dryRun, of.pathMode)
	}

	bag := collect(rep, nil)
	if err := render(cmd, cmd.OutOrStdout(), of, eng, rep, bag); err != nil {
		return errors.Errorf("write diagnostics: %w", err)
	}
	summarize(cmd.ErrOrStderr(), sf, rep, bag)

	if errs, _, _ := bag.Counts(); errs > 0 {
		return errFindings
	}
	return nil
}

func knownRule(name string) bool {
	for _, c := range diag.Codes() {
		if c.Matches(name) {
			return true
		}
	}
	return false
}

// reportFixes prints one line per changed file.
func reportFixes(w io.Writer, rep *driver.Report, dryRun bool, mode diagfmt.PathMode) {
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	for _, f := range rep.Files {
		if f.Fix == nil || !f.Fix.Changed {
			continue
		}
		path := rep.FileSet.Get(f.FileID).FormatPath(pathModeName(mode), rep.FileSet.BaseDir())
		fmt.Fprintf(w, "%s %s (%d fixes in %d passes)", ok.Sprint(verb), path, f.Fix.Applied, f.Fix.Passes)
		if !f.Fix.Converged {
			fmt.Fprint(w, warn.Sprint(" did not converge"))
		}
		fmt.Fprintln(w)
	}
}

func pathModeName(mode diagfmt.PathMode) string {
	switch mode {
	case diagfmt.PathModeAbsolute:
		return "absolute"
	case diagfmt.PathModeRelative:
		return "relative"
	case diagfmt.PathModeBasename:
		return "basename"
	}
	return "auto"
}

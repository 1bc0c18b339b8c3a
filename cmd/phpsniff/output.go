package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/engine"
	"phpsniff/internal/version"
)

type outputFlags struct {
	format    string
	withNotes bool
	suggest   bool
	pathMode  diagfmt.PathMode
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().String("paths", "auto", "path display (auto|absolute|relative|basename)")
}

func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	var of outputFlags
	var err error
	if of.format, err = cmd.Flags().GetString("format"); err != nil {
		return of, errors.Errorf("failed to get format flag: %w", err)
	}
	of.format = strings.ToLower(of.format)
	switch of.format {
	case "pretty", "short", "json", "sarif":
	default:
		return of, errors.Errorf("unknown format: %s", of.format)
	}
	if of.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return of, errors.Errorf("failed to get with-notes flag: %w", err)
	}
	if of.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return of, errors.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return of, errors.Errorf("failed to get fullpath flag: %w", err)
	}
	paths, err := cmd.Flags().GetString("paths")
	if err != nil {
		return of, errors.Errorf("failed to get paths flag: %w", err)
	}
	mode, ok := diagfmt.ParsePathMode(paths)
	if !ok {
		return of, errors.Errorf("unknown --paths value: %s", paths)
	}
	if fullPath {
		mode = diagfmt.PathModeAbsolute
	}
	of.pathMode = mode
	return of, nil
}

// render writes bag in the selected format.
func render(cmd *cobra.Command, w io.Writer, of outputFlags, eng *engine.Engine, rep *driver.Report, bag *diag.Bag) error {
	switch of.format {
	case "json":
		return diagfmt.JSON(w, bag, rep.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         of.pathMode,
			IncludeNotes:     of.withNotes,
			IncludeFixes:     of.suggest,
		})
	case "sarif":
		return diagfmt.Sarif(w, bag, rep.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "phpsniff",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			Rules:          sarifRules(eng),
		})
	case "short":
		diagfmt.Short(w, bag, rep.FileSet, of.pathMode)
	default:
		diagfmt.Pretty(w, bag, rep.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stdout),
			Context:   0,
			PathMode:  of.pathMode,
			ShowNotes: of.withNotes,
			ShowFixes: of.suggest,
		})
	}
	return nil
}

// summarize prints the one-line totals and, when asked, the phase timings.
func summarize(w io.Writer, sf scanFlags, rep *driver.Report, bag *diag.Bag) {
	if sf.quiet {
		return
	}
	errs, warns, fixable := bag.Counts()
	fmt.Fprintf(w, "%d files checked: %d errors, %d warnings (%d fixable)\n",
		len(rep.Files), errs, warns, fixable)
	if rep.Stats.TimedOut > 0 {
		fmt.Fprintf(w, "%d files timed out\n", rep.Stats.TimedOut)
	}
	if sf.timings {
		fmt.Fprint(w, rep.Timings.Summary())
		fmt.Fprintln(w, rep.Stats.String())
	}
}

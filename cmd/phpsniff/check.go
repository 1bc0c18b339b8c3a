package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:     "check [flags] [paths...]",
	Aliases: []string{"diag"},
	Short:   "Report problems in PHP files",
	Long: `Check scans PHP files, or every matching file under the given directories,
and reports diagnostics. Without arguments the current directory is scanned.`,
	RunE: runCheck,
}

func init() {
	addOutputFlags(checkCmd)
	addScanFlags(checkCmd)
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "empty the disk cache before scanning")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	of, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	sf, err := readScanFlags(cmd)
	if err != nil {
		return err
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return errors.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return errors.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return errors.New("no-warnings and warnings-as-errors flags cannot be used together")
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return errors.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return errors.Errorf("failed to get clear-cache flag: %w", err)
	}

	eng, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	opts, err := sf.options()
	if err != nil {
		return err
	}
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("phpsniff")
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("disk cache unavailable")
		} else {
			if clearCache {
				if err := cache.DropAll(); err != nil {
					return errors.Errorf("clear cache: %w", err)
				}
			}
			if useCache {
				opts.Cache = cache
			}
		}
	}

	paths := defaultPaths(args)
	var rep *driver.Report
	if sf.progress {
		rep, err = runWithProgress(ctx, "check", eng, paths, opts)
	} else {
		rep, err = driver.Run(ctx, eng, paths, opts)
	}
	if err != nil {
		return err
	}

	bag := collect(rep, func(d *diag.Diagnostic) bool {
		if d.Severity == diag.SevWarning {
			if noWarnings {
				return false
			}
			if warningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		return true
	})

	if err := render(cmd, cmd.OutOrStdout(), of, eng, rep, bag); err != nil {
		return errors.Errorf("write diagnostics: %w", err)
	}
	summarize(cmd.ErrOrStderr(), sf, rep, bag)

	if bag.HasErrors() {
		return errFindings
	}
	return nil
}

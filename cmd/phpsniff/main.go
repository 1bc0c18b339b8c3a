package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"

	"phpsniff/internal/prof"
	"phpsniff/internal/version"
)

// errFindings makes the process exit with status 1 without printing anything
// beyond the diagnostics already written.
var errFindings = errors.New("unfixed errors remain")

// profiling is started by setupGlobals and stopped once the command returns.
var profiling *prof.Session

var rootCmd = &cobra.Command{
	Use:   "phpsniff",
	Short: "Token-stream linter and fixer for WordPress plugin PHP",
	Long: `phpsniff checks PHP sources for translation, casing, documentation and
compatibility problems and applies the safe fixes it knows about.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default: search upward for .phpsniff.toml or .phpsniff.yaml)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error|disabled)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to this file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if perr := profiling.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "phpsniff: %v\n", perr)
	}
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "phpsniff: %v\n", err)
		}
		os.Exit(1)
	}
}

// setupGlobals applies the persistent flags: colour mode and the context logger.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return errors.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "auto", "on", "off":
	default:
		return errors.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	color.NoColor = !useColor(cmd, os.Stdout)

	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return errors.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return errors.Errorf("invalid --log-level %q: %w", levelName, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !useColor(cmd, os.Stderr),
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()

	cmd.SetContext(logger.WithContext(cmd.Context()))

	var popts prof.Options
	if popts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return errors.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if popts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return errors.Errorf("failed to get memprofile flag: %w", err)
	}
	if popts.Trace, err = cmd.Flags().GetString("trace"); err != nil {
		return errors.Errorf("failed to get trace flag: %w", err)
	}
	if profiling, err = prof.Start(popts); err != nil {
		return err
	}
	if profiling.Active() {
		logger.Debug().Str("cpu", popts.CPU).Str("mem", popts.Mem).Str("trace", popts.Trace).Msg("profiling enabled")
	}
	return nil
}

// useColor resolves --color for the given output stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

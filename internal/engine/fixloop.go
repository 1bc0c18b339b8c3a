package engine

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/fix"
	"phpsniff/internal/source"
)

// FixOptions configures Engine.Fix.
type FixOptions struct {
	Apply fix.ApplyOptions
	// MaxPasses caps the scan and apply loop; zero means the configured value.
	MaxPasses int
}

// FixResult is the outcome of the fix loop.
type FixResult struct {
	Output    []byte
	Passes    int
	Converged bool
	Changed   bool
	Applied   []fix.AppliedFix
	Skipped   []fix.SkippedFix
	// Final is a fresh scan of Output.
	Final *Result
}

// Fix scans and applies fixes until a pass applies nothing, the pass cap is
// hit or the output repeats. Output is LF-normalized like file.Content.
func (e *Engine) Fix(ctx context.Context, file *source.File, opts FixOptions) (*FixResult, error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = e.cfg.Config.Fixer.MaxPasses
	}
	maxPasses = max(maxPasses, 1)

	out := &FixResult{}
	seen := map[[32]byte]struct{}{sha256.Sum256(file.Content): {}}
	cur := file
	oscillated := false

	for out.Passes < maxPasses {
		res, err := e.Lint(ctx, cur)
		if err != nil {
			return nil, err
		}
		if res.Aborted {
			out.Converged = true
			out.Final = res
			break
		}
		applied, err := fix.Apply(res.Stream, res.Diagnostics, opts.Apply)
		if errors.Is(err, fix.ErrNoFixes) {
			out.Converged = true
			out.Final = res
			break
		}
		if err != nil {
			return nil, errors.Errorf("fix %s: %w", file.Path, err)
		}
		out.Passes++
		out.Applied = append(out.Applied, applied.Applied...)
		out.Skipped = append(out.Skipped, applied.Skipped...)
		cur = source.NewFile(cur.ID, cur.Path, applied.Output, cur.Flags)

		if opts.Apply.Mode == fix.ApplyModeOnce {
			out.Converged = true
			break
		}
		if _, dup := seen[cur.Hash]; dup {
			oscillated = true
			break
		}
		seen[cur.Hash] = struct{}{}
	}

	if out.Final == nil {
		res, err := e.Lint(ctx, cur)
		if err != nil {
			return nil, err
		}
		out.Final = res
		if !out.Converged && !res.Aborted {
			// The cap was hit or the output repeated. Another pass decides
			// whether anything is left, and which fixes would lose a conflict.
			trial, err := fix.Apply(res.Stream, res.Diagnostics, opts.Apply)
			switch {
			case errors.Is(err, fix.ErrNoFixes):
				out.Converged = !oscillated
			case err == nil:
				fix.Downgrade(res.Diagnostics, trial)
			}
		}
	}

	if !out.Converged {
		msg := fmt.Sprintf("fixes did not converge after %d passes", out.Passes)
		if oscillated {
			msg = fmt.Sprintf("fixes oscillate; stopped after %d passes", out.Passes)
		}
		zerolog.Ctx(ctx).Warn().Str("path", file.Path).Int("passes", out.Passes).Bool("oscillated", oscillated).Msg("fixer did not converge")
		w := diag.NewWarning(diag.IntFixerUnconverged, source.Span{File: cur.ID}, msg)
		w.Line = 1
		out.Final.Diagnostics = append([]diag.Diagnostic{w}, out.Final.Diagnostics...)
	}

	out.Output = cur.Content
	out.Changed = out.Passes > 0 && string(cur.Content) != string(file.Content)
	return out, nil
}

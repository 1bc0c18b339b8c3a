package fix

import (
	"fmt"
	"sort"

	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/diag"
	"phpsniff/internal/token"
)

var (
	// ErrNoFixes is returned when no fixes were applied.
	ErrNoFixes = errors.New("no applicable fixes found")
	// ErrConflict marks a changeset rejected because an earlier one touched the same token.
	ErrConflict = errors.New("fix conflicts with an earlier fix")
)

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeAll applies every AlwaysSafe and SafeWithHeuristics fix.
	ApplyModeAll ApplyMode = iota
	// ApplyModeOnce applies the first candidate only.
	ApplyModeOnce
	// ApplyModeCode applies fixes whose code matches Target (short id, name or rule).
	ApplyModeCode
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode   ApplyMode
	Target string
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Line          uint32
	Applicability diag.Applicability
	EditCount     int
}

// SkippedFix captures a fix that was not applied, with a reason.
// Err is ErrConflict for rejected changesets.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
	Err    error
}

// ApplyResult aggregates the rendered output and what happened to each fix.
// Rejected holds indices into the diagnostics passed to Apply whose fix lost a conflict.
type ApplyResult struct {
	Output   []byte
	Applied  []AppliedFix
	Skipped  []SkippedFix
	Rejected []int
}

type candidate struct {
	diag  diag.Diagnostic
	index int
	fix   diag.Fix
	order int
}

// Apply selects fixes from diagnostics according to opts and renders the
// stream with the accepted ones. Output is always set; it equals the stream
// text when nothing applies, in which case ErrNoFixes is returned.
func Apply(stream *token.Stream, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}
	if stream == nil {
		return result, errors.New("fix: stream is nil")
	}

	candidates, buildSkips := gatherCandidates(stream, diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	accepted := claimTokens(selected, result)
	result.Output = render(stream, accepted)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// Downgrade strips the fixes of every diagnostic whose changeset was rejected
// and notes the conflict on it.
func Downgrade(diagnostics []diag.Diagnostic, result *ApplyResult) {
	if result == nil {
		return
	}
	for _, idx := range result.Rejected {
		if idx >= 0 && idx < len(diagnostics) {
			diagnostics[idx] = diagnostics[idx].Unfixed(ErrConflict.Error() + "; run the fixer again")
		}
	}
}

// gatherCandidates takes the first automatically applicable fix of each
// diagnostic. ManualReview fixes, empty fixes, fixes pointing outside the
// stream and duplicate IDs are skipped.
func gatherCandidates(stream *token.Stream, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)
	seenIDs := make(map[string]struct{})

	order := 0
	for di, d := range diagnostics {
		taken := false
		for idx, f := range d.Fixes {
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d", d.Code.ID(), d.Primary.Start, idx)
			}
			reason := ""
			switch {
			case f.Applicability == diag.ManualReview:
				reason = "requires manual review"
			case len(f.Edits) == 0:
				reason = "fix has no edits"
			case !editsInRange(stream, f.Edits):
				reason = "edit targets a token outside the stream"
			case taken:
				reason = "another fix of the same diagnostic was chosen"
			}
			if reason == "" {
				if _, dup := seenIDs[f.ID]; dup {
					reason = "duplicate fix id"
				}
			}
			if reason != "" {
				skips = append(skips, SkippedFix{ID: f.ID, Title: f.Title, Reason: reason})
				continue
			}
			seenIDs[f.ID] = struct{}{}
			taken = true
			cands = append(cands, candidate{
				diag:  d,
				index: di,
				fix:   f,
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

func editsInRange(stream *token.Stream, edits []diag.TokenEdit) bool {
	for _, e := range edits {
		if e.Token < 0 || e.Token >= stream.Len() {
			return false
		}
	}
	return true
}

// sortCandidates orders by primary start, then code, then discovery order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeOnce:
		if len(candidates) == 0 {
			return nil, nil
		}
		return candidates[:1], nil
	case ApplyModeCode:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.diag.Code.Matches(opts.Target) {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("code %s not selected", cand.diag.Code.ID()),
			})
		}
		return selected, skipped
	default:
		return candidates, nil
	}
}

// claimTokens accepts candidates in order. A candidate touching a token an
// accepted one already claimed is rejected with ErrConflict.
func claimTokens(selected []candidate, result *ApplyResult) []candidate {
	claimed := make(map[int]string)
	accepted := make([]candidate, 0, len(selected))

	for _, cand := range selected {
		tokens := cand.fix.Tokens()
		owner := ""
		for _, t := range tokens {
			if id, ok := claimed[t]; ok {
				owner = id
				break
			}
		}
		if owner != "" {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("conflicts with %s", owner),
				Err:    ErrConflict,
			})
			result.Rejected = append(result.Rejected, cand.index)
			continue
		}
		for _, t := range tokens {
			claimed[t] = cand.fix.ID
		}
		accepted = append(accepted, cand)
		result.Applied = append(result.Applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Line:          cand.diag.Line,
			Applicability: cand.fix.Applicability,
			EditCount:     len(cand.fix.Edits),
		})
	}
	return accepted
}

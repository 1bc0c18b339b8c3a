// Package diag defines the diagnostic model shared by the lexer, the rule engine,
// the fixer and the output layer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric identifier with a short id (CAS2001) and a dotted sniff
//     name (Strings.SentenceCase.IncorrectReservedWordCase). Code.Rule() is the
//     sniff the code belongs to.
//   - Message: human oriented text.
//   - Primary span and Token index/Line of the offending token.
//   - Notes: secondary context, also used to explain why a fix was dropped.
//   - Fixes: committed changesets.
//
// # Fixes
//
// A Fix is a list of TokenEdits (replace, insert-before, insert-after,
// delete) addressed by token index into the stream the diagnostic was
// produced from. Applicability decides whether the fixer applies it on its
// own: ManualReview fixes are shown but never applied. Building and applying
// fixes lives in internal/fix.
//
// # Emitting diagnostics
//
// Producers use a Reporter. ReportBuilder (ReportError / ReportWarning)
// chains WithToken, WithNote and WithFix before Emit. BagReporter collects
// into a Bag, which supports limits, sorting, deduplication and filtering.
//
// Keep the data model deterministic: Bag.Sort is stable and fully ordered
// so identical input yields byte-identical output.
package diag

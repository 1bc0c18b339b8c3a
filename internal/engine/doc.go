// Package engine runs rules over token streams.
//
// Rules register the token kinds they care about. A scan walks the stream once,
// in index order, and calls every interested rule in registration order. A rule
// that panics or returns an error loses only that token; the failure becomes
// an Internal.RuleError diagnostic and the pass continues.
//
// Fix runs scan and apply until the output stops changing.
package engine

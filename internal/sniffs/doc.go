// Package sniffs holds the built-in rules. Each rule is named after the
// dotted prefix of the codes it emits, so disabling a rule by name and by
// code prefix are the same thing.
package sniffs

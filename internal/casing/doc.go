// Package casing holds the word-level logic behind the sentence-case rules:
// the exception list, word extraction, reserved-word corrections, the "may"
// policy and sentence-case conversion. It knows nothing about tokens.
package casing

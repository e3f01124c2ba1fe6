// Package config carries the core's few cross-cutting mode switches, the
// same kind of package-level knob the teacher's internal/config exposes
// (IsTestMode, IsLSPMode) rather than threading a config object through
// every call. No file IO, no flag parsing: the CLI that would own that is
// explicitly out of scope (spec §1).
package config

// IsTestMode mirrors the teacher's config.IsTestMode: tests that need
// deterministic, introspectable behavior (e.g. pinning diagnostic text) can
// flip this instead of plumbing a mode flag through every constructor.
var IsTestMode = false

// IndentStrategy selects how the tokenizer fixes the file's indentation type
// (spec §4.2).
type IndentStrategy int

const (
	// Detect: the first indented line fixes the file-wide indent type.
	Detect IndentStrategy = iota
	// Directive: defaults to tab; a `"use spaces"` / `'use spaces'` line
	// switches the whole file to space mode.
	Directive
)

// DefaultIndentStrategy is used when a caller does not select one
// explicitly.
const DefaultIndentStrategy = Detect

// Package lexer implements the indentation-aware tokenizer (spec §4.2): it
// turns source text into a dense token stream, synthesizing Indent/Dedent/
// Newline tokens from leading whitespace instead of relying on a grammar
// that sees braces or semicolons.
//
// Mirrors the teacher's internal/lexer.New/NextToken shape (internal/lexer/lexer.go)
// but trades the teacher's pull-one-token-at-a-time API for a single Tokenize
// pass: indentation bookkeeping needs to look at a whole line before it can
// decide what synthetic tokens that line produces, so there is no clean
// per-character NextToken boundary here.
package lexer

import (
	"strings"

	"github.com/nerdalytics/tinywhale/internal/config"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
)

const bom = "﻿"

// Tokenizer owns the stores a tokenizing pass fills in.
type Tokenizer struct {
	Tokens *token.Store
	Strs   *store.StringStore
	Diags  *diagnostics.List

	catalog diagnostics.Catalog
	indent  *indentState
}

// New creates a Tokenizer using strategy to resolve the file's indentation
// type. strs lets the caller share a string store across a whole
// compilation (spec §5).
func New(strategy config.IndentStrategy, strs *store.StringStore) *Tokenizer {
	return &Tokenizer{
		Tokens:  token.NewStore(),
		Strs:    strs,
		Diags:   &diagnostics.List{},
		catalog: diagnostics.DefaultCatalog(),
		indent:  newIndentState(strategy),
	}
}

// Tokenize runs the full tokenizer over source, filling t.Tokens and
// t.Diags, and returns t.Tokens for convenience.
func (t *Tokenizer) Tokenize(source string) *token.Store {
	source = strings.TrimPrefix(source, bom)
	lines := splitLines(source)

	if t.indent.strategy == config.Directive {
		t.indent.resolveDirectiveMode(scanForUseSpacesDirective(lines))
	}

	for i, line := range lines {
		t.tokenizeLine(i+1, line)
	}

	t.emitDedentsTo(0, len(lines)+1)
	t.Tokens.Add(token.Token{Kind: token.Eof, Line: len(lines) + 1, Column: 1})
	return t.Tokens
}

// splitLines splits source on '\n' and strips a trailing '\r' from each
// line, tolerating both LF and CRLF input.
func splitLines(source string) []string {
	raw := strings.Split(source, "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	return raw
}

// scanForUseSpacesDirective looks for a line, ignoring surrounding
// whitespace, that is exactly `"use spaces"` or `'use spaces'` (spec §4.2).
func scanForUseSpacesDirective(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == `"use spaces"` || trimmed == `'use spaces'` {
			return true
		}
	}
	return false
}

// isBlank reports whether line has no code content once any comment is
// stripped. Blank lines, including comment-only ones, never participate in
// indentation tracking or emit any token (spec §4.2: "pure blank lines do
// not emit Newline").
func isBlank(line string) bool {
	codePart := line
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		codePart = line[:idx]
	}
	return strings.TrimSpace(codePart) == ""
}

func (t *Tokenizer) tokenizeLine(lineNo int, line string) {
	if isBlank(line) {
		return
	}

	run := scanLeadingRun(line)
	t.checkMixedIndent(lineNo, run)
	newLevel := t.resolveLevel(lineNo, run)
	t.emitLevelTransition(lineNo, newLevel)

	rest := line[run.count:]
	for _, seg := range splitSegments(rest, run.count+1) {
		if !seg.isCode {
			continue
		}
		for _, raw := range scanSegment(seg.text, seg.startCol) {
			t.emitContentToken(lineNo, raw)
		}
	}

	t.Tokens.Add(token.Token{Kind: token.Newline, Line: lineNo, Column: len(line) + 1})
	t.indent.prevCount = run.count
	t.indent.currentLevel = newLevel
}

func (t *Tokenizer) checkMixedIndent(lineNo int, run leadingRun) {
	if run.mixed {
		t.emit(diagnostics.MixedIndent, lineNo, run.mixedAtCol, nil)
	}
}

// resolveLevel determines the indentation level a (non-blank, already
// mixed-checked) line's leading run represents, emitting whichever of
// TWLEX002-005 the transition violates. It does not mutate indentState;
// the caller commits currentLevel/prevCount once the line's tokens are
// produced.
func (t *Tokenizer) resolveLevel(lineNo int, run leadingRun) int {
	st := t.indent

	if st.strategy == config.Detect && !st.modeResolved && run.count > 0 {
		st.modeResolved = true
		st.mode = run.dominant
	}

	if st.modeResolved && run.count > 0 && run.dominant != st.mode {
		found, expected := "spaces", "tabs"
		if st.mode == spaceWhitespace {
			found, expected = "tabs", "spaces"
		}
		t.emit(diagnostics.IndentTypeMismatch, lineNo, 1, map[string]string{
			"found": found, "expected": expected,
		})
	}

	if st.mode == tabWhitespace {
		return t.resolveTabLevel(lineNo, run)
	}
	return t.resolveSpaceLevel(lineNo, run)
}

func (t *Tokenizer) resolveTabLevel(lineNo int, run leadingRun) int {
	st := t.indent
	if run.count > st.currentLevel+1 {
		t.emit(diagnostics.IndentJump, lineNo, run.count, nil)
		return st.currentLevel + 1
	}
	return run.count
}

func (t *Tokenizer) resolveSpaceLevel(lineNo int, run leadingRun) int {
	st := t.indent
	delta := run.count - st.prevCount

	switch {
	case delta > 0:
		if st.indentUnit == 0 {
			st.indentUnit = delta
			return st.currentLevel + 1
		}
		if delta%st.indentUnit != 0 {
			t.emit(diagnostics.InconsistentUnit, lineNo, run.count, map[string]string{
				"unit": itoa(st.indentUnit), "delta": itoa(delta),
			})
			return st.currentLevel + 1
		}
		levels := delta / st.indentUnit
		if levels > 1 {
			t.emit(diagnostics.IndentJump, lineNo, run.count, nil)
			return st.currentLevel + 1
		}
		return st.currentLevel + 1

	case delta < 0:
		if st.indentUnit == 0 {
			return st.currentLevel
		}
		if run.count%st.indentUnit != 0 {
			t.emit(diagnostics.MisalignedDedent, lineNo, run.count, map[string]string{
				"levels": validLevelsList(st.currentLevel, st.indentUnit),
			})
		}
		newLevel := run.count / st.indentUnit
		if newLevel > st.currentLevel {
			newLevel = st.currentLevel
		}
		return newLevel

	default:
		return st.currentLevel
	}
}

func validLevelsList(currentLevel, unit int) string {
	var b strings.Builder
	for lvl := 0; lvl <= currentLevel; lvl++ {
		if lvl > 0 {
			b.WriteString(", ")
		}
		b.WriteString(itoa(lvl * unit))
	}
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

func (t *Tokenizer) emitLevelTransition(lineNo, newLevel int) {
	cur := t.indent.currentLevel
	switch {
	case newLevel > cur:
		t.Tokens.Add(token.Token{Kind: token.Indent, Line: lineNo, Column: 1, Payload: uint32(newLevel)})
	case newLevel < cur:
		t.emitDedentsTo(newLevel, lineNo)
	}
}

// emitDedentsTo emits one Dedent token per level from the tokenizer's
// current level down to target, used both for in-body dedents and the
// implicit dedents-to-zero synthesized at EOF (spec §4.2).
func (t *Tokenizer) emitDedentsTo(target, lineNo int) {
	for lvl := t.indent.currentLevel - 1; lvl >= target; lvl-- {
		t.Tokens.Add(token.Token{Kind: token.Dedent, Line: lineNo, Column: 1, Payload: uint32(lvl)})
	}
	t.indent.currentLevel = target
}

func (t *Tokenizer) emitContentToken(lineNo int, raw rawToken) {
	tok := token.Token{Kind: raw.kind, Line: lineNo, Column: raw.column}
	if raw.text != "" {
		tok.Payload = uint32(t.Strs.Intern(raw.text))
	}
	t.Tokens.Add(tok)
}

func (t *Tokenizer) emit(code diagnostics.ErrorCode, line, col int, args map[string]string) {
	t.Diags.Add(diagnostics.New(t.catalog, code, line, col, args))
}

package diagnostics

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/nerdalytics/tinywhale/internal/config"
)

// ansi codes for the caret formatter's optional coloring.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
)

// SupportsColor reports whether f is a terminal that should receive ANSI
// color codes, the same detection the teacher's own `term` builtin uses
// (internal/evaluator/builtins_term.go) via go-isatty. config.IsTestMode
// forces false so golden diagnostic text stays free of escape codes
// regardless of what terminal the test happens to run under.
func SupportsColor(f *os.File) bool {
	if config.IsTestMode {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Format renders a Rust-style caret diagnostic (spec §6): a header line,
// a location line, the offending source line, and a caret underline, with
// an optional help line. file is a display name only (the core does no file
// IO, spec §1); source is the full text the diagnostic's line/column index
// into. color enables ANSI highlighting.
func Format(file, source string, d *DiagnosticError, color bool) string {
	var b strings.Builder

	if color {
		fmt.Fprintf(&b, "%s%s%s[%s]%s: %s\n", ansiBold, severityColor(d.Severity), d.Severity, d.Code, ansiReset, d.Message)
	} else {
		fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	}
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", file, d.Line, d.Column)

	if line, ok := sourceLine(source, d.Line); ok {
		fmt.Fprintf(&b, "%5d | %s\n", d.Line, line)
		caretLine := strings.Repeat(" ", clampNonNegative(d.Column-1))
		marker := "^"
		if color {
			marker = ansiRed + "^" + ansiReset
		}
		fmt.Fprintf(&b, "      | %s%s\n", caretLine, marker)
	}

	if d.Help != "" {
		fmt.Fprintf(&b, "      = help: %s\n", d.Help)
	}
	return b.String()
}

func severityColor(s Severity) string {
	if s == Error {
		return ansiRed
	}
	return ""
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

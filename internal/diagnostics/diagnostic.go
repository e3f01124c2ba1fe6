package diagnostics

import (
	"fmt"
	"strings"

	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/token"
)

// Diagnostic is the fixed-size-in-spirit record spec §3 describes. TokenId
// and NodeId are mutually exclusive back-references used on demand by the
// output-boundary formatter; diagnostics raised during tokenizing carry a
// TokenId, diagnostics raised during checking carry a NodeId.
type Diagnostic struct {
	Code     ErrorCode
	Severity Severity
	Line     int
	Column   int
	Message  string
	Help     string
	Args     map[string]string
	TokenId  *token.Id
	NodeId   *ast.Id
}

// DiagnosticError adapts a Diagnostic to the error interface so it can flow
// through ordinary Go error-handling paths, mirroring the teacher's
// *diagnostics.DiagnosticError usage at its analyzer call sites.
type DiagnosticError struct {
	Diagnostic
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s[%s]: %s", e.Severity, e.Code, e.Message)
}

// New builds a DiagnosticError for code at (line, column), interpolating its
// catalog message and help templates from args. Unknown codes still produce
// a diagnostic (defaulting to Error severity and a bare code as the
// message) rather than panicking — an unrecognized code reaching this
// constructor is itself a caller bug the diagnostic should still surface,
// not hide behind a second panic.
func New(cat Catalog, code ErrorCode, line, col int, args map[string]string) *DiagnosticError {
	entry, ok := cat[code]
	message := string(code)
	help := ""
	if ok {
		message = interpolate(entry.Message, args)
		help = interpolate(entry.Help, args)
	}
	return &DiagnosticError{Diagnostic{
		Code:     code,
		Severity: cat.severityOf(code),
		Line:     line,
		Column:   col,
		Message:  message,
		Help:     help,
		Args:     args,
	}}
}

// AtToken attaches a TokenId to d's diagnostic and returns the same pointer
// for chaining at the call site.
func (e *DiagnosticError) AtToken(id token.Id) *DiagnosticError {
	e.TokenId = &id
	return e
}

// AtNode attaches a NodeId to d's diagnostic and returns the same pointer
// for chaining at the call site.
func (e *DiagnosticError) AtNode(id ast.Id) *DiagnosticError {
	e.NodeId = &id
	return e
}

// interpolate performs simple {key} substitution from args — the mechanism
// spec §6 names but leaves unspecified (see SPEC_FULL.md). No nested
// templating, matching the teacher's plain fmt.Sprintf-based error
// construction rather than introducing a templating dependency.
func interpolate(tmpl string, args map[string]string) string {
	if tmpl == "" || len(args) == 0 {
		return tmpl
	}
	out := tmpl
	for k, v := range args {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

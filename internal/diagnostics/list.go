package diagnostics

// List is the ordered diagnostic accumulator every phase appends to. Order
// is emission order (spec §5: "Diagnostic order is emission order; it is a
// stable, deterministic function of the input").
type List struct {
	items []*DiagnosticError
}

// Add appends d to the list and returns it, so call sites can write
// `return l.Add(diagnostics.New(...))` and propagate the same value as an
// error.
func (l *List) Add(d *DiagnosticError) *DiagnosticError {
	l.items = append(l.items, d)
	return d
}

// Items returns every diagnostic added so far, in emission order.
func (l *List) Items() []*DiagnosticError {
	return l.items
}

// HasErrors reports whether any Error-severity diagnostic was recorded. Per
// spec §7, the pipeline reports success only when this is false.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the total number of diagnostics recorded, of any severity.
func (l *List) Count() int {
	return len(l.items)
}

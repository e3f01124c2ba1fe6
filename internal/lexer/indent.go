package lexer

import "github.com/nerdalytics/tinywhale/internal/config"

// whitespaceKind classifies a single leading-whitespace character.
type whitespaceKind int

const (
	notWhitespace whitespaceKind = iota
	tabWhitespace
	spaceWhitespace
)

func classify(ch byte) whitespaceKind {
	switch ch {
	case '\t':
		return tabWhitespace
	case ' ':
		return spaceWhitespace
	default:
		return notWhitespace
	}
}

// leadingRun describes a line's leading whitespace.
type leadingRun struct {
	count      int            // number of leading whitespace characters
	dominant   whitespaceKind // the type of the first whitespace character
	mixed      bool           // true if a second type appeared in the run
	mixedAtCol int            // 1-indexed column of the first offending character
}

// scanLeadingRun walks line's leading whitespace, classifying it per spec
// §4.2: the dominant type is the first character's type; any later
// character of the other type is "mixed" and reported at its own column.
func scanLeadingRun(line string) leadingRun {
	var run leadingRun
	for i := 0; i < len(line); i++ {
		k := classify(line[i])
		if k == notWhitespace {
			break
		}
		if run.count == 0 {
			run.dominant = k
		} else if k != run.dominant && !run.mixed {
			run.mixed = true
			run.mixedAtCol = i + 1
		}
		run.count++
	}
	return run
}

// indentState tracks the tokenizer's file-wide indentation discipline across
// lines (spec §4.2).
type indentState struct {
	strategy      config.IndentStrategy
	modeResolved  bool
	mode          whitespaceKind // tabWhitespace or spaceWhitespace, once resolved
	indentUnit    int            // space mode only; 0 until the first positive delta
	currentLevel  int
	prevCount     int // the previous non-blank line's leading-whitespace count
}

func newIndentState(strategy config.IndentStrategy) *indentState {
	return &indentState{strategy: strategy}
}

// resolveDirectiveMode is called once a pre-scan has determined whether a
// `use spaces` directive appears anywhere in the file.
func (st *indentState) resolveDirectiveMode(sawUseSpaces bool) {
	st.modeResolved = true
	if sawUseSpaces {
		st.mode = spaceWhitespace
	} else {
		st.mode = tabWhitespace
	}
}

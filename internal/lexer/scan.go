package lexer

import (
	"strings"

	"github.com/nerdalytics/tinywhale/internal/token"
)

// rawToken is a token scanned from one line before it is interned/stored; it
// carries its column within the line.
type rawToken struct {
	kind    token.Kind
	column  int
	text    string // for Identifier/IntLiteral/FloatLiteral payloads
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// scanSegment tokenizes one code segment (the text between comment markers,
// or between the leading indentation and the first '#'), mirroring the
// teacher's character-switch scanning style (internal/lexer/lexer.go)
// extended with the operator set spec §4.2 requires.
func scanSegment(text string, colBase int) []rawToken {
	var out []rawToken
	i := 0
	n := len(text)
	col := func(at int) int { return colBase + at }

	peek := func(at int) byte {
		if at < n {
			return text[at]
		}
		return 0
	}

	for i < n {
		ch := text[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
			continue

		case isLetter(ch):
			start := i
			for i < n && isIdentChar(text[i]) {
				i++
			}
			word := text[start:i]
			if word == "_" {
				out = append(out, rawToken{kind: token.Underscore, column: col(start)})
				continue
			}
			if kw, ok := token.LookupKeyword(word); ok {
				out = append(out, rawToken{kind: kw, column: col(start)})
				continue
			}
			out = append(out, rawToken{kind: token.Identifier, column: col(start), text: word})

		case isDigit(ch):
			start := i
			for i < n && isDigit(text[i]) {
				i++
			}
			isFloat := false
			if peek(i) == '.' && isDigit(peek(i+1)) {
				isFloat = true
				i++ // consume '.'
				for i < n && isDigit(text[i]) {
					i++
				}
			}
			if peek(i) == 'e' || peek(i) == 'E' {
				j := i + 1
				if peek(j) == '+' || peek(j) == '-' {
					j++
				}
				if isDigit(peek(j)) {
					i = j
					for i < n && isDigit(text[i]) {
						i++
					}
				}
			}
			kind := token.IntLiteral
			if isFloat {
				kind = token.FloatLiteral
			}
			out = append(out, rawToken{kind: kind, column: col(start), text: text[start:i]})

		default:
			tok, width := scanOperator(text, i, peek)
			out = append(out, rawToken{kind: tok, column: col(i)})
			i += width
		}
	}
	return out
}

// scanOperator recognizes one punctuation/operator token starting at i,
// returning its kind and width in bytes. Unrecognized bytes are skipped as a
// single-byte Invalid token so the scanner always makes progress.
func scanOperator(text string, i int, peek func(int) byte) (token.Kind, int) {
	ch := text[i]
	two := func(next byte, kind token.Kind) (token.Kind, int, bool) {
		if peek(i+1) == next {
			return kind, 2, true
		}
		return 0, 0, false
	}

	switch ch {
	case ':':
		return token.Colon, 1
	case '=':
		if k, w, ok := two('=', token.Eq); ok {
			return k, w
		}
		return token.Assign, 1
	case '|':
		if k, w, ok := two('|', token.PipePipe); ok {
			return k, w
		}
		return token.Pipe, 1
	case '(':
		return token.LParen, 1
	case ')':
		return token.RParen, 1
	case '[':
		return token.LBracket, 1
	case ']':
		return token.RBracket, 1
	case ',':
		return token.Comma, 1
	case '.':
		return token.Dot, 1
	case '+':
		return token.Plus, 1
	case '-':
		if k, w, ok := two('>', token.Arrow); ok {
			return k, w
		}
		return token.Minus, 1
	case '*':
		return token.Star, 1
	case '/':
		return token.Slash, 1
	case '%':
		if k, w, ok := two('%', token.PercentPercent); ok {
			return k, w
		}
		return token.Percent, 1
	case '&':
		if k, w, ok := two('&', token.AmpAmp); ok {
			return k, w
		}
		return token.Amp, 1
	case '^':
		return token.Caret, 1
	case '~':
		return token.Tilde, 1
	case '<':
		if peek(i+1) == '<' {
			return token.Shl, 2
		}
		if k, w, ok := two('=', token.Le); ok {
			return k, w
		}
		return token.Lt, 1
	case '>':
		if peek(i+1) == '>' && peek(i+2) == '>' {
			return token.Ushr, 3
		}
		if peek(i+1) == '>' {
			return token.Shr, 2
		}
		if k, w, ok := two('=', token.Ge); ok {
			return k, w
		}
		return token.Gt, 1
	case '!':
		if k, w, ok := two('=', token.Ne); ok {
			return k, w
		}
		return token.Invalid, 1
	default:
		return token.Invalid, 1
	}
}

// segment is one alternating code/comment span of a line's content, after
// the leading indentation is removed (spec §4.2: "content alternates with
// comments; even-indexed segments are code").
type segment struct {
	text     string
	startCol int // 1-indexed column of text[0] in the original line
	isCode   bool
}

// splitSegments splits rest (a line with its indentation already removed) on
// '#' into alternating code/comment segments, computing each segment's
// original column so token positions stay accurate.
func splitSegments(rest string, colBase int) []segment {
	parts := strings.Split(rest, "#")
	segs := make([]segment, 0, len(parts))
	offset := 0
	for i, p := range parts {
		segs = append(segs, segment{text: p, startCol: colBase + offset, isCode: i%2 == 0})
		offset += len(p) + 1 // +1 for the consumed '#'
	}
	return segs
}

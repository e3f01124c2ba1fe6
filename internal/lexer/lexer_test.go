package lexer_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/config"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/lexer"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
)

func kinds(toks *token.Store) []token.Kind {
	out := make([]token.Kind, toks.Count())
	for i := range out {
		out[i] = toks.Get(token.Id(i)).Kind
	}
	return out
}

func hasCode(diags *diagnostics.List, code diagnostics.ErrorCode) bool {
	for _, d := range diags.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestSimpleTabIndentProducesIndentAndDedent(t *testing.T) {
	src := "x: i32 = 1\n\tpanic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	toks := tz.Tokenize(src)

	if tz.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", tz.Diags.Items())
	}
	ks := kinds(toks)
	if ks[0] != token.Identifier {
		t.Fatalf("first token = %v, want Identifier", ks[0])
	}
	foundIndent, foundDedent := false, false
	for _, k := range ks {
		if k == token.Indent {
			foundIndent = true
		}
		if k == token.Dedent {
			foundDedent = true
		}
	}
	if !foundIndent || !foundDedent {
		t.Fatalf("expected both Indent and Dedent tokens, got %v", ks)
	}
	if ks[len(ks)-1] != token.Eof {
		t.Fatalf("last token = %v, want Eof", ks[len(ks)-1])
	}
}

func TestIndentJumpOfMoreThanOneLevelIsDiagnosed(t *testing.T) {
	src := "panic\n\t\tpanic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	toks := tz.Tokenize(src)

	if !hasCode(tz.Diags, diagnostics.IndentJump) {
		t.Fatalf("expected TWLEX004, got %+v", tz.Diags.Items())
	}

	var indents, dedents int
	for i := 0; i < toks.Count(); i++ {
		switch toks.Get(token.Id(i)).Kind {
		case token.Indent:
			indents++
		case token.Dedent:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced Indent/Dedent tokens after an indent-jump error: %d Indent, %d Dedent", indents, dedents)
	}
}

func TestMixedTabsAndSpacesInOneRunIsDiagnosed(t *testing.T) {
	src := "panic\n\t panic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	tz.Tokenize(src)

	if !hasCode(tz.Diags, diagnostics.MixedIndent) {
		t.Fatalf("expected TWLEX001, got %+v", tz.Diags.Items())
	}
}

func TestSpaceModeMisalignedDedentIsDiagnosed(t *testing.T) {
	src := "panic\n  panic\n    panic\n   panic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	tz.Tokenize(src)

	if !hasCode(tz.Diags, diagnostics.MisalignedDedent) {
		t.Fatalf("expected TWLEX003, got %+v", tz.Diags.Items())
	}
}

func TestSpaceModeInconsistentUnitIsDiagnosed(t *testing.T) {
	src := "panic\n  panic\n     panic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	tz.Tokenize(src)

	if !hasCode(tz.Diags, diagnostics.InconsistentUnit) {
		t.Fatalf("expected TWLEX002, got %+v", tz.Diags.Items())
	}
}

func TestFileWideIndentTypeMismatchIsDiagnosed(t *testing.T) {
	src := "panic\n\tpanic\n  panic\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	tz.Tokenize(src)

	if !hasCode(tz.Diags, diagnostics.IndentTypeMismatch) {
		t.Fatalf("expected TWLEX005, got %+v", tz.Diags.Items())
	}
}

func TestUseSpacesDirectiveSelectsSpaceModeUnderDirectiveStrategy(t *testing.T) {
	src := "\"use spaces\"\nx: i32 = 1\n  panic\n"
	tz := lexer.New(config.Directive, store.NewStringStore())
	tz.Tokenize(src)

	if hasCode(tz.Diags, diagnostics.IndentTypeMismatch) {
		t.Fatalf("did not expect a mode mismatch once space mode is selected: %+v", tz.Diags.Items())
	}
}

func TestBlankAndCommentOnlyLinesDoNotEmitNewline(t *testing.T) {
	src := "x: i32 = 1\n\n# just a comment\ny: i32 = 2\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	toks := tz.Tokenize(src)

	count := 0
	for i := 0; i < toks.Count(); i++ {
		if toks.Get(token.Id(i)).Kind == token.Newline {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 Newline tokens (one per non-blank line), got %d", count)
	}
}

func TestIntAndFloatLiteralsAreDistinguishedByDecimalPoint(t *testing.T) {
	src := "x: i32 = 42\ny: f64 = 3.5\n"
	strs := store.NewStringStore()
	tz := lexer.New(config.Detect, strs)
	toks := tz.Tokenize(src)

	var sawInt, sawFloat bool
	for i := 0; i < toks.Count(); i++ {
		tok := toks.Get(token.Id(i))
		switch tok.Kind {
		case token.IntLiteral:
			if tok.PayloadString(strs) == "42" {
				sawInt = true
			}
		case token.FloatLiteral:
			if tok.PayloadString(strs) == "3.5" {
				sawFloat = true
			}
		}
	}
	if !sawInt || !sawFloat {
		t.Fatalf("expected one IntLiteral(42) and one FloatLiteral(3.5), tokens: %v", kinds(toks))
	}
}

func TestMultiCharOperatorsAreScannedAsSingleTokens(t *testing.T) {
	src := "x: i32 = a >>> b\ny: i32 = a %% b\nz: i32 = a -> b\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	toks := tz.Tokenize(src)

	want := map[token.Kind]bool{token.Ushr: false, token.PercentPercent: false, token.Arrow: false}
	for i := 0; i < toks.Count(); i++ {
		k := toks.Get(token.Id(i)).Kind
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Fatalf("expected to see token kind %v", k)
		}
	}
}

func TestKeywordsAreNotScannedAsIdentifiers(t *testing.T) {
	src := "x: i32 = match a\n  1 -> 2\n  _ -> 3\n"
	tz := lexer.New(config.Detect, store.NewStringStore())
	toks := tz.Tokenize(src)

	sawMatch, sawUnderscore := false, false
	for i := 0; i < toks.Count(); i++ {
		tok := toks.Get(token.Id(i))
		if tok.Kind == token.KwMatch {
			sawMatch = true
		}
		if tok.Kind == token.Underscore {
			sawUnderscore = true
		}
	}
	if !sawMatch || !sawUnderscore {
		t.Fatalf("expected KwMatch and Underscore tokens, got %v", kinds(toks))
	}
}

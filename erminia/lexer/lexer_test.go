package lexer

import (
	"errors"
	"testing"

	"github.com/dhamidi/erminia/erminia/token"
)

func kinds(t *testing.T, input string, opts ...Option) []token.TokenKind {
	t.Helper()
	toks, err := New(input, opts...).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	var result []token.TokenKind
	for _, tok := range toks {
		result = append(result, tok.Kind)
	}
	return result
}

func equalKinds(a, b []token.TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassifyKeywordBoundary(t *testing.T) {
	tests := []struct {
		input   string
		kind    token.TokenKind
		advance int
	}{
		{"color", token.TokenObjectColor, 5},
		{"colors", token.TokenIdent, 6},
		{"color,", token.TokenObjectColor, 5},
		{"color_1", token.TokenIdent, 7},
		{"def", token.TokenProblemDef, 3},
		{"define", token.TokenIdent, 6},
		{"solution", token.TokenProblemSolution, 8},
		{"superobject", token.TokenSuperObject, 11},
		{"objects", token.TokenIdent, 7},
		{"let(", token.TokenLet, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start := token.StartPosition()
			kind, end, err := Classify(tt.input, start)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.kind {
				t.Errorf("kind = %v, want %v", kind, tt.kind)
			}
			if end.Offset != tt.advance || end.Column != 1+tt.advance {
				t.Errorf("end = %+v, want offset %d", end, tt.advance)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{"object HA", "123.45", "\"str\" x", "<-", "..", "  \n  let"}
	for _, input := range inputs {
		pos := SkipWhitespace(input, token.StartPosition())
		k1, e1, err1 := Classify(input, pos)
		k2, e2, err2 := Classify(input, pos)
		if k1 != k2 || e1 != e2 || (err1 == nil) != (err2 == nil) {
			t.Errorf("Classify(%q) not deterministic: (%v, %v) vs (%v, %v)", input, k1, e1, k2, e2)
		}
	}
}

func TestNumericSplit(t *testing.T) {
	toks, err := New("123.123.123").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		kind token.TokenKind
		text string
	}{
		{token.TokenFloat, "123.123"},
		{token.TokenMember, "."},
		{token.TokenInt, "123"},
		{token.TokenEOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestRangeLiteral(t *testing.T) {
	got := kinds(t, "[0..1]")
	want := []token.TokenKind{
		token.TokenLeftBracket, token.TokenInt, token.TokenRange, token.TokenInt,
		token.TokenRightBracket, token.TokenEOF,
	}
	if !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestSymbols(t *testing.T) {
	tests := []struct {
		input string
		want  []token.TokenKind
	}{
		{"++ --", []token.TokenKind{token.TokenIncrement, token.TokenDecrement, token.TokenEOF}},
		{"// /", []token.TokenKind{token.TokenFlatDiv, token.TokenDiv, token.TokenEOF}},
		{"<< >> < >", []token.TokenKind{token.TokenShiftLeft, token.TokenShiftRight, token.TokenLesser, token.TokenGreater, token.TokenEOF}},
		{"x <- y", []token.TokenKind{token.TokenIdent, token.TokenLeftArrow, token.TokenIdent, token.TokenEOF}},
		{"!= !", []token.TokenKind{token.TokenNotEquals, token.TokenNot, token.TokenEOF}},
		{"(* *)", []token.TokenKind{token.TokenCommentStart, token.TokenCommentEnd, token.TokenEOF}},
		{"= ; : | % * + -", []token.TokenKind{
			token.TokenEquals, token.TokenSemiColon, token.TokenColon, token.TokenPipe,
			token.TokenMod, token.TokenMulti, token.TokenPlus, token.TokenMinus, token.TokenEOF,
		}},
		{"{[()]}", []token.TokenKind{
			token.TokenLeftBrace, token.TokenLeftBracket, token.TokenLeftPar,
			token.TokenRightPar, token.TokenRightBracket, token.TokenRightBrace, token.TokenEOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kinds(t, tt.input)
			if !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkipWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  token.Position
	}{
		{"newline", "   \n Hello", token.Position{Offset: 5, Line: 2, Column: 2}},
		{"seven spaces", "       ", token.Position{Offset: 7, Line: 1, Column: 8}},
		{"crlf", "\r\nx", token.Position{Offset: 2, Line: 2, Column: 1}},
		{"tabs", "\t\tx", token.Position{Offset: 2, Line: 1, Column: 3}},
		{"lone cr", "\rx", token.Position{Offset: 0, Line: 1, Column: 1}},
		{"none", "x", token.Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkipWhitespace(tt.input, token.StartPosition())
			if got != tt.want {
				t.Errorf("SkipWhitespace(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if again := SkipWhitespace(tt.input, got); again != got {
				t.Errorf("SkipWhitespace not idempotent: %+v then %+v", got, again)
			}
		})
	}
}

func TestTokenSpans(t *testing.T) {
	l := New("def hello\n  (20)")
	want := []struct {
		kind  token.TokenKind
		text  string
		start token.Position
		end   token.Position
	}{
		{token.TokenProblemDef, "def", token.Position{Offset: 0, Line: 1, Column: 1}, token.Position{Offset: 3, Line: 1, Column: 4}},
		{token.TokenIdent, "hello", token.Position{Offset: 4, Line: 1, Column: 5}, token.Position{Offset: 9, Line: 1, Column: 10}},
		{token.TokenLeftPar, "(", token.Position{Offset: 12, Line: 2, Column: 3}, token.Position{Offset: 13, Line: 2, Column: 4}},
		{token.TokenInt, "20", token.Position{Offset: 13, Line: 2, Column: 4}, token.Position{Offset: 15, Line: 2, Column: 6}},
		{token.TokenRightPar, ")", token.Position{Offset: 15, Line: 2, Column: 6}, token.Position{Offset: 16, Line: 2, Column: 7}},
		{token.TokenEOF, "", token.Position{Offset: 16, Line: 2, Column: 7}, token.Position{Offset: 16, Line: 2, Column: 7}},
	}

	for i, w := range want {
		if err := l.Advance(); err != nil {
			t.Fatalf("Advance %d: %v", i, err)
		}
		tok := l.Peek()
		if tok.Kind != w.kind || tok.Text != w.text {
			t.Errorf("token %d = %v %q, want %v %q", i, tok.Kind, tok.Text, w.kind, w.text)
		}
		if tok.Start() != w.start || tok.End() != w.end {
			t.Errorf("token %d span = %v, want %v-%v", i, tok.Span, w.start, w.end)
		}
		if tok.Size != len(w.text) {
			t.Errorf("token %d size = %d, want %d", i, tok.Size, len(w.text))
		}
	}

	if err := l.Advance(); err != nil || l.Peek().Kind != token.TokenEOF {
		t.Errorf("Advance past EOF = %v, %v; want EOF", l.Peek().Kind, err)
	}
}

func TestStartToken(t *testing.T) {
	l := New("x")
	if l.Peek().Kind != token.TokenStart {
		t.Errorf("initial token = %v, want START", l.Peek().Kind)
	}
}

func TestLookaheadDoesNotMutate(t *testing.T) {
	l := New("(x,y) | x <- [0..1]")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}
	before := l.Peek()
	pos := l.Position()

	kind, end, err := l.Lookahead()
	if err != nil {
		t.Fatal(err)
	}
	if kind != token.TokenIdent || end.Offset != 2 {
		t.Errorf("Lookahead = %v at %v, want Ident ending at offset 2", kind, end.Offset)
	}

	first, second, _, _, err := l.Lookahead2()
	if err != nil {
		t.Fatal(err)
	}
	if first != token.TokenIdent || second != token.TokenComma {
		t.Errorf("Lookahead2 = %v %v, want Ident Comma", first, second)
	}

	kind, _, err = l.LookaheadN(5)
	if err != nil {
		t.Fatal(err)
	}
	if kind != token.TokenPipe {
		t.Errorf("LookaheadN(5) = %v, want Pipe", kind)
	}

	if l.Peek() != before || l.Position() != pos {
		t.Errorf("lookahead mutated lexer state")
	}
}

func TestLookaheadUnknownRuneIsEOF(t *testing.T) {
	l := New("x @ y")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}
	kind, _, err := l.Lookahead()
	if err != nil {
		t.Fatalf("Lookahead error: %v", err)
	}
	if kind != token.TokenEOF {
		t.Errorf("Lookahead = %v, want EOF", kind)
	}

	err = l.Advance()
	if !errors.Is(err, ErrNoTokenFound) {
		t.Fatalf("Advance error = %v, want NoTokenFoundError", err)
	}
	var lexErr *Error
	if !errors.As(err, &lexErr) || lexErr.Location.Column != 3 {
		t.Errorf("error location = %v, want column 3", err)
	}
}

func TestUnfinishedString(t *testing.T) {
	l := New("x \"hello")
	if err := l.Advance(); err != nil {
		t.Fatal(err)
	}
	err := l.Advance()
	if !errors.Is(err, ErrUnfinishedString) {
		t.Fatalf("error = %v, want UnfinishedStringError", err)
	}
	var lexErr *Error
	errors.As(err, &lexErr)
	want := token.Position{Offset: 2, Line: 1, Column: 3}
	if lexErr.Location != want {
		t.Errorf("location = %+v, want %+v", lexErr.Location, want)
	}
	if got := err.Error(); got != "UnfinishedStringError(1:3)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestStrings(t *testing.T) {
	l := New("\"a \\\" b\nc\" x")
	toks, err := l.Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.TokenString || toks[0].Text != "\"a \\\" b\nc\"" {
		t.Errorf("string token = %v", toks[0])
	}
	if toks[1].Kind != token.TokenIdent || toks[1].Start().Line != 2 || toks[1].Start().Column != 4 {
		t.Errorf("token after string = %v, want Ident at 2:4", toks[1])
	}
}

func TestSkipComments(t *testing.T) {
	got := kinds(t, "let (* a\ncomment *) x", SkipComments())
	want := []token.TokenKind{token.TokenLet, token.TokenIdent, token.TokenEOF}
	if !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	_, err := New("let (* open", SkipComments()).Tokenize()
	if !errors.Is(err, ErrUnfinishedComment) {
		t.Errorf("error = %v, want UnfinishedCommentError", err)
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	toks, err := New("größe_2 x").Tokenize()
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.TokenIdent || toks[0].Text != "größe_2" {
		t.Errorf("token = %v", toks[0])
	}
	if toks[1].Start().Offset != len("größe_2 ") {
		t.Errorf("next offset = %d", toks[1].Start().Offset)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("does/not/exist.erm")
	if !errors.Is(err, ErrOpenFileFailure) {
		t.Fatalf("error = %v, want OpenFileFailureToken", err)
	}
}

package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want TokenKind
	}{
		{"def", TokenProblemDef},
		{"let", TokenLet},
		{"superobject", TokenSuperObject},
		{"solution", TokenProblemSolution},
		{"colors", TokenIdent},
		{"Object", TokenIdent},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.text); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestKeywordTable(t *testing.T) {
	if len(Keywords) != 10 {
		t.Fatalf("got %d keywords, want 10", len(Keywords))
	}
	for _, kw := range Keywords {
		if !kw.Kind.IsKeyword() {
			t.Errorf("%s: kind %v is not a keyword kind", kw.Text, kw.Kind)
		}
		if kw.Kind.Lexeme() != kw.Text {
			t.Errorf("%s: lexeme %q", kw.Text, kw.Kind.Lexeme())
		}
	}
}

func TestTokenKindNames(t *testing.T) {
	tests := []struct {
		kind   TokenKind
		name   string
		lexeme string
	}{
		{TokenStart, "START", "[START]"},
		{TokenComma, "Comma", ","},
		{TokenObjectColor, "ObjectColor", "color"},
		{TokenLet, "LetKwd", "let"},
		{TokenRange, "Range", ".."},
		{TokenInt, "Int", "[INT]"},
		{TokenKind(-1), "Unknown", "[UNKNOWN]"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.kind.Lexeme(); got != tt.lexeme {
			t.Errorf("%s.Lexeme() = %q, want %q", tt.name, got, tt.lexeme)
		}
	}
	if !TokenIdent.IsLiteral() || TokenIdent.IsKeyword() {
		t.Error("Ident is a literal kind")
	}
}

func TestSpan(t *testing.T) {
	outer := Span{Start: Position{0, 1, 1}, End: Position{20, 2, 5}}
	inner := Span{Start: Position{4, 1, 5}, End: Position{10, 1, 11}}

	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Error("containment is wrong")
	}
	if !outer.Contains(outer) {
		t.Error("a span contains itself")
	}
	if got := outer.String(); got != "1:1-2:5" {
		t.Errorf("String() = %q", got)
	}
	if !inner.Start.Before(inner.End) || inner.End.Before(inner.Start) {
		t.Error("Before is wrong")
	}
	if (Token{}).Kind != TokenStart {
		t.Error("zero token should be START")
	}
}

package token

import "fmt"

// Position is a cursor into source text. Offset and Column count bytes;
// Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// StartPosition is the position of the first byte of any input.
func StartPosition() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q in the same input.
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}

type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Contains reports whether inner lies entirely within s.
func (s Span) Contains(inner Span) bool {
	return s.Start.Offset <= inner.Start.Offset && inner.End.Offset <= s.End.Offset
}

type TokenKind int

const (
	TokenStart TokenKind = iota
	TokenError
	TokenEOF

	// Operators
	TokenPlus
	TokenMinus
	TokenIncrement
	TokenDecrement
	TokenMulti
	TokenDiv
	TokenFlatDiv
	TokenMod
	TokenGreater
	TokenLesser
	TokenShiftLeft
	TokenShiftRight
	TokenMember
	TokenNot
	TokenNotEquals
	TokenPipe

	// Keywords
	TokenProblemDef
	TokenLet
	TokenObject
	TokenSuperObject
	TokenObjectShape
	TokenObjectColor
	TokenProblemExample
	TokenProblemSolution
	TokenProblemInput
	TokenProblemOutput

	// Punctuation
	TokenEquals
	TokenLeftPar
	TokenRightPar
	TokenLeftBracket
	TokenRightBracket
	TokenLeftBrace
	TokenRightBrace
	TokenComma
	TokenColon
	TokenSemiColon
	TokenRange
	TokenLeftArrow
	TokenCommentStart
	TokenCommentEnd
	TokenNewLine
	TokenTab

	// Literals
	TokenInt
	TokenFloat
	TokenIdent
	TokenString
)

var tokenKindNames = map[TokenKind]string{
	TokenStart:           "START",
	TokenError:           "Error",
	TokenEOF:             "EOF",
	TokenPlus:            "Plus",
	TokenMinus:           "Minus",
	TokenIncrement:       "Increment",
	TokenDecrement:       "Decrement",
	TokenMulti:           "Multi",
	TokenDiv:             "Div",
	TokenFlatDiv:         "FlatDiv",
	TokenMod:             "Mod",
	TokenGreater:         "Greater",
	TokenLesser:          "Lesser",
	TokenShiftLeft:       "ShiftLeft",
	TokenShiftRight:      "ShiftRight",
	TokenMember:          "Member",
	TokenNot:             "Not",
	TokenNotEquals:       "NotEquals",
	TokenPipe:            "Pipe",
	TokenProblemDef:      "ProblemDef",
	TokenLet:             "LetKwd",
	TokenObject:          "Object",
	TokenSuperObject:     "SuperObject",
	TokenObjectShape:     "ObjectShape",
	TokenObjectColor:     "ObjectColor",
	TokenProblemExample:  "ProblemExample",
	TokenProblemSolution: "ProblemSolution",
	TokenProblemInput:    "ProblemInput",
	TokenProblemOutput:   "ProblemOutput",
	TokenEquals:          "Equals",
	TokenLeftPar:         "LeftPar",
	TokenRightPar:        "RightPar",
	TokenLeftBracket:     "LeftBracket",
	TokenRightBracket:    "RightBracket",
	TokenLeftBrace:       "LeftBrace",
	TokenRightBrace:      "RightBrace",
	TokenComma:           "Comma",
	TokenColon:           "Colon",
	TokenSemiColon:       "SemiColon",
	TokenRange:           "Range",
	TokenLeftArrow:       "LeftArrow",
	TokenCommentStart:    "CommentStart",
	TokenCommentEnd:      "CommentEnd",
	TokenNewLine:         "NewLine",
	TokenTab:             "Tab",
	TokenInt:             "Int",
	TokenFloat:           "Float",
	TokenIdent:           "Ident",
	TokenString:          "String",
}

var tokenKindLexemes = map[TokenKind]string{
	TokenStart:           "[START]",
	TokenError:           "[ERROR]",
	TokenEOF:             "[EOF]",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenIncrement:       "++",
	TokenDecrement:       "--",
	TokenMulti:           "*",
	TokenDiv:             "/",
	TokenFlatDiv:         "//",
	TokenMod:             "%",
	TokenGreater:         ">",
	TokenLesser:          "<",
	TokenShiftLeft:       "<<",
	TokenShiftRight:      ">>",
	TokenMember:          ".",
	TokenNot:             "!",
	TokenNotEquals:       "!=",
	TokenPipe:            "|",
	TokenProblemDef:      "def",
	TokenLet:             "let",
	TokenObject:          "object",
	TokenSuperObject:     "superobject",
	TokenObjectShape:     "shape",
	TokenObjectColor:     "color",
	TokenProblemExample:  "example",
	TokenProblemSolution: "solution",
	TokenProblemInput:    "input",
	TokenProblemOutput:   "output",
	TokenEquals:          "=",
	TokenLeftPar:         "(",
	TokenRightPar:        ")",
	TokenLeftBracket:     "[",
	TokenRightBracket:    "]",
	TokenLeftBrace:       "{",
	TokenRightBrace:      "}",
	TokenComma:           ",",
	TokenColon:           ":",
	TokenSemiColon:       ";",
	TokenRange:           "..",
	TokenLeftArrow:       "<-",
	TokenCommentStart:    "(*",
	TokenCommentEnd:      "*)",
	TokenNewLine:         "\n",
	TokenTab:             "\t",
	TokenInt:             "[INT]",
	TokenFloat:           "[FLOAT]",
	TokenIdent:           "[IDENT]",
	TokenString:          "[STRING]",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Lexeme returns the source form of k, or a bracketed class name for
// literal and sentinel kinds.
func (k TokenKind) Lexeme() string {
	if lexeme, ok := tokenKindLexemes[k]; ok {
		return lexeme
	}
	return "[UNKNOWN]"
}

func (k TokenKind) IsKeyword() bool {
	return k >= TokenProblemDef && k <= TokenProblemOutput
}

func (k TokenKind) IsLiteral() bool {
	return k >= TokenInt && k <= TokenString
}

// Token is a lexeme of the input. Text is a substring of the lexed input
// and shares its memory.
type Token struct {
	Kind TokenKind
	Text string
	Size int
	Span Span
}

func (t Token) Start() Position { return t.Span.Start }

func (t Token) End() Position { return t.Span.End }

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d, %s, %s)", t.Kind, t.Text, t.Size, t.Span.Start, t.Span.End)
}

// Keyword pairs a reserved word with its kind.
type Keyword struct {
	Text string
	Kind TokenKind
}

// Keywords is the reserved word table in scan order.
var Keywords = []Keyword{
	{"def", TokenProblemDef},
	{"let", TokenLet},
	{"object", TokenObject},
	{"superobject", TokenSuperObject},
	{"shape", TokenObjectShape},
	{"color", TokenObjectColor},
	{"example", TokenProblemExample},
	{"solution", TokenProblemSolution},
	{"input", TokenProblemInput},
	{"output", TokenProblemOutput},
}

func LookupKeyword(ident string) TokenKind {
	for _, kw := range Keywords {
		if kw.Text == ident {
			return kw.Kind
		}
	}
	return TokenIdent
}

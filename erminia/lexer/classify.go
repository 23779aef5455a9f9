package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/erminia/erminia/token"
)

func forward(pos token.Position, n int) token.Position {
	pos.Offset += n
	pos.Column += n
	return pos
}

func nextLine(pos token.Position, n int) token.Position {
	pos.Offset += n
	pos.Line++
	pos.Column = 1
	return pos
}

// step consumes one byte of text at pos, keeping line bookkeeping for
// newlines.
func step(text string, pos token.Position) token.Position {
	if text[pos.Offset] == '\n' {
		return nextLine(pos, 1)
	}
	return forward(pos, 1)
}

// SkipWhitespace returns the first position at or after pos that is not a
// space, tab, "\n" or "\r\n". A lone "\r" is not whitespace.
func SkipWhitespace(text string, pos token.Position) token.Position {
	for pos.Offset < len(text) {
		switch text[pos.Offset] {
		case ' ', '\t':
			pos = forward(pos, 1)
		case '\n':
			pos = nextLine(pos, 1)
		case '\r':
			if pos.Offset+1 < len(text) && text[pos.Offset+1] == '\n' {
				pos = nextLine(pos, 2)
				continue
			}
			return pos
		default:
			return pos
		}
	}
	return pos
}

// Classify recognizes the lexeme starting at pos and returns its kind and
// end position. At end of input it returns TokenEOF. On a rune no phase
// recognizes it returns TokenEOF together with a NoTokenFound error so the
// caller can choose between a sentinel and a failure.
func Classify(text string, pos token.Position) (token.TokenKind, token.Position, error) {
	if pos.Offset >= len(text) {
		return token.TokenEOF, pos, nil
	}
	if kind, end, ok := scanKeyword(text, pos); ok {
		return kind, end, nil
	}
	if end, ok := scanIdent(text, pos); ok {
		return token.TokenIdent, end, nil
	}
	if kind, end, ok := scanNumber(text, pos); ok {
		return kind, end, nil
	}
	return scanSymbol(text, pos)
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func scanKeyword(text string, pos token.Position) (token.TokenKind, token.Position, bool) {
	rest := text[pos.Offset:]
	for _, kw := range token.Keywords {
		if !strings.HasPrefix(rest, kw.Text) {
			continue
		}
		if len(rest) > len(kw.Text) {
			r, _ := utf8.DecodeRuneInString(rest[len(kw.Text):])
			if isIdentPart(r) {
				// a longer identifier wins
				return token.TokenError, pos, false
			}
		}
		return kw.Kind, forward(pos, len(kw.Text)), true
	}
	return token.TokenError, pos, false
}

func scanIdent(text string, pos token.Position) (token.Position, bool) {
	r, size := utf8.DecodeRuneInString(text[pos.Offset:])
	if !isIdentStart(r) {
		return pos, false
	}
	end := forward(pos, size)
	for end.Offset < len(text) {
		r, size = utf8.DecodeRuneInString(text[end.Offset:])
		if !isIdentPart(r) {
			break
		}
		end = forward(end, size)
	}
	return end, true
}

func scanNumber(text string, pos token.Position) (token.TokenKind, token.Position, bool) {
	i := pos.Offset
	if !isDigit(text[i]) {
		return token.TokenError, pos, false
	}
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	kind := token.TokenInt
	if i+1 < len(text) && text[i] == '.' && isDigit(text[i+1]) {
		kind = token.TokenFloat
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	return kind, forward(pos, i-pos.Offset), true
}

func scanSymbol(text string, pos token.Position) (token.TokenKind, token.Position, error) {
	var next byte
	if pos.Offset+1 < len(text) {
		next = text[pos.Offset+1]
	}

	pick := func(second byte, double, single token.TokenKind) (token.TokenKind, token.Position, error) {
		if next == second {
			return double, forward(pos, 2), nil
		}
		return single, forward(pos, 1), nil
	}

	switch text[pos.Offset] {
	case '+':
		return pick('+', token.TokenIncrement, token.TokenPlus)
	case '-':
		return pick('-', token.TokenDecrement, token.TokenMinus)
	case '*':
		return pick(')', token.TokenCommentEnd, token.TokenMulti)
	case '/':
		return pick('/', token.TokenFlatDiv, token.TokenDiv)
	case '>':
		return pick('>', token.TokenShiftRight, token.TokenGreater)
	case '(':
		return pick('*', token.TokenCommentStart, token.TokenLeftPar)
	case '.':
		return pick('.', token.TokenRange, token.TokenMember)
	case '!':
		return pick('=', token.TokenNotEquals, token.TokenNot)
	case '<':
		switch next {
		case '<':
			return token.TokenShiftLeft, forward(pos, 2), nil
		case '-':
			return token.TokenLeftArrow, forward(pos, 2), nil
		}
		return token.TokenLesser, forward(pos, 1), nil
	case '%':
		return token.TokenMod, forward(pos, 1), nil
	case '=':
		return token.TokenEquals, forward(pos, 1), nil
	case ')':
		return token.TokenRightPar, forward(pos, 1), nil
	case '[':
		return token.TokenLeftBracket, forward(pos, 1), nil
	case ']':
		return token.TokenRightBracket, forward(pos, 1), nil
	case '{':
		return token.TokenLeftBrace, forward(pos, 1), nil
	case '}':
		return token.TokenRightBrace, forward(pos, 1), nil
	case ',':
		return token.TokenComma, forward(pos, 1), nil
	case ';':
		return token.TokenSemiColon, forward(pos, 1), nil
	case ':':
		return token.TokenColon, forward(pos, 1), nil
	case '|':
		return token.TokenPipe, forward(pos, 1), nil
	case '"':
		return scanString(text, pos)
	}

	return token.TokenEOF, pos, errorAt(NoTokenFound, pos)
}

func scanString(text string, start token.Position) (token.TokenKind, token.Position, error) {
	pos := forward(start, 1)
	for pos.Offset < len(text) {
		switch text[pos.Offset] {
		case '"':
			return token.TokenString, forward(pos, 1), nil
		case '\\':
			pos = forward(pos, 1)
			if pos.Offset < len(text) {
				pos = step(text, pos)
			}
		default:
			pos = step(text, pos)
		}
	}
	return token.TokenEOF, start, errorAt(UnfinishedString, start)
}

// skipComment consumes a "(* ... *)" block starting at pos. Blocks do not
// nest.
func skipComment(text string, start token.Position) (token.Position, error) {
	pos := forward(start, 2)
	for pos.Offset < len(text) {
		if strings.HasPrefix(text[pos.Offset:], "*)") {
			return forward(pos, 2), nil
		}
		pos = step(text, pos)
	}
	return start, errorAt(UnfinishedComment, start)
}

package lexer

import (
	"errors"
	"os"
	"strings"

	"github.com/dhamidi/erminia/erminia/token"
)

// Lexer produces tokens on demand from an immutable input. It keeps the
// current token and the position just past it; lookahead never mutates
// either.
type Lexer struct {
	text         string
	cursor       token.Position
	current      token.Token
	skipComments bool
}

// Option configures a Lexer.
type Option func(*Lexer)

// SkipComments treats "(* ... *)" blocks as whitespace instead of emitting
// CommentStart and CommentEnd tokens.
func SkipComments() Option {
	return func(l *Lexer) {
		l.skipComments = true
	}
}

// New creates a lexer positioned before the first token. The current token
// is the START sentinel.
func New(text string, opts ...Option) *Lexer {
	start := token.StartPosition()
	l := &Lexer{
		text:    text,
		cursor:  start,
		current: token.Token{Kind: token.TokenStart, Span: token.Span{Start: start, End: start}},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ReadFile creates a lexer over the contents of path.
func ReadFile(path string, opts ...Option) (*Lexer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: OpenFileFailure, Location: token.StartPosition(), Err: err}
	}
	return New(string(data), opts...), nil
}

// Text returns the input being lexed.
func (l *Lexer) Text() string {
	return l.text
}

// Peek returns the current token.
func (l *Lexer) Peek() token.Token {
	return l.current
}

// Position returns the position just past the current token.
func (l *Lexer) Position() token.Position {
	return l.cursor
}

// Advance moves to the next token. Once the input is exhausted the current
// token stays EOF.
func (l *Lexer) Advance() error {
	tok, end, err := l.scan(l.cursor)
	if err != nil {
		return err
	}
	l.current = tok
	l.cursor = end
	return nil
}

// Lookahead returns the kind and end position of the next token.
func (l *Lexer) Lookahead() (token.TokenKind, token.Position, error) {
	return l.LookaheadN(1)
}

// Lookahead2 returns the next two token kinds with their end positions.
func (l *Lexer) Lookahead2() (token.TokenKind, token.TokenKind, token.Position, token.Position, error) {
	toks, err := l.LookaheadTokens(2)
	if err != nil {
		return token.TokenEOF, token.TokenEOF, l.cursor, l.cursor, err
	}
	return toks[0].Kind, toks[1].Kind, toks[0].End(), toks[1].End(), nil
}

// LookaheadN returns the kind and end position of the k-th token after the
// current one. k < 1 refers to the current token.
func (l *Lexer) LookaheadN(k int) (token.TokenKind, token.Position, error) {
	if k < 1 {
		return l.current.Kind, l.cursor, nil
	}
	toks, err := l.LookaheadTokens(k)
	if err != nil {
		return token.TokenEOF, l.cursor, err
	}
	last := toks[len(toks)-1]
	return last.Kind, last.End(), nil
}

// LookaheadTokens returns the next k tokens without consuming them. An
// unrecognized rune ends the window: it and everything after it read as
// EOF. Other lexer errors are returned.
func (l *Lexer) LookaheadTokens(k int) ([]token.Token, error) {
	toks := make([]token.Token, 0, k)
	pos := l.cursor
	for len(toks) < k {
		tok, end, err := l.scan(pos)
		if err != nil {
			var lexErr *Error
			if !errors.As(err, &lexErr) || lexErr.Kind != NoTokenFound {
				return nil, err
			}
			eof := token.Token{Kind: token.TokenEOF, Span: token.Span{Start: lexErr.Location, End: lexErr.Location}}
			for len(toks) < k {
				toks = append(toks, eof)
			}
			return toks, nil
		}
		toks = append(toks, tok)
		pos = end
	}
	return toks, nil
}

// Tokenize lexes the whole input from the beginning, independently of the
// lexer's current state. The result ends with exactly one EOF token.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	pos := token.StartPosition()
	for {
		tok, end, err := l.scan(pos)
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.TokenEOF {
			return toks, nil
		}
		pos = end
	}
}

func (l *Lexer) scan(from token.Position) (token.Token, token.Position, error) {
	start, err := l.skipTrivia(from)
	if err != nil {
		return token.Token{}, from, err
	}
	kind, end, err := Classify(l.text, start)
	if err != nil {
		return token.Token{}, from, err
	}
	text := l.text[start.Offset:end.Offset]
	return token.Token{
		Kind: kind,
		Text: text,
		Size: len(text),
		Span: token.Span{Start: start, End: end},
	}, end, nil
}

func (l *Lexer) skipTrivia(pos token.Position) (token.Position, error) {
	for {
		pos = SkipWhitespace(l.text, pos)
		if !l.skipComments || !strings.HasPrefix(l.text[pos.Offset:], "(*") {
			return pos, nil
		}
		end, err := skipComment(l.text, pos)
		if err != nil {
			return pos, err
		}
		pos = end
	}
}

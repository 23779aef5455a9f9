package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/erminia/token"
)

type ErrorKind int

const (
	ExpectedLeftInclusivity ErrorKind = iota
	ExpectedRightInclusivity
	ExpectedKeyWordError
	ExpectedIdentifierError
	ExpectedIntegerConstError
	ParserError
	IoError
)

var errorKindNames = map[ErrorKind]string{
	ExpectedLeftInclusivity:   "ExpectedLeftInclusivity",
	ExpectedRightInclusivity:  "ExpectedRightInclusivity",
	ExpectedKeyWordError:      "ExpectedKeyWordError",
	ExpectedIdentifierError:   "ExpectedIdentifierError",
	ExpectedIntegerConstError: "ExpectedIntegerConstError",
	ParserError:               "ParserError",
	IoError:                   "IoError",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "ParserError"
}

// ErrorInfo locates a failed match: the position of the offending token,
// the kind the grammar required there and the kind actually found.
type ErrorInfo struct {
	Location token.Position
	Expected token.TokenKind
	Actual   token.TokenKind
}

type Error struct {
	Kind ErrorKind
	Info ErrorInfo
	Err  error
}

var (
	ErrExpectedLeftInclusivity  = &Error{Kind: ExpectedLeftInclusivity}
	ErrExpectedRightInclusivity = &Error{Kind: ExpectedRightInclusivity}
	ErrExpectedKeyWord          = &Error{Kind: ExpectedKeyWordError}
	ErrExpectedIdentifier       = &Error{Kind: ExpectedIdentifierError}
	ErrExpectedIntegerConst     = &Error{Kind: ExpectedIntegerConstError}
	ErrParser                   = &Error{Kind: ParserError}
	ErrIO                       = &Error{Kind: IoError}
)

func (e *Error) Error() string {
	s := fmt.Sprintf("%s(location: %s, expected: %s, actual: %s)",
		e.Kind, e.Info.Location, e.Info.Expected, e.Info.Actual)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Location returns the source position of err if it is a parser or lexer
// error.
func Location(err error) (token.Position, bool) {
	var parseErr *Error
	if errors.As(err, &parseErr) {
		return parseErr.Info.Location, true
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Location, true
	}
	return token.Position{}, false
}

func mismatch(kind ErrorKind, expected token.TokenKind, actual token.Token) *Error {
	return &Error{
		Kind: kind,
		Info: ErrorInfo{Location: actual.Start(), Expected: expected, Actual: actual.Kind},
	}
}

// fromLexer lifts a tokenization failure into a ParserError that keeps the
// lexer error as its cause.
func fromLexer(err error) *Error {
	pos := token.StartPosition()
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		pos = lexErr.Location
	}
	return &Error{
		Kind: ParserError,
		Info: ErrorInfo{Location: pos, Expected: token.TokenError, Actual: token.TokenError},
		Err:  err,
	}
}

// endedEarly reports whether err was caused by running out of input, as
// opposed to input that can never become valid.
func endedEarly(err error) bool {
	if errors.Is(err, lexer.ErrUnfinishedString) || errors.Is(err, lexer.ErrUnfinishedComment) {
		return true
	}
	var parseErr *Error
	if !errors.As(err, &parseErr) {
		return false
	}
	return parseErr.Kind != IoError && parseErr.Info.Actual == token.TokenEOF
}

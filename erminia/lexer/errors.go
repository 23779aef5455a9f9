package lexer

import (
	"fmt"

	"github.com/dhamidi/erminia/erminia/token"
)

type ErrorKind int

const (
	NoTokenFound ErrorKind = iota
	UnfinishedString
	UnfinishedComment
	BadToken
	OpenFileFailure
)

var errorKindNames = map[ErrorKind]string{
	NoTokenFound:      "NoTokenFoundError",
	UnfinishedString:  "UnfinishedStringError",
	UnfinishedComment: "UnfinishedCommentError",
	BadToken:          "TokenError",
	OpenFileFailure:   "OpenFileFailureToken",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "LexerError"
}

// Error is a failure intrinsic to tokenization. Err is set when the failure
// wraps an I/O error.
type Error struct {
	Kind     ErrorKind
	Location token.Position
	Err      error
}

var (
	ErrNoTokenFound      = &Error{Kind: NoTokenFound}
	ErrUnfinishedString  = &Error{Kind: UnfinishedString}
	ErrUnfinishedComment = &Error{Kind: UnfinishedComment}
	ErrToken             = &Error{Kind: BadToken}
	ErrOpenFileFailure   = &Error{Kind: OpenFileFailure}
)

func (e *Error) Error() string {
	s := fmt.Sprintf("%s(%s)", e.Kind, e.Location)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* values work as
// sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func errorAt(kind ErrorKind, pos token.Position) *Error {
	return &Error{Kind: kind, Location: pos}
}

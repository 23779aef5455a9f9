package parser

import (
	"io"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/lexer"
	"github.com/dhamidi/erminia/erminia/token"
)

type Option func(*Parser)

// WithFile names the input in log output.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

type parseFunc func(*Parser) (ast.Node, error)

type Parser struct {
	file   string
	log    commonlog.Logger
	reader io.Reader
	input  []byte
	lex    *lexer.Lexer
	last   token.Position
	entry  parseFunc
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		file:   "<input>",
		log:    commonlog.GetLogger("erminia.parser"),
		reader: r,
		entry:  entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseProgram(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseProgram() }, opts)
}

func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseStmt() }, opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseExpr() }, opts)
}

func ParseObjectDecl(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseObjectDecl() }, opts)
}

func ParseObjectDesc(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseObjectDesc() }, opts)
}

// ParseShape parses a "shape: [...]" clause.
func ParseShape(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseObjectShape() }, opts)
}

// ParseShapeList parses a bracketed shape list. The result is an
// *ast.ObjectShape spanning the brackets.
func ParseShapeList(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) {
		start := p.startNode()
		shapes, err := p.parseShapeList()
		if err != nil {
			return nil, err
		}
		return &ast.ObjectShape{Shapes: shapes, Loc: p.finishNode(start)}, nil
	}, opts)
}

func ParseShapeItem(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseShapeItem() }, opts)
}

func ParseTuple(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseTuple() }, opts)
}

func ParseTupleComprehension(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseTupleComprehension() }, opts)
}

func ParseRange(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseRange() }, opts)
}

func ParseVarDef(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseVarDef() }, opts)
}

func ParseFuncCall(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) (ast.Node, error) { return p.parseFuncCall() }, opts)
}

// Parse parses a complete program.
func Parse(src string, opts ...Option) (*ast.Program, error) {
	node, err := ParseProgram(strings.NewReader(src), opts...).Finish()
	if err != nil {
		return nil, err
	}
	return node.(*ast.Program), nil
}

func (p *Parser) File() string {
	return p.file
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

// IsComplete reports whether the input ends where a complete node could
// end. It returns false when more input could still turn a failing parse
// into a successful one, for example "object HA {". Input that can never
// parse is complete: Finish will report the error.
func (p *Parser) IsComplete() bool {
	if err := p.readAll(); err != nil {
		return false
	}
	if len(strings.TrimSpace(string(p.input))) == 0 {
		return false
	}
	_, err := p.run()
	return err == nil || !endedEarly(err)
}

// Finish reads the remaining input and parses it. The whole input must be
// consumed by the entry production. The first error aborts the parse.
func (p *Parser) Finish() (ast.Node, error) {
	if err := p.readAll(); err != nil {
		perr := &Error{
			Kind: IoError,
			Info: ErrorInfo{Location: token.StartPosition(), Expected: token.TokenStart, Actual: token.TokenError},
			Err:  err,
		}
		p.log.Errorf("%s: %v", p.file, perr)
		return nil, perr
	}
	node, err := p.run()
	if err != nil {
		p.log.Debugf("%s: %v", p.file, err)
		return nil, err
	}
	return node, nil
}

// Reset prepares the parser to read a new input with the same entry
// production.
func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.lex = nil
	p.last = token.Position{}
}

func (p *Parser) run() (ast.Node, error) {
	p.lex = lexer.New(string(p.input), lexer.SkipComments())
	p.last = token.StartPosition()
	// the lexer starts on the START sentinel
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.entry(p)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != token.TokenEOF {
		return nil, mismatch(ParserError, token.TokenEOF, tok)
	}
	return node, nil
}

func (p *Parser) peek() token.Token {
	return p.lex.Peek()
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() error {
	end := p.peek().End()
	if err := p.lex.Advance(); err != nil {
		return fromLexer(err)
	}
	p.last = end
	return nil
}

func (p *Parser) expect(kind token.TokenKind, errKind ErrorKind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, mismatch(errKind, kind, tok)
	}
	return tok, p.advance()
}

func (p *Parser) consumeKeyword(kind token.TokenKind) error {
	_, err := p.expect(kind, ExpectedKeyWordError)
	return err
}

func (p *Parser) consumeIdentifier() (string, error) {
	tok, err := p.expect(token.TokenIdent, ExpectedIdentifierError)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

func (p *Parser) consumeIntConst() (int32, error) {
	tok := p.peek()
	if tok.Kind != token.TokenInt {
		return 0, mismatch(ExpectedIntegerConstError, token.TokenInt, tok)
	}
	v, err := strconv.ParseInt(tok.Text, 10, 32)
	if err != nil {
		perr := mismatch(ParserError, token.TokenInt, tok)
		perr.Err = err
		return 0, perr
	}
	return int32(v), p.advance()
}

// startNode returns the start of the current token, the first token of the
// node about to be parsed.
func (p *Parser) startNode() token.Position {
	return p.peek().Start()
}

// finishNode closes a node at the end of the last consumed token.
func (p *Parser) finishNode(start token.Position) token.Span {
	return token.Span{Start: start, End: p.last}
}

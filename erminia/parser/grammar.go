package parser

import (
	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/token"
	"github.com/dhamidi/erminia/erminia/types"
)

// maxTupleLookahead bounds how far past "(" the parser looks for the ")"
// that decides between a tuple and a comprehension.
const maxTupleLookahead = 4

// program := "def" id "(" n ")" "{" stmt* "}"
func (p *Parser) parseProgram() (*ast.Program, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenProblemDef); err != nil {
		return nil, err
	}
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenLeftPar); err != nil {
		return nil, err
	}
	n, err := p.consumeIntConst()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenRightPar); err != nil {
		return nil, err
	}
	stmts, err := p.parseCompound(isStmtStart, p.parseStmt)
	if err != nil {
		return nil, err
	}
	return &ast.Program{ID: id, IntConst: n, Statements: stmts, Loc: p.finishNode(start)}, nil
}

func isStmtStart(kind token.TokenKind) bool {
	switch kind {
	case token.TokenObject, token.TokenLet, token.TokenIdent,
		token.TokenProblemExample, token.TokenProblemSolution,
		token.TokenProblemInput, token.TokenProblemOutput:
		return true
	}
	return false
}

// parseCompound parses "{" item* "}" where item starts with any kind
// accepted by startSet.
func (p *Parser) parseCompound(startSet func(token.TokenKind) bool, item func() (ast.Stmt, error)) ([]ast.Stmt, error) {
	if err := p.consumeKeyword(token.TokenLeftBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for startSet(p.peek().Kind) {
		stmt, err := item()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.consumeKeyword(token.TokenRightBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// stmt := object_decl | var_def | example | solution | input | output
func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.TokenObject:
		return p.parseObjectDecl()
	case token.TokenLet:
		return p.parseVarDef()
	case token.TokenProblemExample, token.TokenProblemSolution,
		token.TokenProblemInput, token.TokenProblemOutput:
		return p.parseSection()
	}
	return nil, mismatch(ExpectedKeyWordError, token.TokenObject, tok)
}

// inner_stmt := object_decl | var_def | func_call
func (p *Parser) parseInnerStmt() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.TokenObject:
		return p.parseObjectDecl()
	case token.TokenLet:
		return p.parseVarDef()
	case token.TokenIdent:
		return p.parseFuncCall()
	}
	return nil, mismatch(ParserError, token.TokenObject, tok)
}

// section := ("example" | "solution" | "input" | "output") id "{" inner_stmt* "}"
func (p *Parser) parseSection() (ast.Stmt, error) {
	start := p.startNode()
	keyword := p.peek().Kind
	if err := p.advance(); err != nil {
		return nil, err
	}
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	// sections are accepted here only to report them as misplaced
	stmts, err := p.parseCompound(isStmtStart, p.parseInnerStmt)
	if err != nil {
		return nil, err
	}
	loc := p.finishNode(start)

	switch keyword {
	case token.TokenProblemExample:
		return &ast.ProblemExample{ID: id, Statements: stmts, Loc: loc}, nil
	case token.TokenProblemSolution:
		return &ast.ProblemSolution{ID: id, Statements: stmts, Loc: loc}, nil
	case token.TokenProblemInput:
		return &ast.ProblemInput{ID: id, Statements: stmts, Loc: loc}, nil
	default:
		return &ast.ProblemOutput{ID: id, Statements: stmts, Loc: loc}, nil
	}
}

// object_decl := "object" id "{" object_desc "}" ";"
func (p *Parser) parseObjectDecl() (*ast.ObjectDecl, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenObject); err != nil {
		return nil, err
	}
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenLeftBrace); err != nil {
		return nil, err
	}
	desc, err := p.parseObjectDesc()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenRightBrace); err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenSemiColon); err != nil {
		return nil, err
	}
	return &ast.ObjectDecl{ID: id, Desc: desc, Loc: p.finishNode(start)}, nil
}

// object_desc := shape "," color | color "," shape
func (p *Parser) parseObjectDesc() (*ast.ObjectDesc, error) {
	start := p.startNode()
	desc := &ast.ObjectDesc{}
	var err error

	switch tok := p.peek(); tok.Kind {
	case token.TokenObjectShape:
		if desc.Shape, err = p.parseObjectShape(); err != nil {
			return nil, err
		}
		if err = p.consumeKeyword(token.TokenComma); err != nil {
			return nil, err
		}
		if desc.Color, err = p.parseObjectColor(); err != nil {
			return nil, err
		}
	case token.TokenObjectColor:
		desc.ColorFirst = true
		if desc.Color, err = p.parseObjectColor(); err != nil {
			return nil, err
		}
		if err = p.consumeKeyword(token.TokenComma); err != nil {
			return nil, err
		}
		if desc.Shape, err = p.parseObjectShape(); err != nil {
			return nil, err
		}
	default:
		return nil, mismatch(ParserError, token.TokenObjectShape, tok)
	}

	desc.Loc = p.finishNode(start)
	return desc, nil
}

// color := "color" ":" n
func (p *Parser) parseObjectColor() (*ast.ObjectColor, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenObjectColor); err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenColon); err != nil {
		return nil, err
	}
	code, err := p.consumeIntConst()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectColor{Code: code, Loc: p.finishNode(start)}, nil
}

// shape := "shape" ":" "[" shape_item ("," shape_item)* "]"
func (p *Parser) parseObjectShape() (*ast.ObjectShape, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenObjectShape); err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenColon); err != nil {
		return nil, err
	}
	shapes, err := p.parseShapeList()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectShape{Shapes: shapes, Loc: p.finishNode(start)}, nil
}

func (p *Parser) parseShapeList() ([]ast.ShapeItem, error) {
	if err := p.consumeKeyword(token.TokenLeftBracket); err != nil {
		return nil, err
	}
	var shapes []ast.ShapeItem
	if !p.check(token.TokenRightBracket) {
		for {
			item, err := p.parseShapeItem()
			if err != nil {
				return nil, err
			}
			shapes = append(shapes, item)
			more, err := p.listSeparator(token.TokenRightBracket)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
	}
	if err := p.consumeKeyword(token.TokenRightBracket); err != nil {
		return nil, err
	}
	return shapes, nil
}

// listSeparator consumes a "," between list items. It reports false when
// the list ends at closer, and fails when an item is followed by neither.
func (p *Parser) listSeparator(closer token.TokenKind) (bool, error) {
	switch tok := p.peek(); tok.Kind {
	case token.TokenComma:
		return true, p.advance()
	case closer:
		return false, nil
	default:
		return false, mismatch(ExpectedKeyWordError, token.TokenComma, tok)
	}
}

// shape_item := tuple | tuple_compr | object_call
func (p *Parser) parseShapeItem() (ast.ShapeItem, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.TokenLeftPar:
		compr, err := p.isComprehension()
		if err != nil {
			return nil, err
		}
		if compr {
			return p.parseTupleComprehension()
		}
		return p.parseTuple()
	case token.TokenIdent:
		return p.parseObjectCall()
	}
	return nil, mismatch(ParserError, token.TokenLeftPar, tok)
}

// isComprehension looks past the "(" under the cursor for the closing ")"
// and reports whether a "|" follows it.
func (p *Parser) isComprehension() (bool, error) {
	toks, err := p.lex.LookaheadTokens(maxTupleLookahead + 1)
	if err != nil {
		return false, fromLexer(err)
	}
	for i := 0; i < maxTupleLookahead; i++ {
		switch toks[i].Kind {
		case token.TokenRightPar:
			return toks[i+1].Kind == token.TokenPipe, nil
		case token.TokenEOF:
			return false, nil
		}
	}
	return false, nil
}

// tuple := "(" n "," n ")"
func (p *Parser) parseTuple() (*ast.Tuple, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenLeftPar); err != nil {
		return nil, err
	}
	left, err := p.consumeIntConst()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenComma); err != nil {
		return nil, err
	}
	right, err := p.consumeIntConst()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenRightPar); err != nil {
		return nil, err
	}
	return &ast.Tuple{Left: left, Right: right, Loc: p.finishNode(start)}, nil
}

// tuple_generic := "(" (n | id)? "," (n | id)? ")"
func (p *Parser) parseGenericTuple() (*ast.GenericTuple, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenLeftPar); err != nil {
		return nil, err
	}
	left, err := p.parseTupleOperand()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenComma); err != nil {
		return nil, err
	}
	right, err := p.parseTupleOperand()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenRightPar); err != nil {
		return nil, err
	}
	return &ast.GenericTuple{Left: left, Right: right, Loc: p.finishNode(start)}, nil
}

func (p *Parser) parseTupleOperand() (ast.TupleOperand, error) {
	switch p.peek().Kind {
	case token.TokenInt:
		v, err := p.consumeIntConst()
		if err != nil {
			return ast.NoOperand(), err
		}
		return ast.IntOperand(v), nil
	case token.TokenIdent:
		id, err := p.consumeIdentifier()
		if err != nil {
			return ast.NoOperand(), err
		}
		return ast.IdentOperand(id), nil
	}
	return ast.NoOperand(), nil
}

// tuple_compr := tuple_generic "|" tuple_iter ("," tuple_iter)?
func (p *Parser) parseTupleComprehension() (*ast.TupleComprehension, error) {
	start := p.startNode()
	tuple, err := p.parseGenericTuple()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenPipe); err != nil {
		return nil, err
	}
	first, err := p.parseTupleIterator()
	if err != nil {
		return nil, err
	}
	iters := []*ast.TupleIterator{first}
	if p.check(token.TokenComma) && p.iteratorFollows() {
		if err := p.advance(); err != nil {
			return nil, err
		}
		second, err := p.parseTupleIterator()
		if err != nil {
			return nil, err
		}
		iters = append(iters, second)
	}
	return &ast.TupleComprehension{Tuple: tuple, Iterators: iters, Loc: p.finishNode(start)}, nil
}

// iteratorFollows reports whether the tokens after the current comma start
// another iterator rather than the next shape item.
func (p *Parser) iteratorFollows() bool {
	toks, err := p.lex.LookaheadTokens(2)
	if err != nil {
		return false
	}
	return toks[0].Kind == token.TokenIdent && toks[1].Kind == token.TokenLeftArrow
}

// tuple_iter := id "<-" range
func (p *Parser) parseTupleIterator() (*ast.TupleIterator, error) {
	start := p.startNode()
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenLeftArrow); err != nil {
		return nil, err
	}
	rng, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	return &ast.TupleIterator{Binding: id, Range: rng, Loc: p.finishNode(start)}, nil
}

// range := ("[" | "(") n ".." n ("]" | ")")
func (p *Parser) parseRange() (*ast.Range, error) {
	start := p.startNode()
	rng := &ast.Range{}

	switch tok := p.peek(); tok.Kind {
	case token.TokenLeftBracket:
		rng.LeftInclusive = true
	case token.TokenLeftPar:
	default:
		return nil, mismatch(ExpectedLeftInclusivity, token.TokenLeftBracket, tok)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var err error
	if rng.Left, err = p.consumeIntConst(); err != nil {
		return nil, err
	}
	if err = p.consumeKeyword(token.TokenRange); err != nil {
		return nil, err
	}
	if rng.Right, err = p.consumeIntConst(); err != nil {
		return nil, err
	}

	switch tok := p.peek(); tok.Kind {
	case token.TokenRightBracket:
		rng.RightInclusive = true
	case token.TokenRightPar:
	default:
		return nil, mismatch(ExpectedRightInclusivity, token.TokenRightBracket, tok)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	rng.Loc = p.finishNode(start)
	return rng, nil
}

// var_def := "let" id (":" data_type)? "=" expr ";"
func (p *Parser) parseVarDef() (*ast.VarDef, error) {
	start := p.startNode()
	if err := p.consumeKeyword(token.TokenLet); err != nil {
		return nil, err
	}
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	def := &ast.VarDef{ID: id, Type: types.Default}
	if p.check(token.TokenColon) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if def.Type, err = p.parseDataType(); err != nil {
			return nil, err
		}
		def.Annotated = true
	}
	if err := p.consumeKeyword(token.TokenEquals); err != nil {
		return nil, err
	}
	if def.Init, err = p.parseExpr(); err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenSemiColon); err != nil {
		return nil, err
	}
	def.Loc = p.finishNode(start)
	return def, nil
}

func (p *Parser) parseDataType() (types.Type, error) {
	tok := p.peek()
	t, ok := types.FromToken(tok)
	if !ok {
		return types.Default, mismatch(ParserError, token.TokenObject, tok)
	}
	return t, p.advance()
}

// expr := object_call | id | n
func (p *Parser) parseExpr() (ast.Expr, error) {
	start := p.startNode()
	tok := p.peek()
	switch tok.Kind {
	case token.TokenIdent:
		next, _, err := p.lex.Lookahead()
		if err != nil {
			return nil, fromLexer(err)
		}
		if next == token.TokenLeftPar {
			return p.parseObjectCall()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.RValue{Value: ast.IdentOperand(tok.Text), Loc: p.finishNode(start)}, nil
	case token.TokenInt:
		v, err := p.consumeIntConst()
		if err != nil {
			return nil, err
		}
		return &ast.RValue{Value: ast.IntOperand(v), Loc: p.finishNode(start)}, nil
	}
	return nil, mismatch(ParserError, token.TokenIdent, tok)
}

// object_call := id tuple?
func (p *Parser) parseObjectCall() (*ast.ObjectCall, error) {
	start := p.startNode()
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	call := &ast.ObjectCall{ID: id}
	if p.check(token.TokenLeftPar) {
		if call.Tuple, err = p.parseTuple(); err != nil {
			return nil, err
		}
	}
	call.Loc = p.finishNode(start)
	return call, nil
}

// func_call := id "(" (expr ("," expr)*)? ")" ";"
func (p *Parser) parseFuncCall() (*ast.FuncCall, error) {
	start := p.startNode()
	id, err := p.consumeIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenLeftPar); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if !p.check(token.TokenRightPar) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			more, err := p.listSeparator(token.TokenRightPar)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
	}
	if err := p.consumeKeyword(token.TokenRightPar); err != nil {
		return nil, err
	}
	if err := p.consumeKeyword(token.TokenSemiColon); err != nil {
		return nil, err
	}
	return &ast.FuncCall{ID: id, Args: args, Loc: p.finishNode(start)}, nil
}

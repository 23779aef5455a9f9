// Package parser turns erminia source text into a syntax tree.
//
// # Overview
//
// The parser is a recursive-descent parser with one method per grammar
// production. It pulls tokens from the lexer on demand and decides between
// alternatives with at most a few tokens of lookahead:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// # Grammar
//
//	program       := "def" id "(" n ")" "{" stmt* "}"
//	stmt          := object_decl | var_def | section
//	section       := ("example" | "solution" | "input" | "output") id "{" inner_stmt* "}"
//	inner_stmt    := object_decl | var_def | func_call
//	object_decl   := "object" id "{" object_desc "}" ";"
//	object_desc   := shape "," color | color "," shape
//	shape         := "shape" ":" "[" (shape_item ("," shape_item)*)? "]"
//	shape_item    := tuple | tuple_compr | object_call
//	tuple         := "(" n "," n ")"
//	tuple_generic := "(" (n | id)? "," (n | id)? ")"
//	tuple_compr   := tuple_generic "|" tuple_iter ("," tuple_iter)?
//	tuple_iter    := id "<-" range
//	range         := ("[" | "(") n ".." n ("]" | ")")
//	color         := "color" ":" n
//	var_def       := "let" id (":" data_type)? "=" expr ";"
//	func_call     := id "(" (expr ("," expr)*)? ")" ";"
//	object_call   := id tuple?
//	expr          := object_call | id | n
//
// Block comments "(* ... *)" are skipped. Inside a shape list, a comma
// after the first iterator of a comprehension starts a second iterator only
// when it is followed by id "<-"; otherwise it separates shape items.
//
// # Entry Points
//
// Each production that is useful on its own has an entry point that
// returns a *Parser over an io.Reader:
//
//	p := parser.ParseProgram(r)
//	if !p.IsComplete() {
//	    // read more input
//	}
//	node, err := p.Finish()
//
// Finish requires the production to consume the whole input.
//
// # Errors
//
// Parsing stops at the first error. Every error is an *Error carrying the
// location of the offending token together with the expected and actual
// token kinds:
//
//	ExpectedKeyWordError(location: 1:27, expected: Comma, actual: ObjectColor)
//
// Tokenization failures are reported as ParserError wrapping the
// *lexer.Error, and read failures as IoError wrapping the reader's error.
// Use errors.Is with the Err* values to test the kind.
package parser

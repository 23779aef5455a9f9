package ast

import (
	"strconv"

	"github.com/dhamidi/erminia/erminia/token"
	"github.com/dhamidi/erminia/erminia/types"
)

// Node is implemented by every syntax tree variant. The set of variants is
// closed: only types in this package satisfy it.
type Node interface {
	Span() token.Span
	node()
}

// Stmt is a node that can appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that can appear as an initializer or call argument.
type Expr interface {
	Node
	exprNode()
}

// ShapeItem is a node that can appear in a shape list.
type ShapeItem interface {
	Node
	shapeItemNode()
}

type Program struct {
	ID         string
	IntConst   int32
	Statements []Stmt
	Loc        token.Span
}

type ObjectDecl struct {
	ID   string
	Desc *ObjectDesc
	Loc  token.Span
}

// ObjectDesc holds both halves of an object body. ColorFirst records the
// order they were written in.
type ObjectDesc struct {
	Shape      *ObjectShape
	Color      *ObjectColor
	ColorFirst bool
	Loc        token.Span
}

type ObjectShape struct {
	Shapes []ShapeItem
	Loc    token.Span
}

type ObjectColor struct {
	Code int32
	Loc  token.Span
}

// Tuple is a coordinate pair of integer constants.
type Tuple struct {
	Left  int32
	Right int32
	Loc   token.Span
}

// GenericTuple is the head of a comprehension. Either side may be empty.
type GenericTuple struct {
	Left  TupleOperand
	Right TupleOperand
	Loc   token.Span
}

type Range struct {
	LeftInclusive  bool
	RightInclusive bool
	Left           int32
	Right          int32
	Loc            token.Span
}

// TupleIterator binds a name to each value of a range.
type TupleIterator struct {
	Binding string
	Range   *Range
	Loc     token.Span
}

type TupleComprehension struct {
	Tuple     *GenericTuple
	Iterators []*TupleIterator
	Loc       token.Span
}

// VarDef is a let binding. Type is types.Default when Annotated is false.
type VarDef struct {
	ID        string
	Type      types.Type
	Annotated bool
	Init      Expr
	Loc       token.Span
}

type FuncCall struct {
	ID   string
	Args []Expr
	Loc  token.Span
}

// ObjectCall references an object, optionally placed at a tuple.
type ObjectCall struct {
	ID    string
	Tuple *Tuple
	Loc   token.Span
}

// RValue is a bare identifier or integer constant.
type RValue struct {
	Value TupleOperand
	Loc   token.Span
}

type ProblemExample struct {
	ID         string
	Statements []Stmt
	Loc        token.Span
}

type ProblemSolution struct {
	ID         string
	Statements []Stmt
	Loc        token.Span
}

type ProblemInput struct {
	ID         string
	Statements []Stmt
	Loc        token.Span
}

type ProblemOutput struct {
	ID         string
	Statements []Stmt
	Loc        token.Span
}

type operandKind uint8

const (
	operandNone operandKind = iota
	operandInt
	operandIdent
)

// TupleOperand is an empty slot, an integer constant or an identifier.
type TupleOperand struct {
	kind  operandKind
	value int32
	ident string
}

func NoOperand() TupleOperand { return TupleOperand{} }

func IntOperand(v int32) TupleOperand { return TupleOperand{kind: operandInt, value: v} }

func IdentOperand(id string) TupleOperand { return TupleOperand{kind: operandIdent, ident: id} }

func (o TupleOperand) IsNone() bool  { return o.kind == operandNone }
func (o TupleOperand) IsInt() bool   { return o.kind == operandInt }
func (o TupleOperand) IsIdent() bool { return o.kind == operandIdent }

// Int returns the constant, or 0 if o is not an integer.
func (o TupleOperand) Int() int32 { return o.value }

// Ident returns the identifier, or "" if o is not an identifier.
func (o TupleOperand) Ident() string { return o.ident }

func (o TupleOperand) String() string {
	switch o.kind {
	case operandInt:
		return strconv.FormatInt(int64(o.value), 10)
	case operandIdent:
		return o.ident
	}
	return "_"
}

func (n *Program) Span() token.Span            { return n.Loc }
func (n *ObjectDecl) Span() token.Span         { return n.Loc }
func (n *ObjectDesc) Span() token.Span         { return n.Loc }
func (n *ObjectShape) Span() token.Span        { return n.Loc }
func (n *ObjectColor) Span() token.Span        { return n.Loc }
func (n *Tuple) Span() token.Span              { return n.Loc }
func (n *GenericTuple) Span() token.Span       { return n.Loc }
func (n *Range) Span() token.Span              { return n.Loc }
func (n *TupleIterator) Span() token.Span      { return n.Loc }
func (n *TupleComprehension) Span() token.Span { return n.Loc }
func (n *VarDef) Span() token.Span             { return n.Loc }
func (n *FuncCall) Span() token.Span           { return n.Loc }
func (n *ObjectCall) Span() token.Span         { return n.Loc }
func (n *RValue) Span() token.Span             { return n.Loc }
func (n *ProblemExample) Span() token.Span     { return n.Loc }
func (n *ProblemSolution) Span() token.Span    { return n.Loc }
func (n *ProblemInput) Span() token.Span       { return n.Loc }
func (n *ProblemOutput) Span() token.Span      { return n.Loc }

func (*Program) node()            {}
func (*ObjectDecl) node()         {}
func (*ObjectDesc) node()         {}
func (*ObjectShape) node()        {}
func (*ObjectColor) node()        {}
func (*Tuple) node()              {}
func (*GenericTuple) node()       {}
func (*Range) node()              {}
func (*TupleIterator) node()      {}
func (*TupleComprehension) node() {}
func (*VarDef) node()             {}
func (*FuncCall) node()           {}
func (*ObjectCall) node()         {}
func (*RValue) node()             {}
func (*ProblemExample) node()     {}
func (*ProblemSolution) node()    {}
func (*ProblemInput) node()       {}
func (*ProblemOutput) node()      {}

func (*ObjectDecl) stmtNode()      {}
func (*VarDef) stmtNode()          {}
func (*FuncCall) stmtNode()        {}
func (*ProblemExample) stmtNode()  {}
func (*ProblemSolution) stmtNode() {}
func (*ProblemInput) stmtNode()    {}
func (*ProblemOutput) stmtNode()   {}

func (*ObjectCall) exprNode() {}
func (*RValue) exprNode()     {}

func (*Tuple) shapeItemNode()              {}
func (*TupleComprehension) shapeItemNode() {}
func (*ObjectCall) shapeItemNode()         {}

// KindOf returns the variant name of n.
func KindOf(n Node) string {
	switch n.(type) {
	case *Program:
		return "Program"
	case *ObjectDecl:
		return "ObjectDecl"
	case *ObjectDesc:
		return "ObjectDesc"
	case *ObjectShape:
		return "ObjectShape"
	case *ObjectColor:
		return "ObjectColor"
	case *Tuple:
		return "Tuple"
	case *GenericTuple:
		return "GenericTuple"
	case *Range:
		return "Range"
	case *TupleIterator:
		return "TupleIterator"
	case *TupleComprehension:
		return "TupleComprehension"
	case *VarDef:
		return "VarDef"
	case *FuncCall:
		return "FuncCall"
	case *ObjectCall:
		return "ObjectCall"
	case *RValue:
		return "RValue"
	case *ProblemExample:
		return "ProblemExample"
	case *ProblemSolution:
		return "ProblemSolution"
	case *ProblemInput:
		return "ProblemInput"
	case *ProblemOutput:
		return "ProblemOutput"
	}
	return "Unknown"
}

// Section returns the keyword, name and body of a problem section. ok is
// false for any other node.
func Section(n Node) (keyword, id string, stmts []Stmt, ok bool) {
	switch n := n.(type) {
	case *ProblemExample:
		return "example", n.ID, n.Statements, true
	case *ProblemSolution:
		return "solution", n.ID, n.Statements, true
	case *ProblemInput:
		return "input", n.ID, n.Statements, true
	case *ProblemOutput:
		return "output", n.ID, n.Statements, true
	}
	return "", "", nil, false
}

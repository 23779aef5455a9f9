package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/erminia/erminia/ast"
	"github.com/dhamidi/erminia/erminia/token"
)

type ASTJSONEncoder struct {
	w    io.Writer
	opts options
}

func NewASTJSONEncoder(w io.Writer, opts ...Option) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, opts: buildOptions(opts)}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(treeOf(node, e.opts.positions), "", "  ")
}

// astNode is the document shape shared by the JSON and YAML encoders.
type astNode struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Span     *astSpan       `json:"span,omitempty" yaml:"span,omitempty"`
	Fields   map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []*astNode     `json:"children,omitempty" yaml:"children,omitempty"`
}

type astSpan struct {
	Start astPosition `json:"start" yaml:"start"`
	End   astPosition `json:"end" yaml:"end"`
}

type astPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func positionOf(p token.Position) astPosition {
	return astPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func treeOf(n ast.Node, positions bool) *astNode {
	an := &astNode{
		Kind:   ast.KindOf(n),
		Fields: fieldsOf(n),
	}
	if positions {
		an.Span = &astSpan{Start: positionOf(n.Span().Start), End: positionOf(n.Span().End)}
	}
	for _, c := range ast.Children(n) {
		an.Children = append(an.Children, treeOf(c, positions))
	}
	return an
}

func operandValue(o ast.TupleOperand) any {
	switch {
	case o.IsInt():
		return o.Int()
	case o.IsIdent():
		return o.Ident()
	}
	return nil
}

func fieldsOf(n ast.Node) map[string]any {
	switch n := n.(type) {
	case *ast.Program:
		return map[string]any{"id": n.ID, "intConst": n.IntConst}
	case *ast.ObjectDecl:
		return map[string]any{"id": n.ID}
	case *ast.ObjectDesc:
		return map[string]any{"colorFirst": n.ColorFirst}
	case *ast.ObjectColor:
		return map[string]any{"code": n.Code}
	case *ast.Tuple:
		return map[string]any{"left": n.Left, "right": n.Right}
	case *ast.GenericTuple:
		fields := map[string]any{}
		if v := operandValue(n.Left); v != nil {
			fields["left"] = v
		}
		if v := operandValue(n.Right); v != nil {
			fields["right"] = v
		}
		return fields
	case *ast.Range:
		return map[string]any{
			"left":           n.Left,
			"right":          n.Right,
			"leftInclusive":  n.LeftInclusive,
			"rightInclusive": n.RightInclusive,
		}
	case *ast.TupleIterator:
		return map[string]any{"binding": n.Binding}
	case *ast.VarDef:
		return map[string]any{"id": n.ID, "type": n.Type.String(), "annotated": n.Annotated}
	case *ast.FuncCall:
		return map[string]any{"id": n.ID}
	case *ast.ObjectCall:
		return map[string]any{"id": n.ID}
	case *ast.RValue:
		return map[string]any{"value": operandValue(n.Value)}
	case *ast.ProblemExample, *ast.ProblemSolution, *ast.ProblemInput, *ast.ProblemOutput:
		_, id, _, _ := ast.Section(n)
		return map[string]any{"id": id}
	}
	return nil
}

package ast

import (
	"fmt"
	"io"
	"strings"
)

type printConfig struct {
	depth     int
	positions bool
}

type PrintOption func(*printConfig)

// WithPositions appends each node's span to its line.
func WithPositions() PrintOption {
	return func(c *printConfig) {
		c.positions = true
	}
}

// WithDepth starts printing at the given indentation level.
func WithDepth(depth int) PrintOption {
	return func(c *printConfig) {
		c.depth = depth
	}
}

// Fprint writes an indented tree of n to w, one node per line.
func Fprint(w io.Writer, n Node, opts ...PrintOption) error {
	var cfg printConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return fprint(w, n, cfg.depth, cfg.positions)
}

// Sprint returns the tree Fprint would write.
func Sprint(n Node, opts ...PrintOption) string {
	var sb strings.Builder
	_ = Fprint(&sb, n, opts...)
	return sb.String()
}

func fprint(w io.Writer, n Node, depth int, positions bool) error {
	line := strings.Repeat("  ", depth) + KindOf(n)
	if positions {
		line += " [" + n.Span().String() + "]"
	}
	if detail := Detail(n); detail != "" {
		line += " " + detail
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return err
	}
	for _, c := range Children(n) {
		if err := fprint(w, c, depth+1, positions); err != nil {
			return err
		}
	}
	return nil
}

// Detail returns the scalar content of n, the part of a node that is not
// a child node.
func Detail(n Node) string {
	switch n := n.(type) {
	case *Program:
		return fmt.Sprintf("%s (%d)", n.ID, n.IntConst)
	case *ObjectDecl:
		return n.ID
	case *ObjectColor:
		return fmt.Sprintf("%d", n.Code)
	case *Tuple:
		return fmt.Sprintf("(%d, %d)", n.Left, n.Right)
	case *GenericTuple:
		return fmt.Sprintf("(%s, %s)", n.Left, n.Right)
	case *Range:
		open, closing := "(", ")"
		if n.LeftInclusive {
			open = "["
		}
		if n.RightInclusive {
			closing = "]"
		}
		return fmt.Sprintf("%s%d..%d%s", open, n.Left, n.Right, closing)
	case *TupleIterator:
		return n.Binding
	case *VarDef:
		return fmt.Sprintf("%s: %s", n.ID, n.Type)
	case *FuncCall:
		return n.ID
	case *ObjectCall:
		return n.ID
	case *RValue:
		return n.Value.String()
	case *ProblemExample, *ProblemSolution, *ProblemInput, *ProblemOutput:
		_, id, _, _ := Section(n)
		return id
	}
	return ""
}

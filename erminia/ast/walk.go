package ast

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var children []Node
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			children = append(children, s)
		}
	case *ObjectDecl:
		if n.Desc != nil {
			children = append(children, n.Desc)
		}
	case *ObjectDesc:
		first, second := Node(n.Shape), Node(n.Color)
		if n.ColorFirst {
			first, second = second, first
		}
		if !isNil(first) {
			children = append(children, first)
		}
		if !isNil(second) {
			children = append(children, second)
		}
	case *ObjectShape:
		for _, s := range n.Shapes {
			children = append(children, s)
		}
	case *TupleIterator:
		if n.Range != nil {
			children = append(children, n.Range)
		}
	case *TupleComprehension:
		if n.Tuple != nil {
			children = append(children, n.Tuple)
		}
		for _, it := range n.Iterators {
			children = append(children, it)
		}
	case *VarDef:
		if n.Init != nil {
			children = append(children, n.Init)
		}
	case *FuncCall:
		for _, a := range n.Args {
			children = append(children, a)
		}
	case *ObjectCall:
		if n.Tuple != nil {
			children = append(children, n.Tuple)
		}
	case *ProblemExample, *ProblemSolution, *ProblemInput, *ProblemOutput:
		_, _, stmts, _ := Section(n)
		for _, s := range stmts {
			children = append(children, s)
		}
	}
	return children
}

func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *ObjectShape:
		return n == nil
	case *ObjectColor:
		return n == nil
	}
	return false
}

// Inspect traverses the tree rooted at n in depth-first order. fn is
// called for each node; if it returns false the node's children are
// skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

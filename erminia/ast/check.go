package ast

import "errors"

var errNilNode = errors.New("ast: nil node")

// Check performs semantic analysis of a parsed tree. Only structural
// well-formedness is verified so far; name resolution and typing are not
// implemented.
func Check(n Node) error {
	if n == nil {
		return errNilNode
	}
	var err error
	Inspect(n, func(c Node) bool {
		if err != nil {
			return false
		}
		switch c := c.(type) {
		case *ObjectDecl:
			if c.Desc == nil {
				err = errors.New("ast: object " + c.ID + " has no description")
			}
		case *TupleIterator:
			if c.Range == nil {
				err = errors.New("ast: iterator " + c.Binding + " has no range")
			}
		case *VarDef:
			if c.Init == nil {
				err = errors.New("ast: variable " + c.ID + " has no initializer")
			}
		}
		return true
	})
	return err
}

// Package types holds the data types a variable definition can declare.
package types

import "github.com/dhamidi/erminia/erminia/token"

type Type int

const (
	Object Type = iota
	SuperObject
	Int
	String
)

// Default is the type of a variable definition without an annotation.
const Default = Object

var typeNames = map[Type]string{
	Object:      "object",
	SuperObject: "superobject",
	Int:         "int",
	String:      "string",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// FromToken maps a type annotation token to its type. The object types are
// keywords; int and string are plain identifiers.
func FromToken(tok token.Token) (Type, bool) {
	switch tok.Kind {
	case token.TokenObject:
		return Object, true
	case token.TokenSuperObject:
		return SuperObject, true
	case token.TokenIdent:
		switch tok.Text {
		case "int":
			return Int, true
		case "string":
			return String, true
		}
	}
	return Default, false
}

// Names lists the spellings accepted after ':' in a variable definition.
func Names() []string {
	return []string{"object", "superobject", "int", "string"}
}

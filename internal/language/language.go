package language

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// LoadSchema parses and validates SDL sources into an executable schema
// document. The standard prelude (built-in scalars, spec directives and the
// introspection meta-types) is included automatically; its definitions carry
// the BuiltIn marker.
func LoadSchema(sources ...*Source) (*Schema, error) {
	return gqlparser.LoadSchema(sources...)
}

func NewSource(name, input string) *Source {
	return &ast.Source{Name: name, Input: input}
}

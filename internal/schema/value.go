package schema

// DefaultDeprecationReason is the reason attached to @deprecated when the
// schema author supplied none.
const DefaultDeprecationReason = "No longer supported"

// Literal is a raw SDL value fragment carried through rendering verbatim.
// Loaders that receive defaults in already-serialized form (introspection
// responses) use it for composite literals.
type Literal string

// ValueMap is an input-object literal. Entries keep the order in which the
// raw value was supplied, since Go maps have no iteration order of their own.
type ValueMap []ValueField

type ValueField struct {
	Name  string
	Value any
}

package schema

import "strings"

var stringType = &Type{Name: "String", Kind: TypeKindScalar}

var intType = &Type{Name: "Int", Kind: TypeKindScalar}

var floatType = &Type{Name: "Float", Kind: TypeKindScalar}

var booleanType = &Type{Name: "Boolean", Kind: TypeKindScalar}

var idType = &Type{Name: "ID", Kind: TypeKindScalar}

var includeDirective = &Directive{
	Name: "include",
	Arguments: []*InputValue{
		{
			Name: "if",
			Type: &TypeRef{Kind: TypeRefKindNonNull, OfType: &TypeRef{Kind: TypeRefKindNamed, Named: "Boolean"}},
		},
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

var skipDirective = &Directive{
	Name: "skip",
	Arguments: []*InputValue{
		{
			Name: "if",
			Type: &TypeRef{Kind: TypeRefKindNonNull, OfType: &TypeRef{Kind: TypeRefKindNamed, Named: "Boolean"}},
		},
	},
	Locations: []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
}

var deprecatedDirective = &Directive{
	Name: "deprecated",
	Arguments: []*InputValue{
		{
			Name:         "reason",
			Type:         &TypeRef{Kind: TypeRefKindNamed, Named: "String"},
			DefaultValue: DefaultDeprecationReason,
		},
	},
	Locations: []string{"FIELD_DEFINITION", "ENUM_VALUE"},
}

// BuiltinScalars returns the five built-in scalar types.
func BuiltinScalars() []*Type {
	return []*Type{stringType, intType, floatType, booleanType, idType}
}

// SpecDirectives returns the three directives reserved by the GraphQL
// specification: skip, include and deprecated.
func SpecDirectives() []*Directive {
	return []*Directive{skipDirective, includeDirective, deprecatedDirective}
}

// IsBuiltinScalarName reports whether name is one of the five built-in scalars.
func IsBuiltinScalarName(name string) bool {
	switch name {
	case "String", "Boolean", "Int", "Float", "ID":
		return true
	}
	return false
}

// IsSpecDirectiveName reports whether name is a spec-reserved directive.
func IsSpecDirectiveName(name string) bool {
	switch name {
	case "skip", "include", "deprecated":
		return true
	}
	return false
}

// IsIntrospectionName reports whether name carries the reserved
// double-underscore prefix of the introspection meta-schema.
func IsIntrospectionName(name string) bool {
	return strings.HasPrefix(name, "__")
}

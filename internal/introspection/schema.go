// Package introspection defines the introspection meta-schema: the eight
// double-underscore types describing a GraphQL schema to its clients.
package introspection

import (
	schema "github.com/graphprint/graphprint/internal/schema"
)

// NewSchema returns a minimal synthetic schema whose only root is an empty
// query type, with the built-in scalars, the spec-reserved directives and the
// introspection meta-types registered.
func NewSchema() *schema.Schema {
	s := schema.NewSchema().SetQueryType("Query")
	for _, t := range schema.BuiltinScalars() {
		s.AddType(t)
	}
	for _, d := range schema.SpecDirectives() {
		s.AddDirective(d)
	}
	s.AddType(schema.NewType("Query", schema.TypeKindObject))
	for _, t := range MetaTypes() {
		s.AddType(t)
	}
	return s
}

// MetaTypes returns the introspection type definitions.
func MetaTypes() []*schema.Type {
	return []*schema.Type{
		schemaType(),
		typeType(),
		fieldType(),
		inputValueType(),
		enumValueType(),
		directiveType(),
		typeKindEnum(),
		directiveLocationEnum(),
	}
}

// AddTo registers the meta-types on an existing schema so that a model built
// elsewhere exposes the full introspection surface.
func AddTo(s *schema.Schema) *schema.Schema {
	for _, t := range MetaTypes() {
		s.AddType(t)
	}
	return s
}

func schemaType() *schema.Type {
	return &schema.Type{
		Name: "__Schema",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "types", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Type"))))},
			{Name: "queryType", Type: schema.NonNullType(schema.NamedType("__Type"))},
			{Name: "mutationType", Type: schema.NamedType("__Type")},
			{Name: "subscriptionType", Type: schema.NamedType("__Type")},
			{Name: "directives", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__Directive"))))},
		},
	}
}

func typeType() *schema.Type {
	return &schema.Type{
		Name: "__Type",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "kind", Type: schema.NonNullType(schema.NamedType("__TypeKind"))},
			{Name: "name", Type: schema.NamedType("String")},
			{Name: "description", Type: schema.NamedType("String")},
			{
				Name: "fields",
				Arguments: []*schema.InputValue{
					{Name: "includeDeprecated", Type: schema.NamedType("Boolean"), DefaultValue: false},
				},
				Type: schema.ListType(schema.NonNullType(schema.NamedType("__Field"))),
			},
			{Name: "interfaces", Type: schema.ListType(schema.NonNullType(schema.NamedType("__Type")))},
			{Name: "possibleTypes", Type: schema.ListType(schema.NonNullType(schema.NamedType("__Type")))},
			{
				Name: "enumValues",
				Arguments: []*schema.InputValue{
					{Name: "includeDeprecated", Type: schema.NamedType("Boolean"), DefaultValue: false},
				},
				Type: schema.ListType(schema.NonNullType(schema.NamedType("__EnumValue"))),
			},
			{Name: "inputFields", Type: schema.ListType(schema.NonNullType(schema.NamedType("__InputValue")))},
			{Name: "ofType", Type: schema.NamedType("__Type")},
		},
	}
}

func fieldType() *schema.Type {
	return &schema.Type{
		Name: "__Field",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "name", Type: schema.NonNullType(schema.NamedType("String"))},
			{Name: "description", Type: schema.NamedType("String")},
			{Name: "args", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))},
			{Name: "type", Type: schema.NonNullType(schema.NamedType("__Type"))},
			{Name: "isDeprecated", Type: schema.NonNullType(schema.NamedType("Boolean"))},
			{Name: "deprecationReason", Type: schema.NamedType("String")},
		},
	}
}

func inputValueType() *schema.Type {
	return &schema.Type{
		Name: "__InputValue",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "name", Type: schema.NonNullType(schema.NamedType("String"))},
			{Name: "description", Type: schema.NamedType("String")},
			{Name: "type", Type: schema.NonNullType(schema.NamedType("__Type"))},
			{Name: "defaultValue", Type: schema.NamedType("String")},
		},
	}
}

func enumValueType() *schema.Type {
	return &schema.Type{
		Name: "__EnumValue",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "name", Type: schema.NonNullType(schema.NamedType("String"))},
			{Name: "description", Type: schema.NamedType("String")},
			{Name: "isDeprecated", Type: schema.NonNullType(schema.NamedType("Boolean"))},
			{Name: "deprecationReason", Type: schema.NamedType("String")},
		},
	}
}

func directiveType() *schema.Type {
	return &schema.Type{
		Name: "__Directive",
		Kind: schema.TypeKindObject,
		Fields: []*schema.Field{
			{Name: "name", Type: schema.NonNullType(schema.NamedType("String"))},
			{Name: "description", Type: schema.NamedType("String")},
			{Name: "locations", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__DirectiveLocation"))))},
			{Name: "args", Type: schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))},
		},
	}
}

func typeKindEnum() *schema.Type {
	return &schema.Type{
		Name: "__TypeKind",
		Kind: schema.TypeKindEnum,
		EnumValues: []*schema.EnumValue{
			{Name: "SCALAR"},
			{Name: "OBJECT"},
			{Name: "INTERFACE"},
			{Name: "UNION"},
			{Name: "ENUM"},
			{Name: "INPUT_OBJECT"},
			{Name: "LIST"},
			{Name: "NON_NULL"},
		},
	}
}

func directiveLocationEnum() *schema.Type {
	return &schema.Type{
		Name: "__DirectiveLocation",
		Kind: schema.TypeKindEnum,
		EnumValues: []*schema.EnumValue{
			{Name: "QUERY"},
			{Name: "MUTATION"},
			{Name: "SUBSCRIPTION"},
			{Name: "FIELD"},
			{Name: "FRAGMENT_DEFINITION"},
			{Name: "FRAGMENT_SPREAD"},
			{Name: "INLINE_FRAGMENT"},
			{Name: "SCHEMA"},
			{Name: "SCALAR"},
			{Name: "OBJECT"},
			{Name: "FIELD_DEFINITION"},
			{Name: "ARGUMENT_DEFINITION"},
			{Name: "INTERFACE"},
			{Name: "UNION"},
			{Name: "ENUM"},
			{Name: "ENUM_VALUE"},
			{Name: "INPUT_OBJECT"},
			{Name: "INPUT_FIELD_DEFINITION"},
		},
	}
}

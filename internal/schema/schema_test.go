package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeRefHelpers(t *testing.T) {
	ref := NonNullType(ListType(NonNullType(NamedType("Droid"))))

	require.True(t, ref.IsNonNull())
	require.Equal(t, "Droid", ref.GetNamedType())
	require.Equal(t, TypeRefKindList, ref.Unwrap().Kind)
	require.Equal(t, "Droid", ref.Unwrap().Unwrap().Unwrap().Named)
}

func TestBuiltinRegistries(t *testing.T) {
	scalars := BuiltinScalars()
	require.Len(t, scalars, 5)
	for _, s := range scalars {
		require.Equal(t, TypeKindScalar, s.Kind)
		require.True(t, IsBuiltinScalarName(s.Name), s.Name)
	}

	directives := SpecDirectives()
	require.Len(t, directives, 3)
	for _, d := range directives {
		require.True(t, IsSpecDirectiveName(d.Name), d.Name)
	}
}

func TestNamePredicates(t *testing.T) {
	require.True(t, IsIntrospectionName("__Type"))
	require.False(t, IsIntrospectionName("_Type"))
	require.False(t, IsIntrospectionName("Type"))
	require.False(t, IsBuiltinScalarName("DateTime"))
	require.False(t, IsSpecDirectiveName("cacheControl"))
}

func TestSchemaRootAccessors(t *testing.T) {
	s := NewSchema().SetQueryType("Query").SetMutationType("Mutation")
	query := NewType("Query", TypeKindObject)
	s.AddType(query)

	require.Same(t, query, s.GetQueryType())
	require.Nil(t, s.GetMutationType())
	require.Nil(t, s.GetSubscriptionType())
}

func TestInputObjectLookups(t *testing.T) {
	point := NewType("Point", TypeKindInputObject).
		AddInputField(NewInputValue("x", NamedType("Float"))).
		AddInputField(NewInputValue("y", NamedType("Float")))

	require.NotNil(t, point.InputField("x"))
	require.Nil(t, point.InputField("z"))

	episode := NewType("Episode", TypeKindEnum).
		AddEnumValue(NewEnumValue("NEWHOPE"))
	require.True(t, episode.HasEnumValue("NEWHOPE"))
	require.False(t, episode.HasEnumValue("JEDI"))
}

func TestDeprecate(t *testing.T) {
	f := NewField("old", NamedType("String")).Deprecate("Use new")
	require.True(t, f.IsDeprecated)
	require.Equal(t, "Use new", f.DeprecationReason)

	e := NewEnumValue("JEDI").Deprecate("")
	require.True(t, e.IsDeprecated)
	require.Empty(t, e.DeprecationReason)
}

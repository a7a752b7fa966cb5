package introspection

import (
	"testing"

	"github.com/stretchr/testify/require"

	schema "github.com/graphprint/graphprint/internal/schema"
)

func TestNewSchema(t *testing.T) {
	s := NewSchema()

	require.Equal(t, "Query", s.QueryType)
	require.NotNil(t, s.GetQueryType())
	require.Empty(t, s.MutationType)
	require.Empty(t, s.SubscriptionType)

	// Five builtin scalars, the synthetic Query root and the eight meta-types.
	require.Len(t, s.Types, 14)
	require.Len(t, s.Directives, 3)
}

func TestMetaTypes(t *testing.T) {
	metas := MetaTypes()
	require.Len(t, metas, 8)

	byName := map[string]*schema.Type{}
	for _, m := range metas {
		require.True(t, schema.IsIntrospectionName(m.Name), m.Name)
		byName[m.Name] = m
	}

	require.Equal(t, schema.TypeKindEnum, byName["__TypeKind"].Kind)
	require.Equal(t, schema.TypeKindEnum, byName["__DirectiveLocation"].Kind)
	require.Equal(t, schema.TypeKindObject, byName["__Schema"].Kind)

	// __Type.fields carries the includeDeprecated argument with its default.
	typeType := byName["__Type"]
	for _, f := range typeType.Fields {
		if f.Name != "fields" {
			continue
		}
		require.Len(t, f.Arguments, 1)
		require.Equal(t, "includeDeprecated", f.Arguments[0].Name)
		require.Equal(t, false, f.Arguments[0].DefaultValue)
		return
	}
	t.Fatal("__Type has no fields field")
}

func TestAddTo(t *testing.T) {
	s := schema.NewSchema().SetQueryType("Query")
	s.AddType(schema.NewType("Query", schema.TypeKindObject))
	AddTo(s)

	require.Contains(t, s.Types, "__Schema")
	require.Contains(t, s.Types, "__Type")
	require.Contains(t, s.Types, "Query")
}

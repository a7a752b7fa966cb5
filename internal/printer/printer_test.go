package printer

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"

	"github.com/graphprint/graphprint/internal/schema"
)

// requireSDL fails with a unified diff when the rendered document deviates
// from the expected text.
func requireSDL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected == actual {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	t.Fatalf("SDL mismatch:\n%s", diff)
}

func starWarsSchema() *schema.Schema {
	s := schema.NewSchema().SetQueryType("Query")
	for _, t := range schema.BuiltinScalars() {
		s.AddType(t)
	}
	for _, d := range schema.SpecDirectives() {
		s.AddDirective(d)
	}

	character := schema.NewType("Character", schema.TypeKindInterface).
		AddField(schema.NewField("id", schema.NonNullType(schema.NamedType("ID")))).
		AddField(schema.NewField("name", schema.NamedType("String"))).
		AddField(schema.NewField("friends", schema.ListType(schema.NamedType("Character"))))

	droid := schema.NewType("Droid", schema.TypeKindObject).
		AddInterface("Character").
		AddField(schema.NewField("id", schema.NonNullType(schema.NamedType("ID")))).
		AddField(schema.NewField("name", schema.NamedType("String"))).
		AddField(schema.NewField("friends", schema.ListType(schema.NamedType("Character")))).
		AddField(schema.NewField("primaryFunction", schema.NamedType("String")).
			Deprecate("Use function instead"))

	human := schema.NewType("Human", schema.TypeKindObject).
		AddField(schema.NewField("id", schema.NonNullType(schema.NamedType("ID"))))

	episode := schema.NewType("Episode", schema.TypeKindEnum).
		AddEnumValue(schema.NewEnumValue("NEWHOPE")).
		AddEnumValue(schema.NewEnumValue("EMPIRE")).
		AddEnumValue(schema.NewEnumValue("JEDI").Deprecate(""))

	review := schema.NewType("ReviewInput", schema.TypeKindInputObject).
		AddInputField(schema.NewInputValue("stars", schema.NonNullType(schema.NamedType("Int")))).
		AddInputField(schema.NewInputValue("commentary", schema.NamedType("String")).SetDefault("none")).
		AddInputField(schema.NewInputValue("rating", schema.NamedType("Float")).SetDefault(1.5)).
		AddInputField(schema.NewInputValue("tags", schema.ListType(schema.NamedType("String"))).
			SetDefault([]any{"a", "b"}))

	search := schema.NewType("SearchResult", schema.TypeKindUnion).
		AddPossibleType("Droid").
		AddPossibleType("Human")

	query := schema.NewType("Query", schema.TypeKindObject).
		AddField(schema.NewField("hero", schema.NamedType("Character")).
			AddArgument(schema.NewInputValue("episode", schema.NamedType("Episode")).SetDefault("NEWHOPE"))).
		AddField(schema.NewField("droid", schema.NamedType("Droid")).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(schema.NamedType("ID"))))).
		AddField(schema.NewField("search", schema.NamedType("SearchResult")).
			AddArgument(schema.NewInputValue("filter", schema.NamedType("ReviewInput")).
				SetDefault(schema.ValueMap{
					{Name: "stars", Value: 4},
					{Name: "commentary", Value: "ok"},
				})))

	s.AddType(schema.NewType("DateTime", schema.TypeKindScalar)).
		AddType(character).
		AddType(droid).
		AddType(human).
		AddType(episode).
		AddType(review).
		AddType(search).
		AddType(query)

	s.AddDirective(schema.NewDirective("cacheControl", "FIELD_DEFINITION", "OBJECT").
		AddArgument(schema.NewInputValue("maxAge", schema.NamedType("Int"))))

	return s
}

func TestPrintSchema(t *testing.T) {
	out, err := PrintSchema(starWarsSchema())
	require.NoError(t, err)

	expected := heredoc.Doc(`
		directive @cacheControl(maxAge: Int) on FIELD_DEFINITION | OBJECT

		interface Character {
		  id: ID!
		  name: String
		  friends: [Character]
		}

		scalar DateTime

		type Droid implements Character {
		  id: ID!
		  name: String
		  friends: [Character]
		  primaryFunction: String @deprecated(reason: "Use function instead")
		}

		enum Episode {
		  NEWHOPE
		  EMPIRE
		  JEDI @deprecated
		}

		type Human {
		  id: ID!
		}

		type Query {
		  hero(episode: Episode = NEWHOPE): Character
		  droid(id: ID!): Droid
		  search(filter: ReviewInput = {stars: 4, commentary: "ok"}): SearchResult
		}

		input ReviewInput {
		  stars: Int!
		  commentary: String = "none"
		  rating: Float = 1.5
		  tags: [String] = ["a", "b"]
		}

		union SearchResult = Droid | Human
	`)
	requireSDL(t, expected, out)
}

func TestPrintSchemaIsDeterministic(t *testing.T) {
	s := starWarsSchema()
	first, err := PrintSchema(s)
	require.NoError(t, err)
	second, err := PrintSchema(s)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(first, second))
}

func TestPrintSchemaSortsTypes(t *testing.T) {
	out, err := PrintSchema(starWarsSchema())
	require.NoError(t, err)

	decls := []string{
		"interface Character",
		"scalar DateTime",
		"type Droid",
		"enum Episode",
		"type Human",
		"type Query",
		"input ReviewInput",
		"union SearchResult",
	}
	var positions []int
	for _, decl := range decls {
		pos := strings.Index(out, decl)
		require.GreaterOrEqual(t, pos, 0, "missing declaration %q", decl)
		positions = append(positions, pos)
	}
	for i := 1; i < len(positions); i++ {
		require.Greater(t, positions[i], positions[i-1], "declaration %q out of order", decls[i])
	}
}

func TestPrintSchemaExcludesReservedEntities(t *testing.T) {
	s := starWarsSchema()
	s.AddType(schema.NewType("__Custom", schema.TypeKindScalar))
	out, err := PrintSchema(s)
	require.NoError(t, err)

	require.NotContains(t, out, "__")
	for _, name := range []string{"String", "Boolean", "Int", "Float", "ID"} {
		require.NotContains(t, out, "scalar "+name)
	}
	for _, name := range []string{"skip", "include", "deprecated"} {
		require.NotContains(t, out, "directive @"+name)
	}
}

func TestSchemaBlock(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		mutation     string
		subscription string
		expected     string
	}{
		{
			name:  "conventional names produce no block",
			query: "Query",
		},
		{
			name:     "absent roots are not a deviation",
			query:    "Query",
			mutation: "",
		},
		{
			name:     "renamed query root",
			query:    "RootQuery",
			expected: "schema {\n  query: RootQuery\n}",
		},
		{
			name:         "renamed mutation lists all present roots in fixed order",
			query:        "Query",
			mutation:     "RootMutation",
			subscription: "Subscription",
			expected:     "schema {\n  query: Query\n  mutation: RootMutation\n  subscription: Subscription\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := schema.NewSchema().
				SetQueryType(tt.query).
				SetMutationType(tt.mutation).
				SetSubscriptionType(tt.subscription)
			require.Equal(t, tt.expected, renderSchemaBlock(s))
		})
	}
}

func TestDeprecationRendering(t *testing.T) {
	tests := []struct {
		name       string
		deprecated bool
		reason     string
		expected   string
	}{
		{name: "not deprecated", expected: ""},
		{name: "empty reason", deprecated: true, reason: "", expected: " @deprecated"},
		{name: "default reason", deprecated: true, reason: "No longer supported", expected: " @deprecated"},
		{name: "custom reason", deprecated: true, reason: "Use v2", expected: ` @deprecated(reason: "Use v2")`},
		{name: "reason needing escapes", deprecated: true, reason: `say "bye"`, expected: ` @deprecated(reason: "say \"bye\"")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, renderDeprecated(tt.deprecated, tt.reason))
		})
	}
}

func TestRenderUnknownKindFails(t *testing.T) {
	s := schema.NewSchema().SetQueryType("Query")
	s.AddType(&schema.Type{Name: "Mystery", Kind: schema.TypeKind("FUTURE")})
	_, err := PrintSchema(s)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Mystery")
	require.Contains(t, err.Error(), "FUTURE")
}

func TestRenderDirectiveWithoutArgs(t *testing.T) {
	s := schema.NewSchema()
	out, err := renderDirective(s, schema.NewDirective("internal", "OBJECT", "INTERFACE"))
	require.NoError(t, err)
	require.Equal(t, "directive @internal on OBJECT | INTERFACE", out)
}

func TestRenderTypeRef(t *testing.T) {
	ref := schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("String"))))
	require.Equal(t, "[String!]!", renderTypeRef(ref))
}

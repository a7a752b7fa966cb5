// Package printer renders a schema model into a canonical SDL document.
// Rendering is a pure read pass over the model: it either produces the full
// document or returns an error naming the type or value it could not render.
package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graphprint/graphprint/internal/introspection"
	"github.com/graphprint/graphprint/internal/schema"
)

// Policy selects which directives and types a print includes.
type Policy struct {
	KeepDirective func(*schema.Directive) bool
	KeepType      func(*schema.Type) bool
}

// DefinedOnly keeps user-defined entities: it drops the spec-reserved
// directives, introspection-named types and the built-in scalars.
func DefinedOnly() Policy {
	return Policy{
		KeepDirective: func(d *schema.Directive) bool {
			return !schema.IsSpecDirectiveName(d.Name)
		},
		KeepType: func(t *schema.Type) bool {
			return !schema.IsIntrospectionName(t.Name) && !schema.IsBuiltinScalarName(t.Name)
		},
	}
}

// IntrospectionOnly keeps only the spec-reserved directives and
// introspection-named types.
func IntrospectionOnly() Policy {
	return Policy{
		KeepDirective: func(d *schema.Directive) bool {
			return schema.IsSpecDirectiveName(d.Name)
		},
		KeepType: func(t *schema.Type) bool {
			return schema.IsIntrospectionName(t.Name)
		},
	}
}

// PrintSchema renders the user-defined portion of the schema as SDL.
func PrintSchema(s *schema.Schema) (string, error) {
	return Render(s, DefinedOnly())
}

// PrintIntrospectionSchema renders the introspection meta-schema: the three
// spec-reserved directives and the eight meta-types, rooted at a synthetic
// empty query type.
func PrintIntrospectionSchema() (string, error) {
	return Render(introspection.NewSchema(), IntrospectionOnly())
}

// Render produces SDL from the schema under the given policy. Sections are
// separated by exactly one blank line; surviving types are sorted by name.
func Render(s *schema.Schema, p Policy) (string, error) {
	var sections []string

	if block := renderSchemaBlock(s); block != "" {
		sections = append(sections, block)
	}

	directiveNames := make([]string, 0, len(s.Directives))
	for name, d := range s.Directives {
		if p.KeepDirective(d) {
			directiveNames = append(directiveNames, name)
		}
	}
	sort.Strings(directiveNames)
	for _, name := range directiveNames {
		out, err := renderDirective(s, s.Directives[name])
		if err != nil {
			return "", err
		}
		sections = append(sections, out)
	}

	typeNames := make([]string, 0, len(s.Types))
	for name, t := range s.Types {
		if p.KeepType(t) {
			typeNames = append(typeNames, name)
		}
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		out, err := renderType(s, s.Types[name])
		if err != nil {
			return "", err
		}
		sections = append(sections, out)
	}

	return strings.Join(sections, "\n\n") + "\n", nil
}

// renderSchemaBlock emits the schema { ... } definition only when a present
// root type deviates from its conventional name.
func renderSchemaBlock(s *schema.Schema) string {
	deviates := (s.QueryType != "" && s.QueryType != "Query") ||
		(s.MutationType != "" && s.MutationType != "Mutation") ||
		(s.SubscriptionType != "" && s.SubscriptionType != "Subscription")
	if !deviates {
		return ""
	}

	var b strings.Builder
	b.WriteString("schema {\n")
	if s.QueryType != "" {
		fmt.Fprintf(&b, "  query: %s\n", s.QueryType)
	}
	if s.MutationType != "" {
		fmt.Fprintf(&b, "  mutation: %s\n", s.MutationType)
	}
	if s.SubscriptionType != "" {
		fmt.Fprintf(&b, "  subscription: %s\n", s.SubscriptionType)
	}
	b.WriteString("}")
	return b.String()
}

type typeRenderer func(*schema.Schema, *schema.Type) (string, error)

// kindRenderers maps each type kind to its renderer. Built once; a kind
// missing from the table is an internal-consistency failure at render time.
var kindRenderers = map[schema.TypeKind]typeRenderer{
	schema.TypeKindScalar:      renderScalar,
	schema.TypeKindObject:      renderObject,
	schema.TypeKindInterface:   renderInterface,
	schema.TypeKindUnion:       renderUnion,
	schema.TypeKindEnum:        renderEnum,
	schema.TypeKindInputObject: renderInputObject,
}

func renderType(s *schema.Schema, t *schema.Type) (string, error) {
	render, ok := kindRenderers[t.Kind]
	if !ok {
		return "", fmt.Errorf("cannot render type %q: unhandled kind %q", t.Name, t.Kind)
	}
	return render(s, t)
}

func renderScalar(_ *schema.Schema, t *schema.Type) (string, error) {
	return "scalar " + t.Name, nil
}

func renderObject(s *schema.Schema, t *schema.Type) (string, error) {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(t.Name)
	if len(t.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(t.Interfaces, ", "))
	}
	fields, err := renderFields(s, t)
	if err != nil {
		return "", err
	}
	b.WriteString(" {\n")
	b.WriteString(fields)
	b.WriteString("\n}")
	return b.String(), nil
}

func renderInterface(s *schema.Schema, t *schema.Type) (string, error) {
	fields, err := renderFields(s, t)
	if err != nil {
		return "", err
	}
	return "interface " + t.Name + " {\n" + fields + "\n}", nil
}

func renderUnion(_ *schema.Schema, t *schema.Type) (string, error) {
	return "union " + t.Name + " = " + strings.Join(t.PossibleTypes, " | "), nil
}

func renderEnum(_ *schema.Schema, t *schema.Type) (string, error) {
	lines := make([]string, 0, len(t.EnumValues))
	for _, v := range t.EnumValues {
		lines = append(lines, "  "+v.Name+renderDeprecated(v.IsDeprecated, v.DeprecationReason))
	}
	return "enum " + t.Name + " {\n" + strings.Join(lines, "\n") + "\n}", nil
}

func renderInputObject(s *schema.Schema, t *schema.Type) (string, error) {
	lines := make([]string, 0, len(t.InputFields))
	for _, f := range t.InputFields {
		out, err := renderInputValue(s, f)
		if err != nil {
			return "", fmt.Errorf("input %s: %w", t.Name, err)
		}
		lines = append(lines, "  "+out)
	}
	return "input " + t.Name + " {\n" + strings.Join(lines, "\n") + "\n}", nil
}

func renderDirective(s *schema.Schema, d *schema.Directive) (string, error) {
	args, err := renderArgs(s, d.Arguments)
	if err != nil {
		return "", fmt.Errorf("directive @%s: %w", d.Name, err)
	}
	return "directive @" + d.Name + args + " on " + strings.Join(d.Locations, " | "), nil
}

// renderFields emits one two-space-indented line per field, in the type's own
// field order.
func renderFields(s *schema.Schema, t *schema.Type) (string, error) {
	lines := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		args, err := renderArgs(s, f.Arguments)
		if err != nil {
			return "", fmt.Errorf("field %s.%s: %w", t.Name, f.Name, err)
		}
		line := "  " + f.Name + args + ": " + renderTypeRef(f.Type) +
			renderDeprecated(f.IsDeprecated, f.DeprecationReason)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// renderArgs renders a parenthesized argument list, or nothing at all when
// the entity takes no arguments.
func renderArgs(s *schema.Schema, args []*schema.InputValue) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		out, err := renderInputValue(s, arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func renderInputValue(s *schema.Schema, v *schema.InputValue) (string, error) {
	out := v.Name + ": " + renderTypeRef(v.Type)
	if v.DefaultValue == nil {
		return out, nil
	}
	literal, err := RenderValue(s, v.DefaultValue, v.Type)
	if err != nil {
		return "", fmt.Errorf("default for %s: %w", v.Name, err)
	}
	return out + " = " + literal, nil
}

// renderDeprecated renders the @deprecated annotation. An empty reason and
// the well-known default reason both render without a reason argument.
func renderDeprecated(deprecated bool, reason string) string {
	if !deprecated {
		return ""
	}
	if reason == "" || reason == schema.DefaultDeprecationReason {
		return " @deprecated"
	}
	return " @deprecated(reason: " + strconv.Quote(reason) + ")"
}

func renderTypeRef(t *schema.TypeRef) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case schema.TypeRefKindNamed:
		return t.Named
	case schema.TypeRefKindList:
		return "[" + renderTypeRef(t.OfType) + "]"
	case schema.TypeRefKindNonNull:
		return renderTypeRef(t.OfType) + "!"
	default:
		return ""
	}
}

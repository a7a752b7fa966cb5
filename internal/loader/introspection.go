package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/graphprint/graphprint/internal/log"
	"github.com/graphprint/graphprint/internal/schema"
)

// Wire structs for the standard introspection query response. Both the bare
// {"__schema": ...} shape and the full {"data": {"__schema": ...}} envelope
// are accepted.
type introspectionEnvelope struct {
	Data   *introspectionData   `json:"data"`
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionData struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *typeName                `json:"queryType"`
	MutationType     *typeName                `json:"mutationType"`
	SubscriptionType *typeName                `json:"subscriptionType"`
	Types            []fullType               `json:"types"`
	Directives       []introspectionDirective `json:"directives"`
}

type typeName struct {
	Name string `json:"name"`
}

type fullType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Fields        []fieldValue `json:"fields"`
	InputFields   []inputValue `json:"inputFields"`
	Interfaces    []typeRef    `json:"interfaces"`
	EnumValues    []enumValue  `json:"enumValues"`
	PossibleTypes []typeRef    `json:"possibleTypes"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *typeRef `json:"ofType"`
}

type fieldValue struct {
	Name              string       `json:"name"`
	Args              []inputValue `json:"args"`
	Type              *typeRef     `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

type inputValue struct {
	Name         string   `json:"name"`
	Type         *typeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

type enumValue struct {
	Name              string  `json:"name"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type introspectionDirective struct {
	Name      string       `json:"name"`
	Locations []string     `json:"locations"`
	Args      []inputValue `json:"args"`
}

// LoadIntrospectionJSON builds a schema model from an introspection query
// response.
func LoadIntrospectionJSON(ctx context.Context, data []byte) (*schema.Schema, error) {
	var envelope introspectionEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode introspection response: %w", err)
	}
	raw := envelope.Schema
	if raw == nil && envelope.Data != nil {
		raw = envelope.Data.Schema
	}
	if raw == nil {
		return nil, fmt.Errorf("introspection response has no __schema")
	}

	s := schema.NewSchema()
	if raw.QueryType != nil {
		s.SetQueryType(raw.QueryType.Name)
	}
	if raw.MutationType != nil {
		s.SetMutationType(raw.MutationType.Name)
	}
	if raw.SubscriptionType != nil {
		s.SetSubscriptionType(raw.SubscriptionType.Name)
	}

	for i := range raw.Types {
		t, err := convertFullType(&raw.Types[i])
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	for i := range raw.Directives {
		d, err := convertIntrospectionDirective(&raw.Directives[i])
		if err != nil {
			return nil, err
		}
		s.AddDirective(d)
	}

	log.FromContext(ctx).V(1).Info("loaded introspection schema",
		"types", len(s.Types), "directives", len(s.Directives))
	return s, nil
}

// LoadIntrospectionFile reads an introspection JSON response from disk.
func LoadIntrospectionFile(ctx context.Context, path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read introspection file: %w", err)
	}
	return LoadIntrospectionJSON(ctx, data)
}

func convertFullType(ft *fullType) (*schema.Type, error) {
	t := schema.NewType(ft.Name, schema.TypeKind(ft.Kind))
	switch t.Kind {
	case schema.TypeKindScalar:
	case schema.TypeKindObject, schema.TypeKindInterface:
		for _, iface := range ft.Interfaces {
			if iface.Name != nil {
				t.AddInterface(*iface.Name)
			}
		}
		for i := range ft.Fields {
			f, err := convertIntrospectionField(ft.Name, &ft.Fields[i])
			if err != nil {
				return nil, err
			}
			t.AddField(f)
		}
	case schema.TypeKindUnion:
		for _, member := range ft.PossibleTypes {
			if member.Name != nil {
				t.AddPossibleType(*member.Name)
			}
		}
	case schema.TypeKindEnum:
		for _, v := range ft.EnumValues {
			ev := schema.NewEnumValue(v.Name)
			if v.IsDeprecated {
				ev.Deprecate(reasonOrDefault(v.DeprecationReason))
			}
			t.AddEnumValue(ev)
		}
	case schema.TypeKindInputObject:
		for i := range ft.InputFields {
			in, err := convertIntrospectionInput(&ft.InputFields[i])
			if err != nil {
				return nil, fmt.Errorf("input %s: %w", ft.Name, err)
			}
			t.AddInputField(in)
		}
	default:
		return nil, fmt.Errorf("type %s: unknown kind %q", ft.Name, ft.Kind)
	}
	return t, nil
}

func convertIntrospectionField(typeName string, fv *fieldValue) (*schema.Field, error) {
	f := schema.NewField(fv.Name, convertIntrospectionTypeRef(fv.Type))
	if fv.IsDeprecated {
		f.Deprecate(reasonOrDefault(fv.DeprecationReason))
	}
	for i := range fv.Args {
		in, err := convertIntrospectionInput(&fv.Args[i])
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typeName, fv.Name, err)
		}
		f.AddArgument(in)
	}
	return f, nil
}

func convertIntrospectionInput(iv *inputValue) (*schema.InputValue, error) {
	in := schema.NewInputValue(iv.Name, convertIntrospectionTypeRef(iv.Type))
	if iv.DefaultValue != nil {
		value, err := decodeLiteral(*iv.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", iv.Name, err)
		}
		in.SetDefault(value)
	}
	return in, nil
}

func convertIntrospectionDirective(dv *introspectionDirective) (*schema.Directive, error) {
	d := schema.NewDirective(dv.Name, dv.Locations...)
	for i := range dv.Args {
		in, err := convertIntrospectionInput(&dv.Args[i])
		if err != nil {
			return nil, fmt.Errorf("directive @%s: %w", dv.Name, err)
		}
		d.AddArgument(in)
	}
	return d, nil
}

func convertIntrospectionTypeRef(ref *typeRef) *schema.TypeRef {
	if ref == nil {
		return nil
	}
	switch ref.Kind {
	case "NON_NULL":
		return schema.NonNullType(convertIntrospectionTypeRef(ref.OfType))
	case "LIST":
		return schema.ListType(convertIntrospectionTypeRef(ref.OfType))
	default:
		if ref.Name == nil {
			return nil
		}
		return schema.NamedType(*ref.Name)
	}
}

// decodeLiteral turns an introspection defaultValue string, which is already
// in SDL literal form, back into a raw value. The literal's own shape decides:
// quoted text is a string, bare words are booleans, null or enum symbols,
// numbers parse by format, and composite literals pass through verbatim.
func decodeLiteral(raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return nil, fmt.Errorf("empty default literal")
	case trimmed == "null":
		return nil, nil
	case trimmed == "true":
		return true, nil
	case trimmed == "false":
		return false, nil
	case strings.HasPrefix(trimmed, `"`):
		str, err := strconv.Unquote(trimmed)
		if err != nil {
			return nil, fmt.Errorf("malformed string literal %s", trimmed)
		}
		return str, nil
	case strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{"):
		return schema.Literal(trimmed), nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f, nil
	}
	// Anything left is an enum symbol.
	return trimmed, nil
}

func reasonOrDefault(reason *string) string {
	if reason == nil {
		return schema.DefaultDeprecationReason
	}
	return *reason
}

// Package loader constructs the schema object model from external
// representations: SDL documents and introspection query responses.
package loader

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/graphprint/graphprint/internal/language"
	log "github.com/graphprint/graphprint/internal/log"
	"github.com/graphprint/graphprint/internal/schema"
)

// LoadSDL parses and validates a single SDL document into a schema model.
func LoadSDL(ctx context.Context, name, input string) (*schema.Schema, error) {
	return LoadSDLSources(ctx, language.NewSource(name, input))
}

// LoadSDLFiles reads and merges one or more .graphql files into a schema model.
func LoadSDLFiles(ctx context.Context, paths ...string) (*schema.Schema, error) {
	sources := make([]*language.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema file: %w", err)
		}
		sources = append(sources, language.NewSource(path, string(data)))
	}
	return LoadSDLSources(ctx, sources...)
}

// LoadSDLSources merges the given SDL sources into a validated schema model.
func LoadSDLSources(ctx context.Context, sources ...*language.Source) (*schema.Schema, error) {
	doc, err := language.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	s, err := convertSchema(doc)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).V(1).Info("loaded SDL schema",
		"sources", len(sources), "types", len(s.Types), "directives", len(s.Directives))
	return s, nil
}

// convertSchema maps the parsed document onto the model. Prelude definitions
// are skipped; the model's own built-in scalar and spec directive definitions
// take their place so every loaded schema shares one canonical registry.
func convertSchema(doc *language.Schema) (*schema.Schema, error) {
	s := schema.NewSchema()
	if doc.Query != nil {
		s.SetQueryType(doc.Query.Name)
	}
	if doc.Mutation != nil {
		s.SetMutationType(doc.Mutation.Name)
	}
	if doc.Subscription != nil {
		s.SetSubscriptionType(doc.Subscription.Name)
	}

	for _, t := range schema.BuiltinScalars() {
		s.AddType(t)
	}
	for _, d := range schema.SpecDirectives() {
		s.AddDirective(d)
	}

	for _, def := range doc.Types {
		if def.BuiltIn {
			continue
		}
		t, err := convertDefinition(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	for _, def := range doc.Directives {
		if isBuiltInDirective(def) || schema.IsSpecDirectiveName(def.Name) {
			continue
		}
		d, err := convertDirective(def)
		if err != nil {
			return nil, err
		}
		s.AddDirective(d)
	}
	return s, nil
}

func convertDefinition(def *language.Definition) (*schema.Type, error) {
	switch def.Kind {
	case language.Scalar:
		return schema.NewType(def.Name, schema.TypeKindScalar), nil
	case language.Object:
		return convertCompositeType(def, schema.TypeKindObject)
	case language.Interface:
		return convertCompositeType(def, schema.TypeKindInterface)
	case language.Union:
		t := schema.NewType(def.Name, schema.TypeKindUnion)
		for _, member := range def.Types {
			t.AddPossibleType(member)
		}
		return t, nil
	case language.Enum:
		t := schema.NewType(def.Name, schema.TypeKindEnum)
		for _, v := range def.EnumValues {
			ev := schema.NewEnumValue(v.Name)
			if deprecated, reason := deprecation(v.Directives); deprecated {
				ev.Deprecate(reason)
			}
			t.AddEnumValue(ev)
		}
		return t, nil
	case language.InputObject:
		t := schema.NewType(def.Name, schema.TypeKindInputObject)
		for _, f := range def.Fields {
			in := schema.NewInputValue(f.Name, convertTypeRef(f.Type))
			if f.DefaultValue != nil {
				value, err := convertValue(f.DefaultValue)
				if err != nil {
					return nil, fmt.Errorf("input %s.%s: %w", def.Name, f.Name, err)
				}
				in.SetDefault(value)
			}
			t.AddInputField(in)
		}
		return t, nil
	}
	return nil, fmt.Errorf("type %s: unsupported definition kind %q", def.Name, def.Kind)
}

func convertCompositeType(def *language.Definition, kind schema.TypeKind) (*schema.Type, error) {
	t := schema.NewType(def.Name, kind)
	if kind == schema.TypeKindObject {
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
	}
	for _, f := range def.Fields {
		field, err := convertField(def.Name, f)
		if err != nil {
			return nil, err
		}
		t.AddField(field)
	}
	return t, nil
}

func convertField(typeName string, def *language.FieldDefinition) (*schema.Field, error) {
	f := schema.NewField(def.Name, convertTypeRef(def.Type))
	if deprecated, reason := deprecation(def.Directives); deprecated {
		f.Deprecate(reason)
	}
	for _, arg := range def.Arguments {
		in := schema.NewInputValue(arg.Name, convertTypeRef(arg.Type))
		if arg.DefaultValue != nil {
			value, err := convertValue(arg.DefaultValue)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s(%s:): %w", typeName, def.Name, arg.Name, err)
			}
			in.SetDefault(value)
		}
		f.AddArgument(in)
	}
	return f, nil
}

func convertDirective(def *language.DirectiveDefinition) (*schema.Directive, error) {
	locations := make([]string, 0, len(def.Locations))
	for _, loc := range def.Locations {
		locations = append(locations, string(loc))
	}
	d := schema.NewDirective(def.Name, locations...)
	for _, arg := range def.Arguments {
		in := schema.NewInputValue(arg.Name, convertTypeRef(arg.Type))
		if arg.DefaultValue != nil {
			value, err := convertValue(arg.DefaultValue)
			if err != nil {
				return nil, fmt.Errorf("directive @%s(%s:): %w", def.Name, arg.Name, err)
			}
			in.SetDefault(value)
		}
		d.AddArgument(in)
	}
	return d, nil
}

func convertTypeRef(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	var ref *schema.TypeRef
	if t.NamedType != "" {
		ref = schema.NamedType(t.NamedType)
	} else {
		ref = schema.ListType(convertTypeRef(t.Elem))
	}
	if t.NonNull {
		ref = schema.NonNullType(ref)
	}
	return ref
}

// convertValue maps a parsed literal onto the raw value shapes the value
// renderer understands. Enum symbols become plain strings; the declared type
// disambiguates them from string literals at render time.
func convertValue(v *language.Value) (any, error) {
	switch v.Kind {
	case language.IntValue:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed int literal %q", v.Raw)
		}
		return n, nil
	case language.FloatValue:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed float literal %q", v.Raw)
		}
		return f, nil
	case language.StringValue, language.BlockValue:
		return v.Raw, nil
	case language.BooleanValue:
		return v.Raw == "true", nil
	case language.NullValue:
		return nil, nil
	case language.EnumValue:
		return v.Raw, nil
	case language.ListValue:
		items := make([]any, 0, len(v.Children))
		for _, child := range v.Children {
			item, err := convertValue(child.Value)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	case language.ObjectValue:
		entries := make(schema.ValueMap, 0, len(v.Children))
		for _, child := range v.Children {
			value, err := convertValue(child.Value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, schema.ValueField{Name: child.Name, Value: value})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("unsupported literal kind for %q", v.Raw)
}

// isBuiltInDirective reports whether the directive definition came from the
// parser prelude. DirectiveDefinition has no BuiltIn marker of its own; the
// source it was parsed from carries it.
func isBuiltInDirective(def *language.DirectiveDefinition) bool {
	return def.Position != nil && def.Position.Src != nil && def.Position.Src.BuiltIn
}

// deprecation reads the @deprecated directive off a definition. A bare
// @deprecated carries the spec's default reason.
func deprecation(directives language.DirectiveList) (bool, string) {
	d := directives.ForName("deprecated")
	if d == nil {
		return false, ""
	}
	if arg := d.Arguments.ForName("reason"); arg != nil {
		return true, arg.Value.Raw
	}
	return true, schema.DefaultDeprecationReason
}

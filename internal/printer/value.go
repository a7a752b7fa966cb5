package printer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/graphprint/graphprint/internal/schema"
)

// RenderValue converts a raw literal plus its declared type into SDL literal
// syntax. Dispatch is type-directed: wrappers are unwrapped first, then the
// named type's kind decides the terminal form. The function is pure and
// reentrant; it recurses through arbitrarily nested List/NonNull/InputObject
// shapes without shared state.
func RenderValue(s *schema.Schema, value any, t *schema.TypeRef) (string, error) {
	if lit, ok := value.(schema.Literal); ok {
		return string(lit), nil
	}
	if t == nil {
		return "", fmt.Errorf("cannot render value %v: missing type", value)
	}
	if value == nil {
		if t.IsNonNull() {
			return "", fmt.Errorf("null literal for non-null type %s", renderTypeRef(t))
		}
		return "null", nil
	}

	switch t.Kind {
	case schema.TypeRefKindNonNull:
		// Transparent to the literal; only the signature shows it.
		return RenderValue(s, value, t.OfType)
	case schema.TypeRefKindList:
		items, ok := value.([]any)
		if !ok {
			return "", fmt.Errorf("cannot render %T as list literal for type %s", value, renderTypeRef(t))
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			out, err := RenderValue(s, item, t.OfType)
			if err != nil {
				return "", err
			}
			parts = append(parts, out)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case schema.TypeRefKindNamed:
		return renderNamedValue(s, value, t.Named)
	}
	return "", fmt.Errorf("cannot render value %v: unhandled type kind %q", value, t.Kind)
}

func renderNamedValue(s *schema.Schema, value any, name string) (string, error) {
	def := s.Types[name]
	if def == nil {
		return "", fmt.Errorf("cannot render value %v: unknown type %q", value, name)
	}
	switch def.Kind {
	case schema.TypeKindScalar:
		return renderScalarValue(value, def.Name)
	case schema.TypeKindEnum:
		return renderEnumValue(value, def)
	case schema.TypeKindInputObject:
		return renderInputObjectValue(s, value, def)
	}
	return "", fmt.Errorf("cannot render value %v: type %q of kind %q bears no literal", value, name, def.Kind)
}

func renderScalarValue(value any, name string) (string, error) {
	switch name {
	case "Int":
		return renderIntValue(value)
	case "Float":
		return renderFloatValue(value)
	case "Boolean":
		b, ok := value.(bool)
		if !ok {
			return "", fmt.Errorf("cannot render %T as Boolean literal", value)
		}
		return strconv.FormatBool(b), nil
	default:
		// String, ID and custom scalars render as quoted string literals.
		str, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("cannot render %T as %s literal", value, name)
		}
		return strconv.Quote(str), nil
	}
}

func renderIntValue(value any) (string, error) {
	switch n := value.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		// JSON-decoded numbers arrive as float64.
		if n != float64(int64(n)) {
			return "", fmt.Errorf("cannot render %v as Int literal", n)
		}
		return strconv.FormatInt(int64(n), 10), nil
	}
	return "", fmt.Errorf("cannot render %T as Int literal", value)
}

func renderFloatValue(value any) (string, error) {
	switch n := value.(type) {
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64), nil
	case int:
		return strconv.FormatFloat(float64(n), 'g', -1, 64), nil
	case int64:
		return strconv.FormatFloat(float64(n), 'g', -1, 64), nil
	}
	return "", fmt.Errorf("cannot render %T as Float literal", value)
}

// renderEnumValue coerces the raw value through the enum's value set and
// renders the symbolic, unquoted name.
func renderEnumValue(value any, def *schema.Type) (string, error) {
	sym, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("cannot render %T as %s enum literal", value, def.Name)
	}
	if !def.HasEnumValue(sym) {
		return "", fmt.Errorf("%q is not a value of enum %s", sym, def.Name)
	}
	return sym, nil
}

// renderInputObjectValue renders {field: value, ...}. Each entry's literal is
// rendered against the matching declared input field's type; a missing
// declaration is a hard failure.
func renderInputObjectValue(s *schema.Schema, value any, def *schema.Type) (string, error) {
	entries, err := valueFields(value, def.Name)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		declared := def.InputField(entry.Name)
		if declared == nil {
			return "", fmt.Errorf("input %s has no field %q", def.Name, entry.Name)
		}
		out, err := RenderValue(s, entry.Value, declared.Type)
		if err != nil {
			return "", err
		}
		parts = append(parts, entry.Name+": "+out)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

// valueFields normalizes an input-object raw value to an ordered entry list.
// ValueMap keeps its supplied order; a plain map gets sorted keys so output
// stays deterministic.
func valueFields(value any, typeName string) (schema.ValueMap, error) {
	switch v := value.(type) {
	case schema.ValueMap:
		return v, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make(schema.ValueMap, 0, len(v))
		for _, k := range keys {
			entries = append(entries, schema.ValueField{Name: k, Value: v[k]})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("cannot render %T as input object literal for %s", value, typeName)
}

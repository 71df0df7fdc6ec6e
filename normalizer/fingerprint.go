package normalizer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oasnorm/oasnorm/internal/schemautil"
	"github.com/oasnorm/oasnorm/parser"
)

const circularSentinel = "[Circular]"

// fingerprint computes a deterministic structural hash of schema:
// object keys sorted lexicographically, arrays kept in order except the
// string lists of "type" and "required", which are sorted, root-only
// omission of "description"/"summary" (nested doc strings distinguish
// otherwise-identical nested schemas and are preserved), cycles rendered as
// the literal sentinel "[Circular]".
//
// Recurses against typed *parser.Schema fields directly, using a
// pointer-identity visited-set for cycle detection instead of
// reflect.ValueOf(...).Pointer().
func fingerprint(schema *parser.Schema) string {
	var b strings.Builder
	fingerprintSchema(&b, schema, true, make(map[*parser.Schema]bool))
	return b.String()
}

func fingerprintSchema(b *strings.Builder, s *parser.Schema, root bool, visited map[*parser.Schema]bool) {
	if s == nil {
		b.WriteString("null")
		return
	}
	if visited[s] {
		b.WriteString(quote(circularSentinel))
		return
	}
	visited[s] = true
	defer delete(visited, s)

	type kv struct {
		key string
		val func(*strings.Builder)
	}
	var fields []kv

	add := func(key string, present bool, write func(*strings.Builder)) {
		if present {
			fields = append(fields, kv{key, write})
		}
	}

	add("$ref", s.Ref != "", func(b *strings.Builder) { b.WriteString(quote(s.Ref)) })
	if !root {
		add("description", s.Description != "", func(b *strings.Builder) { b.WriteString(quote(s.Description)) })
		add("summary", s.Summary != "", func(b *strings.Builder) { b.WriteString(quote(s.Summary)) })
	}
	add("title", s.Title != "", func(b *strings.Builder) { b.WriteString(quote(s.Title)) })
	types := schemautil.GetSchemaTypes(s)
	add("type", len(types) > 0, func(b *strings.Builder) { fingerprintStrings(b, types) })
	add("format", s.Format != "", func(b *strings.Builder) { b.WriteString(quote(s.Format)) })
	add("pattern", s.Pattern != "", func(b *strings.Builder) { b.WriteString(quote(s.Pattern)) })
	add("enum", len(s.Enum) > 0, func(b *strings.Builder) { fingerprintAny(b, s.Enum) })
	add("const", s.Const != nil, func(b *strings.Builder) { fingerprintAny(b, s.Const) })
	add("default", s.Default != nil, func(b *strings.Builder) { fingerprintAny(b, s.Default) })
	add("required", len(s.Required) > 0, func(b *strings.Builder) { fingerprintStrings(b, s.Required) })
	add("nullable", s.Nullable, func(b *strings.Builder) { b.WriteString("true") })
	add("readOnly", s.ReadOnly, func(b *strings.Builder) { b.WriteString("true") })
	add("writeOnly", s.WriteOnly, func(b *strings.Builder) { b.WriteString("true") })
	add("deprecated", s.Deprecated, func(b *strings.Builder) { b.WriteString("true") })
	add("uniqueItems", s.UniqueItems, func(b *strings.Builder) { b.WriteString("true") })
	add("multipleOf", s.MultipleOf != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%v", *s.MultipleOf) })
	add("maximum", s.Maximum != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%v", *s.Maximum) })
	add("minimum", s.Minimum != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%v", *s.Minimum) })
	add("maxLength", s.MaxLength != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MaxLength) })
	add("minLength", s.MinLength != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MinLength) })
	add("maxItems", s.MaxItems != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MaxItems) })
	add("minItems", s.MinItems != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MinItems) })
	add("maxProperties", s.MaxProperties != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MaxProperties) })
	add("minProperties", s.MinProperties != nil, func(b *strings.Builder) { fmt.Fprintf(b, "%d", *s.MinProperties) })

	add("properties", len(s.Properties) > 0, func(b *strings.Builder) { fingerprintSchemaMap(b, s.Properties, visited) })
	add("patternProperties", len(s.PatternProperties) > 0, func(b *strings.Builder) { fingerprintSchemaMap(b, s.PatternProperties, visited) })
	add("dependentSchemas", len(s.DependentSchemas) > 0, func(b *strings.Builder) { fingerprintSchemaMap(b, s.DependentSchemas, visited) })
	add("$defs", len(s.Defs) > 0, func(b *strings.Builder) { fingerprintSchemaMap(b, s.Defs, visited) })
	add("additionalProperties", s.AdditionalProperties != nil, func(b *strings.Builder) { fingerprintSchemaOrBool(b, s.AdditionalProperties, visited) })
	add("additionalItems", s.AdditionalItems != nil, func(b *strings.Builder) { fingerprintSchemaOrBool(b, s.AdditionalItems, visited) })
	add("items", s.Items != nil, func(b *strings.Builder) { fingerprintSchemaOrBool(b, s.Items, visited) })
	add("prefixItems", len(s.PrefixItems) > 0, func(b *strings.Builder) { fingerprintSchemaSlice(b, s.PrefixItems, visited) })
	add("contains", s.Contains != nil, func(b *strings.Builder) { fingerprintSchema(b, s.Contains, false, visited) })
	add("propertyNames", s.PropertyNames != nil, func(b *strings.Builder) { fingerprintSchema(b, s.PropertyNames, false, visited) })
	add("not", s.Not != nil, func(b *strings.Builder) { fingerprintSchema(b, s.Not, false, visited) })
	add("if", s.If != nil, func(b *strings.Builder) { fingerprintSchema(b, s.If, false, visited) })
	add("then", s.Then != nil, func(b *strings.Builder) { fingerprintSchema(b, s.Then, false, visited) })
	add("else", s.Else != nil, func(b *strings.Builder) { fingerprintSchema(b, s.Else, false, visited) })
	add("allOf", len(s.AllOf) > 0, func(b *strings.Builder) { fingerprintSchemaSlice(b, s.AllOf, visited) })
	add("anyOf", len(s.AnyOf) > 0, func(b *strings.Builder) { fingerprintSchemaSlice(b, s.AnyOf, visited) })
	add("oneOf", len(s.OneOf) > 0, func(b *strings.Builder) { fingerprintSchemaSlice(b, s.OneOf, visited) })

	add("discriminator", s.Discriminator != nil, func(b *strings.Builder) {
		b.WriteByte('{')
		fmt.Fprintf(b, "%q:%s", "propertyName", quote(s.Discriminator.PropertyName))
		if len(s.Discriminator.Mapping) > 0 {
			b.WriteByte(',')
			fingerprintStringMap(b, s.Discriminator.Mapping)
		}
		b.WriteByte('}')
	})

	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(f.key))
		b.WriteByte(':')
		f.val(b)
	}
	b.WriteByte('}')
}

func fingerprintSchemaOrBool(b *strings.Builder, v any, visited map[*parser.Schema]bool) {
	switch t := v.(type) {
	case *parser.Schema:
		fingerprintSchema(b, t, false, visited)
	case bool:
		b.WriteString(strconv.FormatBool(t))
	default:
		fingerprintAny(b, v)
	}
}

func fingerprintSchemaMap(b *strings.Builder, m map[string]*parser.Schema, visited map[*parser.Schema]bool) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(k))
		b.WriteByte(':')
		fingerprintSchema(b, m[k], false, visited)
	}
	b.WriteByte('}')
}

func fingerprintSchemaSlice(b *strings.Builder, s []*parser.Schema, visited map[*parser.Schema]bool) {
	b.WriteByte('[')
	for i, child := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		fingerprintSchema(b, child, false, visited)
	}
	b.WriteByte(']')
}

func fingerprintStrings(b *strings.Builder, s []string) {
	sorted := append([]string(nil), s...)
	sort.Strings(sorted)
	b.WriteByte('[')
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(v))
	}
	b.WriteByte(']')
}

func fingerprintStringMap(b *strings.Builder, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(k))
		b.WriteByte(':')
		b.WriteString(quote(m[k]))
	}
}

// fingerprintAny handles the handful of loosely-typed schema fields
// (enum, const, default, and non-schema items/additional* values) whose Go
// type varies with the decoded YAML
// shape. Keys are sorted when the value is a map so fingerprints stay
// order-independent.
func fingerprintAny(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case []string:
		b.WriteByte('[')
		for i, s := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(s))
		}
		b.WriteByte(']')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			fingerprintAny(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(k))
			b.WriteByte(':')
			fingerprintAny(b, t[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%v", t)
	}
}

func quote(s string) string {
	return strconv.Quote(s)
}

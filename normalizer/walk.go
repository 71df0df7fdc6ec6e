package normalizer

import (
	"strconv"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// node is one schema-context visit: the schema itself, the JSON-Pointer it
// currently lives at, and a setter closure that replaces it in whatever
// slot it came from (a struct field, a map value, or a slice element).
// Passes rewrite schemas by calling set, never by mutating the parent
// container directly, so the same walk works uniformly over every kind of
// schema-bearing slot in the typed document.
type node struct {
	schema  *parser.Schema
	pointer string
	set     func(*parser.Schema)
}

// visitFunc is invoked before descending into a node's children. Returning
// false skips descent into that node's children (the node itself was still
// visited); this is used by passes that just replaced the node with a ref
// and don't want to recurse into the schema they discarded.
type visitFunc func(n node) (descend bool)

// walkDocument finds every schema-context entry point in doc and recurses
// into each one, honoring cycle safety via an entered-set so a repeated
// identity is visited but not re-descended.
func walkDocument(doc *parser.OAS3Document, visit visitFunc) {
	entered := make(map[*parser.Schema]bool)

	if doc.Components != nil {
		walkSchemaMap(doc.Components.Schemas, "#/components/schemas", entered, visit)
		for name, p := range doc.Components.Parameters {
			walkParameter(p, "#/components/parameters/"+jsonpointer.Encode(name), entered, visit)
		}
		for name, h := range doc.Components.Headers {
			walkHeader(h, "#/components/headers/"+jsonpointer.Encode(name), entered, visit)
		}
		for name, rb := range doc.Components.RequestBodies {
			walkRequestBody(rb, "#/components/requestBodies/"+jsonpointer.Encode(name), entered, visit)
		}
		for name, r := range doc.Components.Responses {
			walkResponse(r, "#/components/responses/"+jsonpointer.Encode(name), entered, visit)
		}
		for name, pi := range doc.Components.PathItems {
			walkPathItem(pi, "#/components/pathItems/"+jsonpointer.Encode(name), entered, visit)
		}
	}

	for path, pi := range doc.Paths {
		walkPathItem(pi, "#/paths/"+jsonpointer.Encode(path), entered, visit)
	}
	for path, pi := range doc.Webhooks {
		walkPathItem(pi, "#/webhooks/"+jsonpointer.Encode(path), entered, visit)
	}
}

func walkSchemaMap(m map[string]*parser.Schema, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	for name, s := range m {
		if s == nil {
			continue
		}
		key := name
		walkSchema(s, base+"/"+jsonpointer.Encode(name), entered, visit, func(replacement *parser.Schema) {
			m[key] = replacement
		})
	}
}

func walkPathItem(pi *parser.PathItem, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if pi == nil {
		return
	}
	ops := []struct {
		key string
		op  **parser.Operation
	}{
		{"get", &pi.Get}, {"put", &pi.Put}, {"post", &pi.Post}, {"delete", &pi.Delete},
		{"options", &pi.Options}, {"head", &pi.Head}, {"patch", &pi.Patch},
		{"trace", &pi.Trace}, {"query", &pi.Query},
	}
	for _, o := range ops {
		if *o.op != nil {
			walkOperation(*o.op, base+"/"+o.key, entered, visit)
		}
	}
	walkParameterList(pi.Parameters, base+"/parameters", entered, visit)
}

func walkOperation(op *parser.Operation, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	walkParameterList(op.Parameters, base+"/parameters", entered, visit)
	if op.RequestBody != nil {
		walkRequestBody(op.RequestBody, base+"/requestBody", entered, visit)
	}
	if op.Responses != nil {
		if op.Responses.Default != nil {
			walkResponse(op.Responses.Default, base+"/responses/default", entered, visit)
		}
		for code, r := range op.Responses.Codes {
			walkResponse(r, base+"/responses/"+jsonpointer.Encode(code), entered, visit)
		}
	}
	for name, cb := range op.Callbacks {
		if cb == nil {
			continue
		}
		cbBase := base + "/callbacks/" + jsonpointer.Encode(name)
		for expr, pi := range *cb {
			walkPathItem(pi, cbBase+"/"+jsonpointer.Encode(expr), entered, visit)
		}
	}
}

func walkParameterList(params []*parser.Parameter, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	for i, p := range params {
		walkParameter(p, base+"/"+strconv.Itoa(i), entered, visit)
	}
}

func walkParameter(p *parser.Parameter, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if p == nil || p.Schema == nil {
		return
	}
	walkSchema(p.Schema, base+"/schema", entered, visit, func(r *parser.Schema) { p.Schema = r })
}

func walkHeader(h *parser.Header, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if h == nil || h.Schema == nil {
		return
	}
	walkSchema(h.Schema, base+"/schema", entered, visit, func(r *parser.Schema) { h.Schema = r })
}

func walkRequestBody(rb *parser.RequestBody, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if rb == nil {
		return
	}
	for mt, media := range rb.Content {
		walkMediaType(media, base+"/content/"+jsonpointer.Encode(mt), entered, visit)
	}
}

func walkResponse(r *parser.Response, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if r == nil {
		return
	}
	for mt, media := range r.Content {
		walkMediaType(media, base+"/content/"+jsonpointer.Encode(mt), entered, visit)
	}
	for name, h := range r.Headers {
		walkHeader(h, base+"/headers/"+jsonpointer.Encode(name), entered, visit)
	}
}

func walkMediaType(m *parser.MediaType, base string, entered map[*parser.Schema]bool, visit visitFunc) {
	if m == nil || m.Schema == nil {
		return
	}
	walkSchema(m.Schema, base+"/schema", entered, visit, func(s *parser.Schema) { m.Schema = s })
}

// walkSchema recurses through a Schema's own schema-context fields. set
// replaces this schema in its parent slot; every recursive call builds a
// fresh setter closure scoped to the child's own slot.
//
//nolint:cyclop // one traversal over every schema-context keyword
func walkSchema(s *parser.Schema, pointer string, entered map[*parser.Schema]bool, visit visitFunc, set func(*parser.Schema)) {
	if s == nil {
		return
	}
	descend := visit(node{schema: s, pointer: pointer, set: set})
	if !descend || entered[s] {
		return
	}
	entered[s] = true

	for name, child := range s.Properties {
		key := name
		walkSchema(child, pointer+"/properties/"+jsonpointer.Encode(name), entered, visit, func(r *parser.Schema) { s.Properties[key] = r })
	}
	for name, child := range s.PatternProperties {
		key := name
		walkSchema(child, pointer+"/patternProperties/"+jsonpointer.Encode(name), entered, visit, func(r *parser.Schema) { s.PatternProperties[key] = r })
	}
	for name, child := range s.DependentSchemas {
		key := name
		walkSchema(child, pointer+"/dependentSchemas/"+jsonpointer.Encode(name), entered, visit, func(r *parser.Schema) { s.DependentSchemas[key] = r })
	}
	for name, child := range s.Defs {
		key := name
		walkSchema(child, pointer+"/$defs/"+jsonpointer.Encode(name), entered, visit, func(r *parser.Schema) { s.Defs[key] = r })
	}
	for i, child := range s.AllOf {
		idx := i
		walkSchema(child, pointer+"/allOf/"+strconv.Itoa(i), entered, visit, func(r *parser.Schema) { s.AllOf[idx] = r })
	}
	for i, child := range s.AnyOf {
		idx := i
		walkSchema(child, pointer+"/anyOf/"+strconv.Itoa(i), entered, visit, func(r *parser.Schema) { s.AnyOf[idx] = r })
	}
	for i, child := range s.OneOf {
		idx := i
		walkSchema(child, pointer+"/oneOf/"+strconv.Itoa(i), entered, visit, func(r *parser.Schema) { s.OneOf[idx] = r })
	}
	for i, child := range s.PrefixItems {
		idx := i
		walkSchema(child, pointer+"/prefixItems/"+strconv.Itoa(i), entered, visit, func(r *parser.Schema) { s.PrefixItems[idx] = r })
	}
	if s.Not != nil {
		walkSchema(s.Not, pointer+"/not", entered, visit, func(r *parser.Schema) { s.Not = r })
	}
	if s.If != nil {
		walkSchema(s.If, pointer+"/if", entered, visit, func(r *parser.Schema) { s.If = r })
	}
	if s.Then != nil {
		walkSchema(s.Then, pointer+"/then", entered, visit, func(r *parser.Schema) { s.Then = r })
	}
	if s.Else != nil {
		walkSchema(s.Else, pointer+"/else", entered, visit, func(r *parser.Schema) { s.Else = r })
	}
	if s.Contains != nil {
		walkSchema(s.Contains, pointer+"/contains", entered, visit, func(r *parser.Schema) { s.Contains = r })
	}
	if s.PropertyNames != nil {
		walkSchema(s.PropertyNames, pointer+"/propertyNames", entered, visit, func(r *parser.Schema) { s.PropertyNames = r })
	}
	if items, ok := s.Items.(*parser.Schema); ok && items != nil {
		walkSchema(items, pointer+"/items", entered, visit, func(r *parser.Schema) { s.Items = r })
	}
	if ap, ok := s.AdditionalProperties.(*parser.Schema); ok && ap != nil {
		walkSchema(ap, pointer+"/additionalProperties", entered, visit, func(r *parser.Schema) { s.AdditionalProperties = r })
	}
	if ai, ok := s.AdditionalItems.(*parser.Schema); ok && ai != nil {
		walkSchema(ai, pointer+"/additionalItems", entered, visit, func(r *parser.Schema) { s.AdditionalItems = r })
	}
}

package normalizer

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// registry is the components.schemas namespace plus the inverse
// identity→pointer map. names/pointerByObject track invariants
// that hold for the lifetime of one Normalize call; insertOrder records the
// order components were registered in. Nothing reads insertOrder, and
// doc.Components.Schemas stays a plain Go map, so it does not affect the
// order in which schemas serialize.
type registry struct {
	doc             *parser.OAS3Document
	names           *nameSet
	pointerByObject map[*parser.Schema]string
	insertOrder     *orderedmap.OrderedMap[string, *parser.Schema]
}

// newRegistry initializes components.schemas if absent, seeds the name set
// with its existing keys, and populates pointerByObject for every schema
// already resident there.
func newRegistry(doc *parser.OAS3Document) *registry {
	if doc.Components == nil {
		doc.Components = &parser.Components{}
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = make(map[string]*parser.Schema)
	}

	r := &registry{
		doc:             doc,
		names:           newNameSet(),
		pointerByObject: make(map[*parser.Schema]string),
		insertOrder:     orderedmap.New[string, *parser.Schema](),
	}
	for name, schema := range doc.Components.Schemas {
		r.names.seed(name)
		r.pointerByObject[schema] = jsonpointer.SchemaRef(name)
		r.insertOrder.Set(name, schema)
	}
	return r
}

// Register is idempotent per object identity: if obj is already keyed,
// return its existing pointer; otherwise insert obj under a unique name
// derived from preferredName and return its new component pointer.
func (r *registry) Register(obj *parser.Schema, preferredName string) string {
	if ptr, ok := r.pointerByObject[obj]; ok {
		return ptr
	}
	name := r.names.Unique(preferredName)
	r.doc.Components.Schemas[name] = obj
	r.insertOrder.Set(name, obj)
	ptr := jsonpointer.SchemaRef(name)
	r.pointerByObject[obj] = ptr
	return ptr
}

// PointerFor returns the component pointer already assigned to obj, if any.
func (r *registry) PointerFor(obj *parser.Schema) (string, bool) {
	ptr, ok := r.pointerByObject[obj]
	return ptr, ok
}

// ReplaceHoistedInlinesWithRefs walks in schema context; for any schema
// whose identity is already registered but whose current location differs
// from its canonical pointer and isn't itself the component root, it
// splices in a $ref-only schema in its place.
func (r *registry) ReplaceHoistedInlinesWithRefs(root *parser.OAS3Document) {
	walkDocument(root, func(n node) bool {
		canonical, ok := r.pointerByObject[n.schema]
		if !ok {
			return true
		}
		if _, isRoot := jsonpointer.IsComponentSchemaRoot(n.pointer); isRoot {
			return true
		}
		if refPointer(n.pointer) == canonical {
			return true
		}
		n.set(refOnlySchema(canonical, n.schema))
		return false
	})
}

// refPointer is a defensive normalization no-op today (component pointers
// and walk pointers already share the same "#/..." shape); kept distinct
// from a raw string compare so future pointer-shape changes have one place
// to adapt.
func refPointer(p string) string { return p }

// refOnlySchema builds a Schema carrying only Ref plus the original's
// Summary/Description, so sibling doc strings survive the inline-to-ref
// rewrite.
func refOnlySchema(ref string, original *parser.Schema) *parser.Schema {
	replacement := &parser.Schema{Ref: ref}
	if original != nil {
		replacement.Summary = original.Summary
		replacement.Description = original.Description
	}
	return replacement
}

// isPureRefShape reports whether s is already exactly the ref shape the
// inline-dedupe pass looks for: Ref plus optional Summary/Description and
// nothing else. Used as the fixpoint termination guard for that pass.
func isPureRefShape(s *parser.Schema) bool {
	if s == nil || s.Ref == "" {
		return false
	}
	candidate := &parser.Schema{Ref: s.Ref, Summary: s.Summary, Description: s.Description}
	return s.Equals(candidate)
}

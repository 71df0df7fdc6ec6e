package normalizer

import (
	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// collapseInlineExternals repeatedly walks the document
// looking for inline schemas that structurally match a known external
// candidate or an already-hoisted component, hoisting them to a $ref in
// place. Iterates to a fixpoint because registering one candidate can make
// its siblings resolvable against a freshly rebuilt fingerprint index.
// maxIterations bounds the loop; zero means unbounded.
func collapseInlineExternals(doc *parser.OAS3Document, res *resolver, reg *registry, maxIterations int) {
	for iteration := 0; maxIterations == 0 || iteration < maxIterations; iteration++ {
		fpIndex := reg.externalComponentFingerprintIndex(res)
		changed := false

		walkDocument(doc, func(n node) bool {
			if _, isRoot := jsonpointer.IsComponentSchemaRoot(n.pointer); isRoot {
				return true
			}
			if isPureRefShape(n.schema) {
				return true
			}
			if !isLikelySchema(n.schema) {
				return true
			}

			name, canonical, ok := res.ResolveExternalSchemaCandidate(n.schema)
			if !ok {
				name, ok = res.ResolveExternalComponentCandidate(n.schema, fpIndex)
				if !ok {
					return true
				}
				canonical = n.schema
			}

			ptr := reg.Register(canonical, name)
			n.set(refOnlySchema(ptr, n.schema))
			changed = true
			return false
		})

		if !changed {
			return
		}
	}
}

// externalComponentFingerprintIndex rebuilds a fresh
// fingerprint -> [names] index built from names the registry has already
// hoisted into components.schemas and that the resolver also knows as
// external candidates.
func (r *registry) externalComponentFingerprintIndex(res *resolver) map[string][]string {
	idx := make(map[string][]string)
	for name, schema := range r.doc.Components.Schemas {
		if _, canonical, ok := res.ResolveExternalSchemaCandidate(schema); ok && canonical == schema {
			fp := fingerprint(schema)
			idx[fp] = append(idx[fp], name)
		}
	}
	return idx
}

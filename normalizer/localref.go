package normalizer

import (
	"strings"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// rewriteLocalRefs handles every schema in schema context whose Ref is a
// local document pointer that isn't already a component pointer: resolve
// it, register the target under a name preferring an existing external
// candidate, and repoint Ref at the assigned component pointer.
func rewriteLocalRefs(doc *parser.OAS3Document, res *resolver, reg *registry) {
	walkDocument(doc, func(n node) bool {
		ref := n.schema.Ref
		if !strings.HasPrefix(ref, "#/") {
			return true
		}
		if _, isComponent := jsonpointer.IsComponentSchemaRoot(ref); isComponent {
			return true
		}

		target, ok := resolveLocal(doc, ref)
		if !ok {
			return true
		}

		name, _, ok := res.ResolveExternalSchemaCandidate(target)
		if !ok {
			tokens, _ := jsonpointer.Split(ref)
			name = nameFromPointer(tokens)
		}

		ptr := reg.Register(target, name)
		n.schema.Ref = ptr
		return true
	})
}

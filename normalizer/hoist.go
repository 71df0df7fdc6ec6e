package normalizer

import (
	"context"
	"sort"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// hoistDeclaredExternals pre-registers every source path the bundler
// reports (other than the root document itself) as an external candidate,
// then collects every occurrence of one of those objects sitting in schema
// context away from a component root, and registers each under a name
// derived from its source path. Sorting by source path before registration
// is what makes component-name assignment deterministic for a given input,
// independent of map iteration order.
func hoistDeclaredExternals(ctx context.Context, doc *parser.OAS3Document, bp BundledParser, res *resolver, ld *loader, reg *registry) {
	paths := bp.LoadedPaths()
	if len(paths) == 0 {
		return
	}
	for _, p := range paths[1:] {
		schema, ok := bp.GetLoaded(p)
		if !ok {
			schema, ok = ld.EnsureExternalSchemaForSourcePath(ctx, p)
		}
		if !ok {
			continue
		}
		res.AddExternalNameCandidate(schema, nameFromSourcePath(p))
		res.RegisterExternalSourcePath(p, schema)
	}

	type occurrence struct {
		sourcePath string
		node       node
	}
	var found []occurrence

	walkDocument(doc, func(n node) bool {
		if _, isRoot := jsonpointer.IsComponentSchemaRoot(n.pointer); isRoot {
			return true
		}
		sp, ok := res.sourcePathByObjectLocked(n.schema)
		if !ok {
			return true
		}
		found = append(found, occurrence{sourcePath: sp, node: n})
		return true
	})

	sort.Slice(found, func(i, j int) bool { return found[i].sourcePath < found[j].sourcePath })

	for _, occ := range found {
		reg.Register(occ.node.schema, nameFromSourcePath(occ.sourcePath))
	}
}

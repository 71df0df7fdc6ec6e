package normalizer

import "github.com/oasnorm/oasnorm/parser"

// finalDedupe runs a last sweep of the registry's
// ReplaceHoistedInlinesWithRefs to catch shared-identity objects that
// earlier passes registered under a component pointer but didn't rewrite
// at every occurrence (a schema can be reachable from more than one parent
// slot before any single pass visits all of them).
func finalDedupe(doc *parser.OAS3Document, reg *registry) {
	reg.ReplaceHoistedInlinesWithRefs(doc)
}

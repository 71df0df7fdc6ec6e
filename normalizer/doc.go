// Package normalizer hoists and rewrites schemas into components.schemas
// after an external bundler has already flattened every $ref into one
// OpenAPI 3.x document tree.
//
// Bundlers resolve references by inlining or deep-cloning their targets,
// which leaves behind duplicated subtrees and $refs pointing at deep
// document pointers or the file paths the bundler read from rather than a
// shared components.schemas namespace. Normalize walks the bundled tree,
// identifies schemas that came from the same original source (by object
// identity where the bundler shared a pointer, and by structural
// fingerprint where it cloned), hoists each into components.schemas under
// a derived name, and rewrites every occurrence to a $ref pointing there.
//
// # Quick Start
//
//	doc := bundler.Document()
//	bundle := normalizer.NewStaticBundle(doc, bundler.LoadedPaths(), func(path string) ([]byte, error) {
//		return os.ReadFile(path)
//	})
//	if err := normalizer.Normalize(ctx, bundle); err != nil {
//		log.Fatal(err)
//	}
//
// # Bundler Abstraction
//
// Normalize consumes a BundledParser rather than a bundler implementation
// directly, so any bundler can be adapted by implementing four methods:
// Document, LoadedPaths, GetLoaded, and Parse. LoadedPaths returning nil
// (as opposed to an empty, non-nil slice) signals "no bundler metadata
// available" and makes Normalize a no-op.
//
// # Related Packages
//
//   - [github.com/oasnorm/oasnorm/parser] - Typed OpenAPI 3.x document model and logger that Normalize operates on
package normalizer

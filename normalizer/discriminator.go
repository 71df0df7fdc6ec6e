package normalizer

import (
	"context"
	"path"
	"strings"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// rewriteDiscriminatorMappings repeatedly scans every Discriminator.Mapping
// value that looks like an external file reference and, once its source
// path is resolved, replaces it with the component pointer for that file
// (loading and hoisting it first if necessary).
func rewriteDiscriminatorMappings(ctx context.Context, doc *parser.OAS3Document, res *resolver, reg *registry, ld *loader) {
	for {
		changed := false

		walkDocument(doc, func(n node) bool {
			if n.schema.Discriminator == nil || len(n.schema.Discriminator.Mapping) == 0 {
				return true
			}
			for key, value := range n.schema.Discriminator.Mapping {
				if !isExternalFileReference(value) {
					continue
				}
				if newValue, ok := resolveDiscriminatorTarget(ctx, value, n.schema, res, reg, ld); ok && newValue != value {
					n.schema.Discriminator.Mapping[key] = newValue
					changed = true
				}
			}
			return true
		})

		if !changed {
			return
		}
	}
}

// resolveDiscriminatorTarget resolves a single
// mapping value.
func resolveDiscriminatorTarget(ctx context.Context, value string, containing *parser.Schema, res *resolver, reg *registry, ld *loader) (string, bool) {
	if _, isComponent := jsonpointer.IsComponentSchemaRoot(value); isComponent {
		return value, true
	}

	filePart, _, _ := strings.Cut(value, "#")
	baseName := path.Base(filePart)

	sourcePath, ok := res.ResolveMatchingSourcePath(filePart, baseName)
	if !ok {
		sourcePath, ok = res.ResolveSourcePathFromSchemaContext(filePart, containing, reg)
	}
	if !ok {
		if name := nameFromSourcePath(baseName); componentKnownByName(reg, name) {
			return jsonpointer.SchemaRef(name), true
		}
		return value, false
	}

	name, ok := res.ComponentForSourcePath(sourcePath)
	if !ok {
		schema, ok := ld.EnsureExternalSchemaForSourcePath(ctx, sourcePath)
		if !ok {
			return value, false
		}
		ptr := reg.Register(schema, nameFromSourcePath(sourcePath))
		compName, _ := jsonpointer.IsComponentSchemaRoot(ptr)
		name = compName
		res.SetComponentForSourcePath(sourcePath, name)
	}
	return jsonpointer.SchemaRef(name), true
}

// componentKnownByName reports whether name is already a registered
// components.schemas key.
func componentKnownByName(reg *registry, name string) bool {
	_, ok := reg.doc.Components.Schemas[name]
	return ok
}

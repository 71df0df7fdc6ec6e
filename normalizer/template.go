package normalizer

import (
	"context"
	"path"
	"strings"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// reconstructSourceTemplates walks, for every (componentName, sourcePath)
// pair currently known, the raw external file and the bundled component
// side by side. Wherever the source carries a Ref to a further external
// file, it resolves that ref to a component pointer and splices a Ref-only
// schema into the corresponding bundled slot, preserving any
// Summary/Description the bundler already inlined there.
func reconstructSourceTemplates(ctx context.Context, res *resolver, reg *registry, ld *loader) {
	for _, pair := range res.knownComponentSourcePaths() {
		bundled, ok := reg.doc.Components.Schemas[pair.componentName]
		if !ok {
			continue
		}
		source, ok := ld.EnsureExternalSchemaForSourcePath(ctx, pair.sourcePath)
		if !ok {
			continue
		}
		reconcileTemplate(ctx, source, bundled, pair.sourcePath, res, reg, ld, func(*parser.Schema) {})
	}
}

// reconcileTemplate recurses source (the raw external schema) and bundled
// (the bundler's already-flattened counterpart) together. set replaces
// bundled in its parent slot when a Ref splice is needed.
func reconcileTemplate(ctx context.Context, source, bundled *parser.Schema, sourcePath string, res *resolver, reg *registry, ld *loader, set func(*parser.Schema)) {
	if source == nil || bundled == nil {
		return
	}

	if source.Ref != "" && isExternalFileReference(source.Ref) {
		if ptr, ok := resolveExternalRefToComponent(ctx, source.Ref, sourcePath, res, reg, ld); ok {
			set(refOnlySchema(ptr, bundled))
			return
		}
	}

	recurseTemplateMap(ctx, source.Properties, bundled.Properties, sourcePath, res, reg, ld)
	recurseTemplateMap(ctx, source.PatternProperties, bundled.PatternProperties, sourcePath, res, reg, ld)
	recurseTemplateMap(ctx, source.DependentSchemas, bundled.DependentSchemas, sourcePath, res, reg, ld)
	recurseTemplateMap(ctx, source.Defs, bundled.Defs, sourcePath, res, reg, ld)

	recurseTemplateSlice(ctx, source.AllOf, bundled.AllOf, sourcePath, res, reg, ld)
	recurseTemplateSlice(ctx, source.AnyOf, bundled.AnyOf, sourcePath, res, reg, ld)
	recurseTemplateSlice(ctx, source.OneOf, bundled.OneOf, sourcePath, res, reg, ld)
	recurseTemplateSlice(ctx, source.PrefixItems, bundled.PrefixItems, sourcePath, res, reg, ld)

	reconcileOptionalChild(ctx, source.Not, bundled.Not, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.Not = r })
	reconcileOptionalChild(ctx, source.If, bundled.If, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.If = r })
	reconcileOptionalChild(ctx, source.Then, bundled.Then, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.Then = r })
	reconcileOptionalChild(ctx, source.Else, bundled.Else, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.Else = r })
	reconcileOptionalChild(ctx, source.Contains, bundled.Contains, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.Contains = r })
	reconcileOptionalChild(ctx, source.PropertyNames, bundled.PropertyNames, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.PropertyNames = r })

	if si, ok := source.Items.(*parser.Schema); ok {
		if bi, ok := bundled.Items.(*parser.Schema); ok {
			reconcileOptionalChild(ctx, si, bi, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.Items = r })
		}
	}
	if sap, ok := source.AdditionalProperties.(*parser.Schema); ok {
		if bap, ok := bundled.AdditionalProperties.(*parser.Schema); ok {
			reconcileOptionalChild(ctx, sap, bap, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.AdditionalProperties = r })
		}
	}
	if sai, ok := source.AdditionalItems.(*parser.Schema); ok {
		if bai, ok := bundled.AdditionalItems.(*parser.Schema); ok {
			reconcileOptionalChild(ctx, sai, bai, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled.AdditionalItems = r })
		}
	}
}

func reconcileOptionalChild(ctx context.Context, source, bundled *parser.Schema, sourcePath string, res *resolver, reg *registry, ld *loader, set func(*parser.Schema)) {
	if source == nil || bundled == nil {
		return
	}
	reconcileTemplate(ctx, source, bundled, sourcePath, res, reg, ld, set)
}

func recurseTemplateMap(ctx context.Context, source, bundled map[string]*parser.Schema, sourcePath string, res *resolver, reg *registry, ld *loader) {
	for key, sourceChild := range source {
		bundledChild, ok := bundled[key]
		if !ok {
			continue
		}
		reconcileTemplate(ctx, sourceChild, bundledChild, sourcePath, res, reg, ld, func(r *parser.Schema) { bundled[key] = r })
	}
}

// recurseTemplateSlice recurses positionally, truncated to the
// shorter of the two slices.
func recurseTemplateSlice(ctx context.Context, source, bundled []*parser.Schema, sourcePath string, res *resolver, reg *registry, ld *loader) {
	n := len(source)
	if len(bundled) < n {
		n = len(bundled)
	}
	for i := 0; i < n; i++ {
		idx := i
		reconcileTemplate(ctx, source[idx], bundled[idx], sourcePath, res, reg, ld, func(r *parser.Schema) { bundled[idx] = r })
	}
}

// resolveExternalRefToComponent resolves a Ref found inside sourcePath's own
// content to a component pointer, loading and hoisting the target file if
// it hasn't been seen yet.
func resolveExternalRefToComponent(ctx context.Context, ref, sourcePath string, res *resolver, reg *registry, ld *loader) (string, bool) {
	filePart, fragment, hasFragment := strings.Cut(ref, "#")

	var resolvedPath string
	if strings.HasPrefix(filePart, "/") {
		resolvedPath = path.Clean(filePart)
	} else {
		resolvedPath = path.Clean(path.Join(path.Dir(sourcePath), filePart))
	}
	fullKey := resolvedPath
	if hasFragment {
		fullKey = resolvedPath + "#" + fragment
	}

	if name, ok := res.ComponentForSourcePath(fullKey); ok {
		return jsonpointer.SchemaRef(name), true
	}

	schema, ok := ld.EnsureExternalSchemaForSourcePath(ctx, fullKey)
	if !ok {
		return "", false
	}
	ptr := reg.Register(schema, nameFromSourcePath(resolvedPath))
	name, _ := jsonpointer.IsComponentSchemaRoot(ptr)
	res.SetComponentForSourcePath(fullKey, name)
	return ptr, true
}

type componentSourcePathPair struct {
	componentName string
	sourcePath    string
}

// knownComponentSourcePaths snapshots the current componentName<->sourcePath
// bijection so template reconstruction can iterate it without racing further registrations
// made during that same iteration.
func (r *resolver) knownComponentSourcePaths() []componentSourcePathPair {
	r.mu.Lock()
	defer r.mu.Unlock()
	pairs := make([]componentSourcePathPair, 0, len(r.componentNameBySourcePath))
	for sourcePath, name := range r.componentNameBySourcePath {
		pairs = append(pairs, componentSourcePathPair{componentName: name, sourcePath: sourcePath})
	}
	return pairs
}

package normalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestReconstructSourceTemplatesSplicesRefForExternalRefInSource(t *testing.T) {
	// The bundler already inlined pet.yaml's item.yaml ref into a
	// full copy of Item under Pet.properties.item; the raw source file still
	// carries the $ref. Reconstruction should notice and re-collapse it.
	bundledItem := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"sku": {Type: "string"}}}
	bundledPet := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"item": bundledItem}}

	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"pet": bundledPet}}

	sourcePet := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{
		"item": {Ref: "item.yaml"},
	}}

	res := newResolver()
	res.SetComponentForSourcePath("schemas/pet.yaml", "pet")
	reg := newRegistry(doc)

	item := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"sku": {Type: "string"}}}
	bp := &stubBundledParser{
		doc: doc,
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			switch path {
			case "schemas/pet.yaml":
				return sourcePet, nil
			case "schemas/item.yaml":
				return item, nil
			}
			t.Fatalf("unexpected path %q", path)
			return nil, nil
		},
	}
	ld := newLoader(res, bp, parser.NopLogger{})

	reconstructSourceTemplates(context.Background(), res, reg, ld)

	got := doc.Components.Schemas["pet"].Properties["item"]
	require.NotEmpty(t, got.Ref)
	name, ok := parseComponentRoot(got.Ref)
	require.True(t, ok)
	assert.Same(t, item, doc.Components.Schemas[name])
}

func TestReconstructSourceTemplatesRecursesThroughComposition(t *testing.T) {
	bundledChild := &parser.Schema{Type: "string"}
	bundledParent := &parser.Schema{AllOf: []*parser.Schema{{Type: "object"}, bundledChild}}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"parent": bundledParent}}

	sourceParent := &parser.Schema{AllOf: []*parser.Schema{{Type: "object"}, {Ref: "child.yaml"}}}
	res := newResolver()
	res.SetComponentForSourcePath("schemas/parent.yaml", "parent")
	reg := newRegistry(doc)

	child := &parser.Schema{Type: "string"}
	bp := &stubBundledParser{
		doc: doc,
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			switch path {
			case "schemas/parent.yaml":
				return sourceParent, nil
			case "schemas/child.yaml":
				return child, nil
			}
			t.Fatalf("unexpected path %q", path)
			return nil, nil
		},
	}
	ld := newLoader(res, bp, parser.NopLogger{})

	reconstructSourceTemplates(context.Background(), res, reg, ld)

	got := doc.Components.Schemas["parent"].AllOf[1]
	require.NotEmpty(t, got.Ref)
}

func TestReconstructSourceTemplatesSkipsUnknownComponents(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{}}
	res := newResolver()
	res.SetComponentForSourcePath("schemas/gone.yaml", "gone")
	reg := newRegistry(doc)
	bp := &stubBundledParser{doc: doc}
	ld := newLoader(res, bp, parser.NopLogger{})

	assert.NotPanics(t, func() { reconstructSourceTemplates(context.Background(), res, reg, ld) })
}

func TestResolveExternalRefToComponentResolvesRelativePath(t *testing.T) {
	item := &parser.Schema{Type: "object"}
	res := newResolver()
	reg := newRegistry(newDoc())
	bp := &stubBundledParser{
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			assert.Equal(t, "schemas/item.yaml", path)
			return item, nil
		},
	}
	ld := newLoader(res, bp, parser.NopLogger{})

	ptr, ok := resolveExternalRefToComponent(context.Background(), "item.yaml", "schemas/pet.yaml", res, reg, ld)
	require.True(t, ok)
	name, ok := parseComponentRoot(ptr)
	require.True(t, ok)
	assert.Same(t, item, reg.doc.Components.Schemas[name])
}

func TestResolveExternalRefToComponentReusesKnownMapping(t *testing.T) {
	res := newResolver()
	res.SetComponentForSourcePath("schemas/item.yaml", "Item")
	reg := newRegistry(newDoc())
	bp := &stubBundledParser{parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
		t.Fatal("should not need to load when the mapping is already known")
		return nil, nil
	}}
	ld := newLoader(res, bp, parser.NopLogger{})

	ptr, ok := resolveExternalRefToComponent(context.Background(), "item.yaml", "schemas/pet.yaml", res, reg, ld)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Item", ptr)
}

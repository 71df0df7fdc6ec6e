package normalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestRewriteDiscriminatorMappingsResolvesKnownSourcePath(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Animal": {
			Discriminator: &parser.Discriminator{
				PropertyName: "type",
				Mapping:      map[string]string{"dog": "schemas/dog.yaml"},
			},
		},
	}}

	res := newResolver()
	res.RegisterExternalSourcePath("schemas/dog.yaml", &parser.Schema{Type: "object"})
	res.SetComponentForSourcePath("schemas/dog.yaml", "Dog")
	reg := newRegistry(doc)
	bp := &stubBundledParser{doc: doc}
	ld := newLoader(res, bp, parser.NopLogger{})

	rewriteDiscriminatorMappings(context.Background(), doc, res, reg, ld)

	assert.Equal(t, "#/components/schemas/Dog", doc.Components.Schemas["Animal"].Discriminator.Mapping["dog"])
}

func TestRewriteDiscriminatorMappingsLeavesComponentPointerUntouched(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Animal": {Discriminator: &parser.Discriminator{PropertyName: "type", Mapping: map[string]string{"dog": "#/components/schemas/Dog"}}},
	}}

	res := newResolver()
	reg := newRegistry(doc)
	bp := &stubBundledParser{doc: doc}
	ld := newLoader(res, bp, parser.NopLogger{})

	rewriteDiscriminatorMappings(context.Background(), doc, res, reg, ld)

	assert.Equal(t, "#/components/schemas/Dog", doc.Components.Schemas["Animal"].Discriminator.Mapping["dog"])
}

func TestRewriteDiscriminatorMappingsLoadsAndHoistsUnknownFile(t *testing.T) {
	dog := &parser.Schema{Type: "object"}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Animal": {Discriminator: &parser.Discriminator{PropertyName: "type", Mapping: map[string]string{"dog": "dog.yaml"}}},
	}}

	res := newResolver()
	reg := newRegistry(doc)
	// Ties "Animal" to a source directory so the relative "dog.yaml" mapping
	// value resolves against it.
	res.SetComponentForSourcePath("schemas/animal.yaml", "Animal")

	bp := &stubBundledParser{
		doc: doc,
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			return dog, nil
		},
	}
	ld := newLoader(res, bp, parser.NopLogger{})

	rewriteDiscriminatorMappings(context.Background(), doc, res, reg, ld)

	got := doc.Components.Schemas["Animal"].Discriminator.Mapping["dog"]
	require.NotEmpty(t, got)
	name, ok := parseComponentRoot(got)
	require.True(t, ok)
	assert.Same(t, dog, doc.Components.Schemas[name])
}

func TestRewriteDiscriminatorMappingsFallsBackToKnownComponentByBaseName(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"dog":    {Type: "object"},
		"Animal": {Discriminator: &parser.Discriminator{PropertyName: "type", Mapping: map[string]string{"dog": "unresolvable/dog.yaml"}}},
	}}

	res := newResolver()
	reg := newRegistry(doc)
	bp := &stubBundledParser{doc: doc}
	ld := newLoader(res, bp, parser.NopLogger{})

	rewriteDiscriminatorMappings(context.Background(), doc, res, reg, ld)

	assert.Equal(t, "#/components/schemas/dog", doc.Components.Schemas["Animal"].Discriminator.Mapping["dog"])
}

func TestRewriteDiscriminatorMappingsIgnoresNonFileValues(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Animal": {Discriminator: &parser.Discriminator{PropertyName: "type", Mapping: map[string]string{"dog": "Dog"}}},
	}}

	res := newResolver()
	reg := newRegistry(doc)
	bp := &stubBundledParser{doc: doc}
	ld := newLoader(res, bp, parser.NopLogger{})

	rewriteDiscriminatorMappings(context.Background(), doc, res, reg, ld)

	assert.Equal(t, "Dog", doc.Components.Schemas["Animal"].Discriminator.Mapping["dog"])
}

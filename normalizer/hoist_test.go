package normalizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestHoistDeclaredExternalsRegistersOccurrencesUnderSourceName(t *testing.T) {
	pet := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"name": {Type: "string"}}}
	doc := newDoc()
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Responses: &parser.Responses{Codes: map[string]*parser.Response{
			"200": {Content: map[string]*parser.MediaType{"application/json": {Schema: pet}}},
		}},
	}}}

	bp := &stubBundledParser{doc: doc, paths: []string{"root", "schemas/pet.yaml"}, loaded: map[string]*parser.Schema{"schemas/pet.yaml": pet}}
	res := newResolver()
	reg := newRegistry(doc)
	ld := newLoader(res, bp, parser.NopLogger{})

	hoistDeclaredExternals(context.Background(), doc, bp, res, ld, reg)

	ptr, ok := reg.PointerFor(pet)
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/pet", ptr)
}

func TestHoistDeclaredExternalsSkipsSchemasAlreadyAtComponentRoot(t *testing.T) {
	pet := &parser.Schema{Type: "object"}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"Pet": pet}}

	bp := &stubBundledParser{doc: doc, paths: []string{"root", "schemas/pet.yaml"}, loaded: map[string]*parser.Schema{"schemas/pet.yaml": pet}}
	res := newResolver()
	reg := newRegistry(doc)
	ld := newLoader(res, bp, parser.NopLogger{})

	hoistDeclaredExternals(context.Background(), doc, bp, res, ld, reg)

	assert.Len(t, doc.Components.Schemas, 1, "the already-resident component should not be re-registered under a new name")
}

func TestHoistDeclaredExternalsNoLoadedPathsIsNoop(t *testing.T) {
	doc := newDoc()
	bp := &stubBundledParser{doc: doc, paths: nil}
	res := newResolver()
	reg := newRegistry(doc)
	ld := newLoader(res, bp, parser.NopLogger{})

	hoistDeclaredExternals(context.Background(), doc, bp, res, ld, reg)
	assert.Empty(t, doc.Components.Schemas)
}

func TestHoistDeclaredExternalsFallsBackToLoaderWhenNotPrewarmed(t *testing.T) {
	pet := &parser.Schema{Type: "object"}
	doc := newDoc()
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: pet}},
		Responses:  &parser.Responses{},
	}}}

	parseCalls := 0
	bp := &stubBundledParser{
		doc:   doc,
		paths: []string{"root", "schemas/pet.yaml"},
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			parseCalls++
			return pet, nil
		},
	}
	res := newResolver()
	reg := newRegistry(doc)
	ld := newLoader(res, bp, parser.NopLogger{})

	hoistDeclaredExternals(context.Background(), doc, bp, res, ld, reg)

	assert.Equal(t, 1, parseCalls)
	_, ok := reg.PointerFor(pet)
	assert.True(t, ok)
}

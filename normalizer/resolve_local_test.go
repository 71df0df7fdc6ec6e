package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestResolveLocalIntoComponentSchemas(t *testing.T) {
	doc := newDoc()
	pet := &parser.Schema{Type: "object"}
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"Pet": pet}}

	resolved, ok := resolveLocal(doc, "#/components/schemas/Pet")
	require.True(t, ok)
	assert.Same(t, pet, resolved)
}

func TestResolveLocalThroughPathsAndOperations(t *testing.T) {
	target := &parser.Schema{Type: "integer"}
	doc := newDoc()
	doc.Paths = parser.Paths{
		"/pets": {Get: &parser.Operation{
			Parameters: []*parser.Parameter{{Name: "limit", Schema: target}},
			Responses:  &parser.Responses{},
		}},
	}

	resolved, ok := resolveLocal(doc, "#/paths/~1pets/get/parameters/0/schema")
	require.True(t, ok)
	assert.Same(t, target, resolved)
}

func TestResolveLocalThroughNestedSchemaKeywords(t *testing.T) {
	inner := &parser.Schema{Type: "string"}
	outer := &parser.Schema{AllOf: []*parser.Schema{{Type: "object", Properties: map[string]*parser.Schema{"name": inner}}}}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"Outer": outer}}

	resolved, ok := resolveLocal(doc, "#/components/schemas/Outer/allOf/0/properties/name")
	require.True(t, ok)
	assert.Same(t, inner, resolved)
}

func TestResolveLocalMissingPathFails(t *testing.T) {
	doc := newDoc()
	_, ok := resolveLocal(doc, "#/components/schemas/DoesNotExist")
	assert.False(t, ok)
}

func TestResolveLocalNonSchemaTargetFails(t *testing.T) {
	doc := newDoc()
	doc.Paths = parser.Paths{"/pets": {}}
	_, ok := resolveLocal(doc, "#/paths/~1pets")
	assert.False(t, ok)
}

func TestResolveLocalEmptyPointerFails(t *testing.T) {
	doc := newDoc()
	_, ok := resolveLocal(doc, "#/")
	assert.False(t, ok)
}

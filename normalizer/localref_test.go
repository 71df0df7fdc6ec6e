package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestRewriteLocalRefsPointsAtNewComponent(t *testing.T) {
	target := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"name": {Type: "string"}}}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Wrapper": {AllOf: []*parser.Schema{target}},
	}}
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: &parser.Schema{Ref: "#/components/schemas/Wrapper/allOf/0"}}},
		Responses:  &parser.Responses{},
	}}}

	res := newResolver()
	reg := newRegistry(doc)
	rewriteLocalRefs(doc, res, reg)

	ref := doc.Paths["/pets"].Get.Parameters[0].Schema.Ref
	require.NotEmpty(t, ref)
	name, ok := parseComponentRoot(ref)
	require.True(t, ok)
	assert.Same(t, target, doc.Components.Schemas[name])
}

func TestRewriteLocalRefsAlreadyAtComponentRootUntouched(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"Pet": {Type: "object"}}}
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: &parser.Schema{Ref: "#/components/schemas/Pet"}}},
		Responses:  &parser.Responses{},
	}}}

	res := newResolver()
	reg := newRegistry(doc)
	rewriteLocalRefs(doc, res, reg)

	assert.Equal(t, "#/components/schemas/Pet", doc.Paths["/pets"].Get.Parameters[0].Schema.Ref)
}

func TestRewriteLocalRefsPrefersExistingExternalCandidateName(t *testing.T) {
	target := &parser.Schema{Type: "object"}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{
		"Wrapper": {AllOf: []*parser.Schema{target}},
	}}
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: &parser.Schema{Ref: "#/components/schemas/Wrapper/allOf/0"}}},
		Responses:  &parser.Responses{},
	}}}

	res := newResolver()
	res.AddExternalNameCandidate(target, "Pet")
	reg := newRegistry(doc)
	rewriteLocalRefs(doc, res, reg)

	assert.Equal(t, "#/components/schemas/Pet", doc.Paths["/pets"].Get.Parameters[0].Schema.Ref)
}

func TestRewriteLocalRefsUnresolvablePointerLeftUntouched(t *testing.T) {
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{}}
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: &parser.Schema{Ref: "#/components/schemas/DoesNotExist"}}},
		Responses:  &parser.Responses{},
	}}}

	res := newResolver()
	reg := newRegistry(doc)
	rewriteLocalRefs(doc, res, reg)

	assert.Equal(t, "#/components/schemas/DoesNotExist", doc.Paths["/pets"].Get.Parameters[0].Schema.Ref)
}

func parseComponentRoot(ref string) (string, bool) {
	const prefix = "#/components/schemas/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return "", false
	}
	return ref[len(prefix):], true
}

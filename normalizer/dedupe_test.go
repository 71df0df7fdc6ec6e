package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasnorm/oasnorm/parser"
)

func TestFinalDedupeCollapsesSharedIdentityNotYetRewrittenEverywhere(t *testing.T) {
	shared := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"name": {Type: "string"}}}
	doc := newDoc()
	doc.Components = &parser.Components{Schemas: map[string]*parser.Schema{"Pet": shared}}
	doc.Paths = parser.Paths{"/pets": {Get: &parser.Operation{
		Parameters: []*parser.Parameter{{Name: "body", Schema: shared}},
		Responses: &parser.Responses{Codes: map[string]*parser.Response{
			"200": {Content: map[string]*parser.MediaType{"application/json": {Schema: shared}}},
		}},
	}}}

	reg := newRegistry(doc)
	finalDedupe(doc, reg)

	paramSchema := doc.Paths["/pets"].Get.Parameters[0].Schema
	respSchema := doc.Paths["/pets"].Get.Responses.Codes["200"].Content["application/json"].Schema
	assert.Equal(t, "#/components/schemas/Pet", paramSchema.Ref)
	assert.Equal(t, "#/components/schemas/Pet", respSchema.Ref)
	assert.Same(t, shared, doc.Components.Schemas["Pet"])
}

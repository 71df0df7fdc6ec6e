package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasnorm/oasnorm/parser"
)

func TestIsExternalFileReference(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"schemas/pet.yaml", true},
		{"./pet.yml", true},
		{"../common/order.json#/definitions/Order", true},
		{"#/components/schemas/Pet", false},
		{"https://example.com/schemas/pet.yaml", false},
		{"urn:example:pet", false},
		{"pet.txt", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, isExternalFileReference(c.in), "in=%q", c.in)
	}
}

func TestIsLikelySchema(t *testing.T) {
	assert.False(t, isLikelySchema(nil))
	assert.False(t, isLikelySchema(&parser.Schema{}))
	assert.True(t, isLikelySchema(&parser.Schema{Type: "string"}))
	assert.True(t, isLikelySchema(&parser.Schema{Ref: "#/components/schemas/Pet"}))
	assert.True(t, isLikelySchema(&parser.Schema{Properties: map[string]*parser.Schema{"name": {}}}))
	assert.True(t, isLikelySchema(&parser.Schema{Enum: []any{"a", "b"}}))
}

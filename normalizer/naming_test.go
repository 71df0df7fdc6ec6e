package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromSourcePath(t *testing.T) {
	cases := []struct{ path, want string }{
		{"schemas/pet.yaml", "pet"},
		{"./nested/dir/order item.yml", "order-item"},
		{"weird$name.json", "weird-name"},
		{"", "Schema"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, nameFromSourcePath(c.path), "path=%q", c.path)
	}
}

func TestNameFromPointerSkipsIgnoredTokens(t *testing.T) {
	tokens := []string{"paths", "/pets", "get", "responses", "200", "content", "application/json", "schema"}
	assert.Equal(t, "Schema", nameFromPointer(tokens))
}

func TestNameFromPointerUsesLastAcceptableToken(t *testing.T) {
	tokens := []string{"components", "schemas", "existing", "properties", "petName"}
	assert.Equal(t, "PetName", nameFromPointer(tokens))
}

func TestNameFromPointerEmpty(t *testing.T) {
	assert.Equal(t, "Schema", nameFromPointer(nil))
}

func TestPascalCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"pet-store", "PetStore"},
		{"order_item.yaml", "OrderItem"},
		{"already-Pascal", "AlreadyPascal"},
		{"123", "123"},
		{"", "Schema"},
		{"---", "Schema"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pascalCase(c.in), "in=%q", c.in)
	}
}

func TestNameSetUniqueAndSeed(t *testing.T) {
	ns := newNameSet()
	ns.seed("Pet")

	assert.Equal(t, "Pet_2", ns.Unique("Pet"))
	assert.Equal(t, "Pet_3", ns.Unique("Pet"))
	assert.Equal(t, "Order", ns.Unique("Order"))
	assert.Equal(t, "Order_2", ns.Unique("Order"))
}

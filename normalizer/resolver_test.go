package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

func TestResolveExternalSchemaCandidateByIdentity(t *testing.T) {
	res := newResolver()
	pet := &parser.Schema{Type: "object"}
	res.AddExternalNameCandidate(pet, "Pet")

	name, canonical, ok := res.ResolveExternalSchemaCandidate(pet)
	require.True(t, ok)
	assert.Equal(t, "Pet", name)
	assert.Same(t, pet, canonical)
}

func TestResolveExternalSchemaCandidateByUniqueFingerprint(t *testing.T) {
	res := newResolver()
	pet := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"name": {Type: "string"}}}
	res.AddExternalNameCandidate(pet, "Pet")

	clone := &parser.Schema{Type: "object", Properties: map[string]*parser.Schema{"name": {Type: "string"}}}
	name, canonical, ok := res.ResolveExternalSchemaCandidate(clone)
	require.True(t, ok)
	assert.Equal(t, "Pet", name)
	assert.Same(t, pet, canonical)
}

func TestResolveExternalSchemaCandidateAmbiguousFingerprintFails(t *testing.T) {
	res := newResolver()
	shape := func() *parser.Schema { return &parser.Schema{Type: "object"} }
	res.AddExternalNameCandidate(shape(), "Pet")
	res.AddExternalNameCandidate(shape(), "Order")

	_, _, ok := res.ResolveExternalSchemaCandidate(shape())
	assert.False(t, ok, "an ambiguous fingerprint match must resolve to nothing")
}

func TestAddExternalNameCandidateSkipsUnlikelySchemas(t *testing.T) {
	res := newResolver()
	res.AddExternalNameCandidate(&parser.Schema{}, "Empty")

	_, _, ok := res.ResolveExternalSchemaCandidate(&parser.Schema{})
	assert.False(t, ok)
}

func TestResolveExternalComponentCandidate(t *testing.T) {
	res := newResolver()
	candidate := &parser.Schema{Type: "string"}
	res.canonicalByName["Pet"] = candidate
	fp := fingerprint(candidate)

	name, ok := res.ResolveExternalComponentCandidate(&parser.Schema{Type: "string"}, map[string][]string{fp: {"Pet"}})
	require.True(t, ok)
	assert.Equal(t, "Pet", name)

	_, ok = res.ResolveExternalComponentCandidate(&parser.Schema{Type: "string"}, map[string][]string{fp: {"Pet", "Order"}})
	assert.False(t, ok, "ambiguous fingerprint match must resolve to nothing")

	_, ok = res.ResolveExternalComponentCandidate(&parser.Schema{Type: "string"}, map[string][]string{fp: {"Unregistered"}})
	assert.False(t, ok, "a name the registry has never seen must not resolve")
}

func TestResolveMatchingSourcePathUniqueBaseName(t *testing.T) {
	res := newResolver()
	pet := &parser.Schema{Type: "object"}
	res.RegisterExternalSourcePath("schemas/pet.yaml", pet)

	sp, ok := res.ResolveMatchingSourcePath("pet.yaml", "pet.yaml")
	require.True(t, ok)
	assert.Equal(t, "schemas/pet.yaml", sp)
}

func TestResolveMatchingSourcePathAmbiguousBaseNameFallsBackToSuffix(t *testing.T) {
	res := newResolver()
	a := &parser.Schema{Type: "object"}
	b := &parser.Schema{Type: "object"}
	res.RegisterExternalSourcePath("v1/pet.yaml", a)
	res.RegisterExternalSourcePath("v2/pet.yaml", b)

	sp, ok := res.ResolveMatchingSourcePath("v1/pet.yaml", "pet.yaml")
	require.True(t, ok)
	assert.Equal(t, "v1/pet.yaml", sp)
}

func TestResolveMatchingSourcePathNoCandidatesFails(t *testing.T) {
	res := newResolver()
	_, ok := res.ResolveMatchingSourcePath("pet.yaml", "pet.yaml")
	assert.False(t, ok)
}

func TestSetAndGetComponentForSourcePath(t *testing.T) {
	res := newResolver()
	res.SetComponentForSourcePath("schemas/pet.yaml", "Pet")

	name, ok := res.ComponentForSourcePath("schemas/pet.yaml")
	require.True(t, ok)
	assert.Equal(t, "Pet", name)
}

func TestContainingSourcePathByIdentity(t *testing.T) {
	res := newResolver()
	pet := &parser.Schema{Type: "object"}
	res.RegisterExternalSourcePath("schemas/pet.yaml", pet)

	sp, ok := res.containingSourcePath(pet, nil)
	require.True(t, ok)
	assert.Equal(t, "schemas/pet.yaml", sp)
}

func TestResolveSourcePathFromSchemaContext(t *testing.T) {
	res := newResolver()
	containing := &parser.Schema{Type: "object"}
	res.RegisterExternalSourcePath("schemas/pet.yaml", containing)

	sp, ok := res.ResolveSourcePathFromSchemaContext("./order.yaml", containing, nil)
	require.True(t, ok)
	assert.Equal(t, "schemas/order.yaml", sp)
}

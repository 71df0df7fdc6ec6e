package normalizer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasnorm/oasnorm/parser"
)

type stubBundledParser struct {
	doc     *parser.OAS3Document
	paths   []string
	loaded  map[string]*parser.Schema
	parseFn func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error)
}

func (s *stubBundledParser) Document() *parser.OAS3Document { return s.doc }
func (s *stubBundledParser) LoadedPaths() []string           { return s.paths }
func (s *stubBundledParser) GetLoaded(path string) (*parser.Schema, bool) {
	sch, ok := s.loaded[path]
	return sch, ok
}
func (s *stubBundledParser) Parse(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
	if s.parseFn != nil {
		return s.parseFn(ctx, path, opts)
	}
	return nil, errors.New("no parser configured")
}

func TestLoaderEnsureExternalSchemaLoadsAndCaches(t *testing.T) {
	calls := 0
	bp := &stubBundledParser{
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			calls++
			return &parser.Schema{Type: "object"}, nil
		},
	}
	res := newResolver()
	ld := newLoader(res, bp, parser.NopLogger{})

	first, ok := ld.EnsureExternalSchemaForSourcePath(context.Background(), "schemas/pet.yaml")
	require.True(t, ok)

	second, ok := ld.EnsureExternalSchemaForSourcePath(context.Background(), "schemas/pet.yaml")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls, "the second call should be served from cache")
}

func TestLoaderEnsureExternalSchemaParseFailureIsSwallowed(t *testing.T) {
	bp := &stubBundledParser{
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			return nil, errors.New("boom")
		},
	}
	res := newResolver()
	ld := newLoader(res, bp, parser.NopLogger{})

	_, ok := ld.EnsureExternalSchemaForSourcePath(context.Background(), "schemas/pet.yaml")
	assert.False(t, ok)
}

func TestLoaderEnsureExternalSchemaRejectsNonSchemaResult(t *testing.T) {
	bp := &stubBundledParser{
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			return &parser.Schema{}, nil
		},
	}
	res := newResolver()
	ld := newLoader(res, bp, parser.NopLogger{})

	_, ok := ld.EnsureExternalSchemaForSourcePath(context.Background(), "schemas/empty.yaml")
	assert.False(t, ok)
}

func TestLoaderEnsureExternalSchemaGuardsReentrancy(t *testing.T) {
	bp := &stubBundledParser{
		parseFn: func(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error) {
			t.Fatal("should not be reached: loadingSourcePaths guard should short-circuit before Parse")
			return nil, nil
		},
	}
	res := newResolver()
	res.loadingSourcePaths["schemas/pet.yaml"] = true
	ld := newLoader(res, bp, parser.NopLogger{})

	_, ok := ld.EnsureExternalSchemaForSourcePath(context.Background(), "schemas/pet.yaml")
	assert.False(t, ok)
}

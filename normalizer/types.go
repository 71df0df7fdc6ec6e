package normalizer

import (
	"context"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/oaserrors"
	"github.com/oasnorm/oasnorm/parser"
)

// BundledParser is the bundler abstraction Normalize consumes: a single
// already-bundled document plus enough of the bundler's own state to
// resolve schemas that originated in files it loaded.
type BundledParser interface {
	// Document returns the mutable OpenAPI 3.x tree to normalize.
	Document() *parser.OAS3Document

	// LoadedPaths returns the ordered list of resources the bundler
	// touched; the first entry is the root document. A nil slice (as
	// distinct from an empty one) signals "no bundler metadata available"
	// and makes Normalize a no-op.
	LoadedPaths() []string

	// GetLoaded returns the already-parsed schema for path, if the
	// bundler has it cached.
	GetLoaded(path string) (*parser.Schema, bool)

	// Parse parses and dereferences a previously-untouched file.
	Parse(ctx context.Context, path string, opts ParserOptions) (*parser.Schema, error)
}

// FileLoader reads the raw bytes backing an external schema file.
type FileLoader func(path string) ([]byte, error)

// ParserOptions configures a Normalize invocation. Zero value is a valid,
// fully-functional configuration.
type ParserOptions struct {
	// Logger receives the diagnostics this package logs: failed and
	// non-schema external loads during pre-warm. Unresolved discriminator
	// mappings are not logged. Defaults to parser.NopLogger{}.
	Logger parser.Logger

	// MaxFixpointIterations bounds the inline-dedupe fixpoint loop as a
	// resource-exhaustion guard against a pathological input that never
	// converges; the discriminator-mapping loop is not bounded by it. Zero means
	// unbounded (the default; the passes are expected to converge per
	// the passes' own termination argument).
	MaxFixpointIterations int

	// PrewarmConcurrency bounds the worker pool that pre-loads the hoist pass's
	// sorted external paths. Zero means
	// runtime.GOMAXPROCS(0).
	PrewarmConcurrency int

	// OnWarning is stored with the options, but no pass in this package
	// calls it; recovered conditions are reported only through Logger.
	OnWarning func(error)
}

// Option applies a functional-options configuration over ParserOptions.
type Option func(*ParserOptions)

// WithLogger sets the structured logger used for every diagnostic.
func WithLogger(l parser.Logger) Option {
	return func(o *ParserOptions) { o.Logger = l }
}

// WithMaxFixpointIterations bounds the inline-dedupe fixpoint pass.
func WithMaxFixpointIterations(n int) Option {
	return func(o *ParserOptions) { o.MaxFixpointIterations = n }
}

// WithPrewarmConcurrency bounds the pre-warm worker pool.
func WithPrewarmConcurrency(n int) Option {
	return func(o *ParserOptions) { o.PrewarmConcurrency = n }
}

// WithOnWarning sets ParserOptions.OnWarning. No pass in this package calls
// the callback.
func WithOnWarning(fn func(error)) Option {
	return func(o *ParserOptions) { o.OnWarning = fn }
}

// ApplyOptions folds a list of Options onto a base ParserOptions value.
func ApplyOptions(base ParserOptions, opts ...Option) ParserOptions {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func (o ParserOptions) logger() parser.Logger {
	if o.Logger == nil {
		return parser.NopLogger{}
	}
	return o.Logger
}

func (o ParserOptions) warn(err error) {
	if o.OnWarning != nil {
		o.OnWarning(err)
	}
}

// StaticBundle is the reference BundledParser implementation: a document
// plus a fixed loaded-path list and a FileLoader for parsing paths beyond
// that list on demand.
type StaticBundle struct {
	doc         *parser.OAS3Document
	loadedPaths []string
	loader      FileLoader
	cache       map[string]*parser.Schema
}

// NewStaticBundle builds a StaticBundle. loadedPaths may be nil to signal
// "no bundler metadata," matching the package no-op precondition.
func NewStaticBundle(doc *parser.OAS3Document, loadedPaths []string, loader FileLoader) *StaticBundle {
	return &StaticBundle{
		doc:         doc,
		loadedPaths: loadedPaths,
		loader:      loader,
		cache:       make(map[string]*parser.Schema),
	}
}

func (b *StaticBundle) Document() *parser.OAS3Document { return b.doc }

func (b *StaticBundle) LoadedPaths() []string { return b.loadedPaths }

func (b *StaticBundle) GetLoaded(path string) (*parser.Schema, bool) {
	s, ok := b.cache[path]
	return s, ok
}

// Parse loads path and decodes it directly as a JSON-Schema-shaped document:
// files reached only via a $ref (as opposed to the bundle's root document)
// are schema fragments rather than full OpenAPI documents, so this unmarshals
// straight into *parser.Schema using its existing struct tags rather than
// expecting an "openapi" root. A "#/..." fragment on path is resolved against
// the decoded root afterward.
func (b *StaticBundle) Parse(ctx context.Context, sourcePath string, _ ParserOptions) (*parser.Schema, error) {
	if s, ok := b.cache[sourcePath]; ok {
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Cause: err}
	}
	if b.loader == nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "no file loader configured"}
	}

	filePath, fragment, _ := strings.Cut(sourcePath, "#")
	data, err := b.loader(filePath)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Cause: err}
	}

	var root parser.Schema
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Cause: err}
	}

	schema := &root
	if fragment != "" {
		resolved, ok := resolveSchemaFragment(&root, "#"+fragment)
		if !ok {
			return nil, &oaserrors.ParseError{Path: sourcePath, Cause: oaserrors.ErrParse, Message: "fragment did not resolve to a schema"}
		}
		schema = resolved
	}

	b.cache[sourcePath] = schema
	return schema, nil
}

// resolveSchemaFragment resolves a "#/..." pointer against a schema that was
// itself the root of a decoded external file (as opposed to resolveLocal's
// full-document root).
func resolveSchemaFragment(root *parser.Schema, pointer string) (*parser.Schema, bool) {
	tokens, ok := jsonpointer.Split(pointer)
	if !ok {
		return nil, false
	}
	var cur any = root
	for _, tok := range tokens {
		if s, isSchema := cur.(*parser.Schema); isSchema && tok == "definitions" && len(s.Defs) == 0 {
			// "definitions" is not a Schema field, so YAML decoding leaves it in Extra.
			var defs map[string]*parser.Schema
			data, err := yaml.Marshal(s.Extra["definitions"])
			if err != nil || yaml.Unmarshal(data, &defs) != nil {
				return nil, false
			}
			cur = defs
			continue
		}
		next, ok := descend(cur, tok)
		if !ok {
			return nil, false
		}
		cur = next
	}
	schema, ok := cur.(*parser.Schema)
	return schema, ok && schema != nil
}

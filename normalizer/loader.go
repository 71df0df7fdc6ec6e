package normalizer

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/oasnorm/oasnorm/parser"
)

// loader is the external file cache and re-entry guard.
// loadingSourcePaths on the resolver is the correctness guard against
// cyclic external graphs (a file transitively referencing itself must not
// recurse forever); the singleflight.Group is a purely-concurrency
// optimization layered on top so that goroutines racing to load the same
// path during the driver's pre-warm phase share one parse instead of
// duplicating work.
type loader struct {
	res   *resolver
	bp    BundledParser
	group singleflight.Group
	log   parser.Logger
}

func newLoader(res *resolver, bp BundledParser, log parser.Logger) *loader {
	return &loader{res: res, bp: bp, log: log}
}

// EnsureExternalSchemaForSourcePath loads and caches path. Parse failures are
// logged and swallowed, producing (nil, false); the re-entry guard is
// always released.
func (l *loader) EnsureExternalSchemaForSourcePath(ctx context.Context, path string) (*parser.Schema, bool) {
	if s, ok := l.res.SchemaForSourcePath(path); ok {
		return s, true
	}

	l.res.mu.Lock()
	if l.res.loadingSourcePaths[path] {
		l.res.mu.Unlock()
		return nil, false
	}
	l.res.loadingSourcePaths[path] = true
	l.res.mu.Unlock()
	defer func() {
		l.res.mu.Lock()
		delete(l.res.loadingSourcePaths, path)
		l.res.mu.Unlock()
	}()

	v, err, _ := l.group.Do(path, func() (any, error) {
		return l.bp.Parse(ctx, path, ParserOptions{})
	})
	if err != nil {
		l.log.Warn("external schema parse failed", "path", path, "error", err)
		return nil, false
	}
	schema, ok := v.(*parser.Schema)
	if !ok || !isLikelySchema(schema) {
		l.log.Warn("external file did not resolve to a schema", "path", path)
		return nil, false
	}

	name := nameFromSourcePath(path)
	l.res.AddExternalNameCandidate(schema, name)
	l.res.RegisterExternalSourcePath(path, schema)
	return schema, true
}

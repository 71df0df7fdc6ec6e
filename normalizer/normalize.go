package normalizer

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Normalize runs the full pipeline: bundled document + loaded-path list
// -> resolver pre-registration -> hoist external roots -> local-ref rewrite
// -> inline-dedupe fixpoint -> discriminator+source-template pass (run
// twice) -> final dedupe sweep.
//
// A nil LoadedPaths(), or a document that isn't recognizable as OpenAPI 3.x
// (OpenAPI field not starting with "3."), is treated as "nothing to
// normalize" and makes this a no-op.
func Normalize(ctx context.Context, bp BundledParser, opts ...Option) error {
	cfg := ApplyOptions(ParserOptions{}, opts...)
	log := cfg.logger()

	doc := bp.Document()
	if doc == nil {
		return nil
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil
	}
	paths := bp.LoadedPaths()
	if paths == nil {
		return nil
	}

	res := newResolver()
	reg := newRegistry(doc)
	ld := newLoader(res, bp, log)

	if err := prewarm(ctx, paths, ld, cfg); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("prewarm encountered an error", "error", err)
	}

	hoistDeclaredExternals(ctx, doc, bp, res, ld, reg)
	rewriteLocalRefs(doc, res, reg)
	collapseInlineExternals(doc, res, reg, cfg.MaxFixpointIterations)

	for i := 0; i < 2; i++ {
		rewriteDiscriminatorMappings(ctx, doc, res, reg, ld)
		reconstructSourceTemplates(ctx, res, reg, ld)
	}

	finalDedupe(doc, reg)

	return nil
}

// prewarm loads every non-root path in
// paths through a bounded worker pool before the strictly-ordered passes
// begin. Parse failures are reported through EnsureExternalSchemaForSourcePath's
// own warn-and-swallow behavior; prewarm's error return only ever carries
// context cancellation.
func prewarm(ctx context.Context, paths []string, ld *loader, cfg ParserOptions) error {
	if len(paths) <= 1 {
		return nil
	}

	limit := cfg.PrewarmConcurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, p := range paths[1:] {
		path := p
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			ld.EnsureExternalSchemaForSourcePath(gctx, path)
			return nil
		})
	}
	return g.Wait()
}

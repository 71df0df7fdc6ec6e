// Package parser defines the typed OpenAPI 3.x document model that a bundler
// produces and normalizer.Normalize consumes.
//
// It covers OAS 3.0 through 3.2: Info, Servers, Paths, Operations, Parameters,
// Responses, and the JSON Schema Draft 2020-12 keywords OAS 3.1+ schemas use
// (unevaluatedProperties/unevaluatedItems, contentEncoding/contentMediaType/
// contentSchema, prefixItems, contains, propertyNames, dependentSchemas,
// $defs). Every struct preserves unrecognized fields, including "x-"
// specification extensions, in an Extra map so round-tripping through YAML
// or JSON never silently drops data.
//
// # Structural Equality
//
// Schema.Equals compares two schemas for structural equality, including
// through $ref-free cycles, and is used by normalizer to recognize a schema
// that is already a bare $ref (with only an overriding summary/description),
// which ends the inline-dedupe pass's fixpoint loop.
//
// # Logging
//
// Logger is a minimal structured-logging interface; NopLogger discards
// everything, SlogAdapter wraps a *slog.Logger, and ContextLogger carries a
// context.Context alongside a Logger and delegates every call to it.
//
// # Related Packages
//
// After a bundler produces an *OAS3Document from this package's types, use:
//   - [github.com/oasnorm/oasnorm/normalizer] - Hoist and rewrite schemas into components.schemas after bundling
package parser

// Package oasnorm provides a post-bundling normalizer for OpenAPI 3.x
// documents, along with the typed document model it normalizes.
//
// A separate reference-resolving bundler is expected to have already inlined
// every $ref target of a document into one tree. The normalizer then rewrites
// that tree so every reusable schema lives under #/components/schemas/<Name>
// and every schema-position reference points there by a component pointer
// rather than a deep document pointer or a file-relative path.
//
// # Overview
//
// The module consists of two packages:
//
//   - parser: The typed OAS 3.x document model a bundler produces and Normalize consumes
//   - normalizer: Hoist and rewrite schemas into components.schemas after bundling
//
// # Installation
//
//	go get github.com/oasnorm/oasnorm
//
// # Quick Start
//
//	import (
//		"github.com/oasnorm/oasnorm/normalizer"
//		"github.com/oasnorm/oasnorm/parser"
//	)
//
//	var doc parser.OAS3Document
//	if err := yaml.Unmarshal(bundled, &doc); err != nil {
//		log.Fatal(err)
//	}
//
//	bp := normalizer.NewStaticBundle(&doc, loadedPaths, os.ReadFile)
//	if err := normalizer.Normalize(context.Background(), bp); err != nil {
//		log.Fatal(err)
//	}
//
// loadedPaths is the list of source file paths the bundler read from, root
// first; normalizer uses it to recognize which hoisted schemas originated
// from the same external file.
//
// # Normalizer Package
//
// The normalizer package is the core of this module. It hoists every reusable
// schema an upstream bundler inlined into one document tree back into
// components.schemas, resolving external-file identity via a fingerprint index
// so that clones introduced by bundling collapse back to a single component.
//
// See the normalizer package documentation for the full pass pipeline.
//
// # Parser Package
//
// The parser package defines the typed OAS 3.x document model - Info,
// Paths, Operations, Parameters, Responses, and JSON-Schema-Draft-2020-12
// Schema fields - that a bundler populates and normalizer walks. It also
// provides the Logger interface normalizer's pipeline logs through.
//
// # License
//
// This module is released under the MIT License. See the LICENSE file in the
// repository for full details.
package oasnorm

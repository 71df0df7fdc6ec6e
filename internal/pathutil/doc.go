// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides reference-prefix builders for OpenAPI component
// pointers.
//
// # Reference Builders
//
//	ref := pathutil.SchemaRef("Pet")  // "#/components/schemas/Pet"
//
// This uses simple string concatenation which Go optimizes well for two
// operands, avoiding the overhead of fmt.Sprintf.
package pathutil

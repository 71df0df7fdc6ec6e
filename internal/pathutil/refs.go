// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

// RefPrefixSchemas is the components.schemas JSON Pointer prefix (OAS 3.x).
const RefPrefixSchemas = "#/components/schemas/"

// SchemaRef builds "#/components/schemas/{name}" (OAS 3.x).
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

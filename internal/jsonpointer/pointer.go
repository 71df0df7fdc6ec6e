// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package jsonpointer provides RFC 6901 JSON-Pointer token encoding and
// component-pointer helpers used by the normalizer to build and inspect
// "#/components/schemas/<Name>"-shaped references.
package jsonpointer

import (
	"net/url"
	"strconv"
	"strings"

	gojsonpointer "github.com/go-openapi/jsonpointer"

	"github.com/oasnorm/oasnorm/internal/pathutil"
)

const componentSchemasPrefix = pathutil.RefPrefixSchemas

// Encode escapes a single JSON-Pointer reference token per RFC 6901:
// "~" becomes "~0" and "/" becomes "~1". The order matters — "~" must be
// escaped first or a literal "/" in the input would be double-escaped.
func Encode(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}

// Decode reverses Encode for a single already-escaped token. It first
// URI-decodes the token (keeping it as is when URI-decoding fails), then
// delegates the RFC 6901 unescape to go-openapi/jsonpointer's tokenizer
// against a synthetic one-token pointer. On any parse failure it falls back
// to the raw, undecoded token.
func Decode(token string) string {
	raw := token
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	p, err := gojsonpointer.New("/" + token)
	if err != nil {
		return raw
	}
	toks := p.DecodedTokens()
	if len(toks) != 1 {
		return raw
	}
	return toks[0]
}

// Split decodes a full local pointer ("#/a/b~1c" or "/a/b~1c") into its
// unescaped tokens. An empty or root pointer ("", "#", "/") yields an empty
// slice.
func Split(pointer string) ([]string, bool) {
	p := strings.TrimPrefix(pointer, "#")
	if p == "" || p == "/" {
		return nil, true
	}
	ptr, err := gojsonpointer.New(p)
	if err != nil {
		return nil, false
	}
	return ptr.DecodedTokens(), true
}

// Join builds a local pointer string from already-decoded tokens, encoding
// each token along the way.
func Join(tokens ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Encode(t))
	}
	return b.String()
}

// SchemaRef builds "#/components/schemas/<Name>", encoding the name.
func SchemaRef(name string) string {
	return pathutil.SchemaRef(Encode(name))
}

// IsComponentSchemaRoot reports whether pointer matches exactly
// "#/components/schemas/<one-token>", returning the decoded name if so.
func IsComponentSchemaRoot(pointer string) (name string, ok bool) {
	if !strings.HasPrefix(pointer, componentSchemasPrefix) {
		return "", false
	}
	rest := pointer[len(componentSchemasPrefix):]
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return Decode(rest), true
}

// IsIndex reports whether token is a valid array index (all digits).
func IsIndex(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

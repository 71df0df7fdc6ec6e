package normalizer

import (
	"github.com/oasnorm/oasnorm/internal/jsonpointer"
	"github.com/oasnorm/oasnorm/parser"
)

// resolveLocal resolves a "#/..." pointer against root, returning the
// *parser.Schema at that location. Only schema-shaped resolution is
// supported: the normalizer only ever needs to resolve $refs that appear in
// schema context, so every well-formed local ref this pass
// encounters bottoms out at a Schema field somewhere in the document tree.
func resolveLocal(root *parser.OAS3Document, pointer string) (*parser.Schema, bool) {
	tokens, ok := jsonpointer.Split(pointer)
	if !ok || len(tokens) == 0 {
		return nil, false
	}

	var cur any = root
	for _, tok := range tokens {
		next, ok := descend(cur, tok)
		if !ok {
			return nil, false
		}
		cur = next
	}

	schema, ok := cur.(*parser.Schema)
	if !ok || schema == nil {
		return nil, false
	}
	return schema, true
}

//nolint:cyclop // one dispatch table over every local-ref-reachable node type
func descend(cur any, tok string) (any, bool) {
	switch v := cur.(type) {
	case *parser.OAS3Document:
		switch tok {
		case "paths":
			return v.Paths, true
		case "components":
			return v.Components, true
		case "webhooks":
			return v.Webhooks, true
		}
		return nil, false

	case parser.Paths:
		pi, ok := v[tok]
		return pi, ok

	case *parser.Components:
		switch tok {
		case "schemas":
			return v.Schemas, true
		case "responses":
			return v.Responses, true
		case "parameters":
			return v.Parameters, true
		case "requestBodies":
			return v.RequestBodies, true
		case "headers":
			return v.Headers, true
		case "pathItems":
			return v.PathItems, true
		}
		return nil, false

	case map[string]*parser.Schema:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.Response:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.Parameter:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.RequestBody:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.Header:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.PathItem:
		s, ok := v[tok]
		return s, ok
	case map[string]*parser.MediaType:
		s, ok := v[tok]
		return s, ok

	case []*parser.Parameter:
		idx, ok := jsonpointer.IsIndex(tok)
		if !ok || idx < 0 || idx >= len(v) {
			return nil, false
		}
		return v[idx], true

	case []*parser.Schema:
		idx, ok := jsonpointer.IsIndex(tok)
		if !ok || idx < 0 || idx >= len(v) {
			return nil, false
		}
		return v[idx], true

	case *parser.PathItem:
		switch tok {
		case "get":
			return v.Get, v.Get != nil
		case "put":
			return v.Put, v.Put != nil
		case "post":
			return v.Post, v.Post != nil
		case "delete":
			return v.Delete, v.Delete != nil
		case "options":
			return v.Options, v.Options != nil
		case "head":
			return v.Head, v.Head != nil
		case "patch":
			return v.Patch, v.Patch != nil
		case "trace":
			return v.Trace, v.Trace != nil
		case "query":
			return v.Query, v.Query != nil
		case "parameters":
			return v.Parameters, true
		}
		return nil, false

	case *parser.Operation:
		switch tok {
		case "parameters":
			return v.Parameters, true
		case "requestBody":
			return v.RequestBody, v.RequestBody != nil
		case "responses":
			return v.Responses, v.Responses != nil
		case "callbacks":
			return v.Callbacks, true
		}
		return nil, false

	case *parser.Responses:
		if tok == "default" {
			return v.Default, v.Default != nil
		}
		r, ok := v.Codes[tok]
		return r, ok

	case *parser.Response:
		switch tok {
		case "content":
			return v.Content, true
		case "headers":
			return v.Headers, true
		}
		return nil, false

	case *parser.RequestBody:
		if tok == "content" {
			return v.Content, true
		}
		return nil, false

	case *parser.MediaType:
		if tok == "schema" {
			return v.Schema, v.Schema != nil
		}
		return nil, false

	case *parser.Parameter:
		if tok == "schema" {
			return v.Schema, v.Schema != nil
		}
		return nil, false

	case *parser.Header:
		if tok == "schema" {
			return v.Schema, v.Schema != nil
		}
		return nil, false

	case map[string]*parser.Callback:
		s, ok := v[tok]
		return s, ok
	case parser.Callback:
		pi, ok := v[tok]
		return pi, ok

	case *parser.Schema:
		return descendSchema(v, tok)
	}
	return nil, false
}

//nolint:cyclop // one dispatch table over every schema-context key
func descendSchema(s *parser.Schema, tok string) (any, bool) {
	switch tok {
	case "properties":
		return s.Properties, true
	case "patternProperties":
		return s.PatternProperties, true
	case "dependentSchemas":
		return s.DependentSchemas, true
	case "$defs", "definitions":
		return s.Defs, true
	case "allOf":
		return s.AllOf, true
	case "anyOf":
		return s.AnyOf, true
	case "oneOf":
		return s.OneOf, true
	case "not":
		return s.Not, s.Not != nil
	case "if":
		return s.If, s.If != nil
	case "then":
		return s.Then, s.Then != nil
	case "else":
		return s.Else, s.Else != nil
	case "contains":
		return s.Contains, s.Contains != nil
	case "propertyNames":
		return s.PropertyNames, s.PropertyNames != nil
	case "prefixItems":
		return s.PrefixItems, true
	case "items":
		sc, ok := s.Items.(*parser.Schema)
		return sc, ok
	case "additionalProperties":
		sc, ok := s.AdditionalProperties.(*parser.Schema)
		return sc, ok
	case "additionalItems":
		sc, ok := s.AdditionalItems.(*parser.Schema)
		return sc, ok
	}
	return nil, false
}

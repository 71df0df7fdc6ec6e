package parser

// This file contains helper functions for comparing OAS-typed fields whose
// Go representation is interface{}/any because the field's possible types
// vary by OAS/JSON Schema dialect.

import (
	"maps"
	"reflect"
	"slices"
)

// equalStringSlice compares two string slices for equality.
// Order-sensitive comparison. Nil and empty slices are considered equal.
func equalStringSlice(a, b []string) bool {
	return slices.Equal(a, b)
}

// equalAnySlice compares two []any slices for equality.
// Uses reflect.DeepEqual for element comparison. Nil and empty slices are considered equal.
func equalAnySlice(a, b []any) bool {
	return slices.EqualFunc(a, b, reflect.DeepEqual)
}

// equalMapStringAny compares two map[string]any maps for equality.
// Uses reflect.DeepEqual for value comparison. Nil and empty maps are considered equal.
func equalMapStringAny(a, b map[string]any) bool {
	return maps.EqualFunc(a, b, reflect.DeepEqual)
}

// equalMapStringBool compares two map[string]bool maps for equality.
// Used for Schema.Vocabulary. Nil and empty maps are considered equal.
func equalMapStringBool(a, b map[string]bool) bool {
	return maps.Equal(a, b)
}

// equalMapStringStringSlice compares two map[string][]string maps for equality.
// Used for Schema.DependentRequired. Nil and empty maps are considered equal.
func equalMapStringStringSlice(a, b map[string][]string) bool {
	return maps.EqualFunc(a, b, slices.Equal)
}

// equalSchemaType handles Schema.Type, which can be a string or a []string/[]any
// (OAS 3.1+ type arrays like ["string", "null"]).
func equalSchemaType(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		if !ok {
			return false
		}
		return ta == tb
	case []string:
		tb, ok := b.([]string)
		if !ok {
			return false
		}
		return equalStringSlice(ta, tb)
	case []any:
		tb, ok := b.([]any)
		if !ok {
			return false
		}
		return equalAnySlice(ta, tb)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// equalSchemaOrBool handles fields that can be *Schema or bool: AdditionalItems,
// AdditionalProperties, UnevaluatedItems, UnevaluatedProperties.
func equalSchemaOrBool(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case bool:
		tb, ok := b.(bool)
		if !ok {
			return false
		}
		return ta == tb
	case *Schema:
		tb, ok := b.(*Schema)
		if !ok {
			return false
		}
		return ta.Equals(tb)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// equalBoolOrNumber handles ExclusiveMinimum/ExclusiveMaximum: bool in OAS 3.0,
// a number in JSON Schema Draft 2020-12 (OAS 3.1+).
func equalBoolOrNumber(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case bool:
		tb, ok := b.(bool)
		if !ok {
			return false
		}
		return ta == tb
	case float64:
		tb, ok := b.(float64)
		if !ok {
			return false
		}
		return ta == tb
	case int:
		tb, ok := b.(int)
		if !ok {
			return false
		}
		return ta == tb
	case int64:
		tb, ok := b.(int64)
		if !ok {
			return false
		}
		return ta == tb
	default:
		return reflect.DeepEqual(a, b)
	}
}

// equalJSONValue compares arbitrary JSON-compatible values recursively.
// Used for Default, Example, and Const, which can hold any JSON value.
func equalJSONValue(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch ta := a.(type) {
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	case float64:
		tb, ok := b.(float64)
		return ok && ta == tb
	case int:
		tb, ok := b.(int)
		return ok && ta == tb
	case int64:
		tb, ok := b.(int64)
		return ok && ta == tb
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !equalJSONValue(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		tb, ok := b.(map[string]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for k, va := range ta {
			vb, exists := tb[k]
			if !exists || !equalJSONValue(va, vb) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

package normalizer

import (
	"path"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ignoredPointerTokens are JSON-Pointer tokens that never make a good
// component name on their own.
var ignoredPointerTokens = map[string]bool{
	"allOf": true, "anyOf": true, "components": true, "content": true,
	"items": true, "oneOf": true, "paths": true, "get": true, "put": true,
	"post": true, "patch": true, "delete": true, "head": true, "trace": true,
	"options": true, "requestBody": true, "responses": true, "schema": true,
	"schemas": true,
}

// nameFromSourcePath derives a candidate component name from an external
// file's path: basename, extension stripped, anything outside
// [A-Za-z0-9._-] replaced with '-'.
func nameFromSourcePath(sourcePath string) string {
	base := path.Base(sourcePath)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "Schema"
	}
	return b.String()
}

// nameFromPointer derives a candidate component name by scanning a JSON
// Pointer's tokens from the last back to the first, skipping tokens that
// are purely digits, contain '/', begin with "application/", or are in the
// ignored-tokens set. The first acceptable token is PascalCased.
func nameFromPointer(tokens []string) string {
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if tok == "" {
			continue
		}
		if isAllDigits(tok) {
			continue
		}
		if strings.Contains(tok, "/") {
			continue
		}
		if strings.HasPrefix(tok, "application/") {
			continue
		}
		if ignoredPointerTokens[tok] {
			continue
		}
		return pascalCase(tok)
	}
	return "Schema"
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// pascalCase normalizes a candidate name to PascalCase: strip a trailing
// extension, replace non-alphanumerics with spaces, split into words and
// upper-case the first letter of each with golang.org/x/text/cases
// (Unicode-correct, unlike the deprecated strings.Title) while keeping the
// remaining letters as they are, then join with no separator. An empty
// result becomes "Schema".
func pascalCase(s string) string {
	if ext := path.Ext(s); ext != "" && ext != s {
		s = strings.TrimSuffix(s, ext)
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	fields := strings.Fields(b.String())
	if len(fields) == 0 {
		return "Schema"
	}
	var out strings.Builder
	for _, f := range fields {
		out.WriteString(titleCaser.String(f))
	}
	result := out.String()
	if result == "" {
		return "Schema"
	}
	return result
}

// nameSet tracks the live component-name namespace and hands out
// collision-free names.
type nameSet struct {
	used map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{used: make(map[string]bool)}
}

// seed marks name as already taken without going through Unique, used when
// initializing from a document's existing components.schemas keys.
func (n *nameSet) seed(name string) {
	n.used[name] = true
}

// Unique returns preferred if free, otherwise preferred with "_2", "_3", ...
// appended until free, registering whichever name is returned.
func (n *nameSet) Unique(preferred string) string {
	if !n.used[preferred] {
		n.used[preferred] = true
		return preferred
	}
	for i := 2; ; i++ {
		candidate := preferred + "_" + strconv.Itoa(i)
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}

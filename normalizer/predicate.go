package normalizer

import (
	"regexp"
	"strings"

	"github.com/oasnorm/oasnorm/parser"
)

var uriSchemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// isExternalFileReference reports whether s is an external file reference:
// not a URI with a scheme, not starting with "#/", and ending with
// .yaml/.yml/.json (optionally followed by a "#fragment").
func isExternalFileReference(s string) bool {
	if uriSchemeRe.MatchString(s) {
		return false
	}
	if strings.HasPrefix(s, "#/") {
		return false
	}
	path := s
	if i := strings.IndexByte(s, '#'); i >= 0 {
		path = s[:i]
	}
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

// isLikelySchema gates fingerprinting and external-candidate registration to
// records that plausibly represent a schema, avoiding accidental candidacy
// for the many other typed records that also happen to be *parser.Schema
// containers with no distinguishing content (e.g. an empty stub).
func isLikelySchema(s *parser.Schema) bool {
	if s == nil {
		return false
	}
	switch {
	case s.Ref != "":
	case s.AdditionalProperties != nil:
	case len(s.AllOf) > 0:
	case len(s.AnyOf) > 0:
	case s.Const != nil:
	case s.Discriminator != nil:
	case len(s.Enum) > 0:
	case s.Format != "":
	case s.Items != nil:
	case s.Not != nil:
	case len(s.OneOf) > 0:
	case len(s.PatternProperties) > 0:
	case len(s.Properties) > 0:
	case len(s.Required) > 0:
	case s.Type != nil:
	default:
		return false
	}
	return true
}

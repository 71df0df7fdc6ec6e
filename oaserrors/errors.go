// Package oaserrors provides structured error types for oasnorm.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and structural issues
//
// # Usage with errors.Is
//
//	bp := normalizer.NewStaticBundle(&doc, loadedPaths, os.ReadFile)
//	if _, err := bp.Parse(ctx, path, normalizer.ParserOptions{}); err != nil {
//	    var parseErr *oaserrors.ParseError
//	    if errors.As(err, &parseErr) {
//	        // Handle the failed external file
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// ErrParse indicates a parsing failure occurred. Matches any *ParseError via
// errors.Is().
var ErrParse = errors.New("parse error")

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Package oaserrors provides structured error types for the oasnorm library.
//
// Import path: github.com/oasnorm/oasnorm/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to recognize a failed external file load reported by a
// BundledParser such as normalizer.StaticBundle. normalizer.Normalize itself
// logs such failures and does not return them.
//
// # Error Types
//
//   - [ParseError]: a $ref-target file failed to decode into a schema
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	if _, err := bundle.Parse(ctx, path, normalizer.ParserOptions{}); err != nil {
//	    if errors.Is(err, oaserrors.ErrParse) {
//	        // Handle parse error
//	    }
//	}
//
// Extract error details with errors.As():
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Printf("failed to load %s: %v\n", parseErr.Path, parseErr.Cause)
//	}
//
// # Error Chaining
//
// ParseError supports error chaining via the Cause field and Unwrap() method,
// so the underlying I/O or decode failure remains reachable through the
// standard error chain:
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    if errors.Is(parseErr.Cause, os.ErrNotExist) {
//	        // The referenced file doesn't exist
//	    }
//	}
package oaserrors

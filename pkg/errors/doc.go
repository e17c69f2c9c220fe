// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Definition and validation failures raised by the grammar compiler and the
// argument matcher are typed errors that implement Structurer, so callers at
// the edges (CLI, HTTP service) can report them uniformly:
//
//	se := errors.AsStructured(err)
//	slog.Error("match failed", "code", se.Code, "context", se.Context)
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidValue,
//	    "invalid value for -integer_value",
//	    parseErr,
//	    map[string]interface{}{
//	        "parameter": "integer_value",
//	        "value": raw,
//	    },
//	)
package errors

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeMethodNotAllowed indicates the HTTP method is not allowed for the resource.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Definition error codes. These are raised while compiling a command
// definition and always indicate a defect in the definition itself.
const (
	// ErrCodeInvalidDefinition indicates a structurally invalid definition tree.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
	// ErrCodeDuplicateAlias indicates two parameters or topics share an alias.
	ErrCodeDuplicateAlias ErrorCode = "DUPLICATE_ALIAS"
	// ErrCodeReservedAlias indicates an alias shadows a reserved parameter.
	ErrCodeReservedAlias ErrorCode = "RESERVED_ALIAS"
	// ErrCodeInvalidArity indicates a malformed or inconsistent arity expression.
	ErrCodeInvalidArity ErrorCode = "INVALID_ARITY"
	// ErrCodeInvalidDefault indicates a default value that fails coercion or
	// conflicts with the required attribute.
	ErrCodeInvalidDefault ErrorCode = "INVALID_DEFAULT"
	// ErrCodeInvalidRule indicates a validation regex or validator reference that
	// cannot be resolved.
	ErrCodeInvalidRule ErrorCode = "INVALID_VALIDATION_RULE"
	// ErrCodeUnknownTopic indicates a parameter references an undeclared topic.
	ErrCodeUnknownTopic ErrorCode = "UNKNOWN_TOPIC"
)

// Validation error codes. These are raised while matching a token list
// against a compiled grammar and are recoverable by the caller.
const (
	// ErrCodeUnknownOption indicates an option token that matches no alias.
	ErrCodeUnknownOption ErrorCode = "UNKNOWN_OPTION"
	// ErrCodeMissingRequired indicates one or more required parameters were omitted.
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	// ErrCodeTooFewValues indicates fewer values than the arity minimum.
	ErrCodeTooFewValues ErrorCode = "TOO_FEW_VALUES"
	// ErrCodeTooManyValues indicates more values than the arity maximum.
	ErrCodeTooManyValues ErrorCode = "TOO_MANY_VALUES"
	// ErrCodeInvalidValue indicates a value rejected by coercion or validation.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"
	// ErrCodeDuplicateOption indicates a non-repeatable parameter was given twice.
	ErrCodeDuplicateOption ErrorCode = "DUPLICATE_OPTION"
	// ErrCodeUnexpectedFiles indicates file arguments given to a command that takes none.
	ErrCodeUnexpectedFiles ErrorCode = "UNEXPECTED_FILES"
	// ErrCodeFileCount indicates a file argument count outside the declared bounds.
	ErrCodeFileCount ErrorCode = "FILE_COUNT"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// Structurer is implemented by typed errors that can describe themselves
// as a StructuredError.
type Structurer interface {
	Structured() *StructuredError
}

// AsStructured extracts structured information from err. Typed errors
// implementing Structurer are converted, StructuredErrors are returned as-is,
// and anything else is wrapped as ErrCodeInternal.
func AsStructured(err error) *StructuredError {
	if err == nil {
		return nil
	}
	var s Structurer
	if stderrors.As(err, &s) {
		return s.Structured()
	}
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se
	}
	return Wrap(ErrCodeInternal, "unexpected error", err)
}

// CodeOf returns the error code carried by err, or an empty code when err is nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsStructured(err).Code
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

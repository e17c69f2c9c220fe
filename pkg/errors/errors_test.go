package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("strconv.ParseInt: parsing \"abc\": invalid syntax")
	ctx := map[string]interface{}{
		"parameter": "integer_value",
		"value":     "abc",
	}

	err := WrapWithContext(ErrCodeInvalidValue, "invalid value for -integer_value", cause, ctx)

	if err.Code != ErrCodeInvalidValue {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidValue, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["parameter"] != "integer_value" {
		t.Errorf("expected parameter to be integer_value")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	unwrapped := err.Unwrap()
	if !errors.Is(unwrapped, cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		ErrCodeNotFound,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeInvalidRequest,
		ErrCodeUnavailable,
		ErrCodeInvalidDefinition,
		ErrCodeDuplicateAlias,
		ErrCodeReservedAlias,
		ErrCodeInvalidArity,
		ErrCodeInvalidDefault,
		ErrCodeInvalidRule,
		ErrCodeUnknownTopic,
		ErrCodeUnknownOption,
		ErrCodeMissingRequired,
		ErrCodeTooFewValues,
		ErrCodeTooManyValues,
		ErrCodeInvalidValue,
		ErrCodeDuplicateOption,
		ErrCodeUnexpectedFiles,
		ErrCodeFileCount,
	}

	for _, code := range codes {
		if string(code) == "" {
			t.Errorf("error code should not be empty: %v", code)
		}
	}
}

type typedError struct {
	alias string
}

func (e *typedError) Error() string { return "duplicate alias " + e.alias }

func (e *typedError) Structured() *StructuredError {
	return NewWithContext(ErrCodeDuplicateAlias, e.Error(), map[string]any{"alias": e.alias})
}

func TestAsStructured(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
		wantNil  bool
	}{
		{
			name:    "nil error",
			err:     nil,
			wantNil: true,
		},
		{
			name:     "structured error",
			err:      New(ErrCodeUnknownOption, "unknown option -x"),
			wantCode: ErrCodeUnknownOption,
		},
		{
			name:     "typed error",
			err:      &typedError{alias: "val"},
			wantCode: ErrCodeDuplicateAlias,
		},
		{
			name:     "wrapped typed error",
			err:      fmt.Errorf("compile: %w", &typedError{alias: "val"}),
			wantCode: ErrCodeDuplicateAlias,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AsStructured(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
			if !HasCode(tt.err, tt.wantCode) {
				t.Errorf("HasCode(%v, %s) = false", tt.err, tt.wantCode)
			}
		})
	}
}

func TestCodeOfNil(t *testing.T) {
	if code := CodeOf(nil); code != "" {
		t.Errorf("expected empty code, got %s", code)
	}
	if HasCode(nil, ErrCodeInternal) {
		t.Error("HasCode(nil) should be false")
	}
}

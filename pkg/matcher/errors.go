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

package matcher

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/clspec/pkg/errors"
)

// ValidationError reports a token list that does not satisfy a grammar.
// The fields that apply to the failure are set; the rest are zero.
type ValidationError struct {
	Code    errors.ErrorCode
	Message string

	// Parameter is the canonical name of the offending parameter.
	Parameter string

	// Token is the offending token as given.
	Token string

	// Position is the index of Token in the token list, or -1.
	Position int

	// Value is the raw value rejected by Rule.
	Value string

	// Rule describes the validation rule that rejected Value.
	Rule string

	// Missing lists every absent required parameter.
	Missing []string

	// Count is the offending number of values or files.
	Count int

	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error [%s]: %s", e.Code, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Structured implements errors.Structurer.
func (e *ValidationError) Structured() *errors.StructuredError {
	ctx := map[string]any{}
	if e.Parameter != "" {
		ctx["parameter"] = e.Parameter
	}
	if e.Token != "" {
		ctx["token"] = e.Token
	}
	if e.Position >= 0 {
		ctx["position"] = e.Position
	}
	if e.Value != "" {
		ctx["value"] = e.Value
	}
	if e.Rule != "" {
		ctx["rule"] = e.Rule
	}
	if len(e.Missing) > 0 {
		ctx["missing"] = e.Missing
	}
	if e.Count > 0 {
		ctx["count"] = e.Count
	}
	return errors.WrapWithContext(e.Code, e.Message, e.Cause, ctx)
}

func unknownOption(tok string, pos int) *ValidationError {
	return &ValidationError{
		Code:     errors.ErrCodeUnknownOption,
		Message:  fmt.Sprintf("unknown option %q", tok),
		Token:    tok,
		Position: pos,
	}
}

func duplicateOption(name, tok string, pos int) *ValidationError {
	return &ValidationError{
		Code:      errors.ErrCodeDuplicateOption,
		Message:   fmt.Sprintf("option %q given more than once", name),
		Parameter: name,
		Token:     tok,
		Position:  pos,
	}
}

func missingRequired(names []string) *ValidationError {
	return &ValidationError{
		Code:     errors.ErrCodeMissingRequired,
		Message:  fmt.Sprintf("missing required parameters: %s", strings.Join(names, ", ")),
		Position: -1,
		Missing:  names,
	}
}

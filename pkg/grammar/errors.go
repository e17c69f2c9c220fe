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

package grammar

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/clspec/pkg/errors"
)

// DefinitionError reports a defect in a command definition. Compilation
// stops at the first one and returns no grammar.
type DefinitionError struct {
	Code    errors.ErrorCode
	Message string

	// Node locates the offending definition node, e.g. "parameters[2]".
	Node string

	// Parameter is the canonical name of the offending parameter or topic.
	Parameter string

	// Alias is the colliding or rejected alias.
	Alias string

	// Owners names both declarations sharing a duplicate alias, in
	// declaration order, e.g. ["parameter first", "topic second"].
	Owners []string

	Cause error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "definition error [%s]", e.Code)
	if e.Node != "" {
		fmt.Fprintf(&b, " at %s", e.Node)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// Structured implements errors.Structurer.
func (e *DefinitionError) Structured() *errors.StructuredError {
	ctx := map[string]any{}
	if e.Node != "" {
		ctx["node"] = e.Node
	}
	if e.Parameter != "" {
		ctx["parameter"] = e.Parameter
	}
	if e.Alias != "" {
		ctx["alias"] = e.Alias
	}
	if len(e.Owners) > 0 {
		ctx["owners"] = e.Owners
	}
	return errors.WrapWithContext(e.Code, e.Message, e.Cause, ctx)
}

func defError(code errors.ErrorCode, node, name, format string, args ...any) *DefinitionError {
	return &DefinitionError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Node:      node,
		Parameter: name,
	}
}

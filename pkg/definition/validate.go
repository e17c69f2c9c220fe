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

package definition

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/validator"
)

// Validate checks the structure of a definition tree: every node has a name,
// every parameter has a supported kind, and file bounds are non-negative.
// Semantic checks (alias uniqueness, arity, defaults) belong to the compiler.
// The returned error is a *errors.StructuredError with code INVALID_DEFINITION.
func Validate(c *Command) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidDefinition, "definition is nil")
	}

	if c.MinFiles != nil && *c.MinFiles < 0 {
		return invalid("command", "min-files must not be negative, got %d", *c.MinFiles)
	}
	if c.MaxFiles != nil && *c.MaxFiles < 0 {
		return invalid("command", "max-files must not be negative, got %d", *c.MaxFiles)
	}

	for i, t := range c.Topics {
		if strings.TrimSpace(t.Name) == "" {
			return invalid(TopicNode(i), "topic name is empty")
		}
	}

	for i, p := range c.Parameters {
		node := ParameterNode(i)
		if strings.TrimSpace(p.Name) == "" {
			return invalid(node, "parameter name is empty")
		}
		if p.Kind == "" {
			return invalid(node, "parameter %q has no kind, supported values: %v", p.Name, validator.SupportedKinds())
		}
		if !p.Kind.IsValid() {
			return invalid(node, "parameter %q has invalid kind %q, supported values: %v", p.Name, p.Kind, validator.SupportedKinds())
		}
	}

	return nil
}

// TopicNode names the i-th topic node in error context.
func TopicNode(i int) string {
	return fmt.Sprintf("topics[%d]", i)
}

// ParameterNode names the i-th parameter node in error context.
func ParameterNode(i int) string {
	return fmt.Sprintf("parameters[%d]", i)
}

func invalid(node, format string, args ...any) error {
	return errors.NewWithContext(errors.ErrCodeInvalidDefinition,
		fmt.Sprintf(format, args...),
		map[string]any{"node": node})
}

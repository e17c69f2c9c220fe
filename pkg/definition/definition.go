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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NVIDIA/clspec/pkg/header"
	"github.com/NVIDIA/clspec/pkg/validator"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a definition: an optional header and the
// command spec.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	// Spec is the command definition.
	Spec *Command `json:"spec" yaml:"spec"`
}

// Command is the root of the definition tree.
type Command struct {
	// Name is the program name shown in generated usage text.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Usage replaces the generated usage line when set.
	Usage string `json:"usage,omitempty" yaml:"usage,omitempty"`

	// AllowFiles permits positional arguments.
	AllowFiles bool `json:"allow-files,omitempty" yaml:"allow-files,omitempty"`

	// MinFiles and MaxFiles bound the positional argument count. Nil means
	// no bound.
	MinFiles *int `json:"min-files,omitempty" yaml:"min-files,omitempty"`
	MaxFiles *int `json:"max-files,omitempty" yaml:"max-files,omitempty"`

	// CaseInsensitive makes alias matching ignore case.
	CaseInsensitive bool `json:"case-insensitive,omitempty" yaml:"case-insensitive,omitempty"`

	Topics     []Topic     `json:"topics,omitempty" yaml:"topics,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Topic is a named group of parameters in help output.
type Topic struct {
	// Name is a comma separated list: the canonical name, then aliases.
	Name string `json:"name" yaml:"name"`

	// Text describes the topic.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Parameter declares one accepted parameter.
type Parameter struct {
	Kind validator.Kind `json:"kind" yaml:"kind"`

	// Name is a comma separated list: the canonical name, then aliases.
	Name string `json:"name" yaml:"name"`

	Default  *Scalar `json:"default,omitempty" yaml:"default,omitempty"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Hidden   bool    `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// Arguments is the arity expression: N, N..M, N..* or *.
	Arguments string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Multiple  bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`

	// Topic references a topic by any of its aliases.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	Usage     string `json:"usage,omitempty" yaml:"usage,omitempty"`
	ValueText string `json:"value-text,omitempty" yaml:"value-text,omitempty"`

	// HelpText wins over Text when both are present.
	HelpText string `json:"help-text,omitempty" yaml:"help-text,omitempty"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`

	ValidationRegex string `json:"validation-regex,omitempty" yaml:"validation-regex,omitempty"`
	Validator       string `json:"validator,omitempty" yaml:"validator,omitempty"`
}

// Scalar is a default value kept in its textual form. It decodes from YAML
// or JSON strings, numbers, and booleans.
type Scalar string

// String returns the textual form.
func (s Scalar) String() string {
	return string(s)
}

// Ptr returns a pointer to a Scalar holding v.
func Ptr(v string) *Scalar {
	s := Scalar(v)
	return &s
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: default must be a scalar value", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(raw, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case raw == "true", raw == "false":
		*s = Scalar(raw)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("default must be a string, number or boolean")
		}
		*s = Scalar(n.String())
	}
	return nil
}

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
	"slices"
	"strings"

	"github.com/NVIDIA/clspec/pkg/validator"
)

// Shape describes how a parameter's resolved value is structured.
type Shape int

const (
	// ShapeFlag resolves to a flag value.
	ShapeFlag Shape = iota
	// ShapeScalar resolves to a single value.
	ShapeScalar
	// ShapeSequence resolves to a sequence of values from one occurrence.
	ShapeSequence
	// ShapeRepeated resolves to one value per occurrence.
	ShapeRepeated
	// ShapeRepeatedGroups resolves to one value sequence per occurrence.
	ShapeRepeatedGroups
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeFlag:
		return "flag"
	case ShapeScalar:
		return "scalar"
	case ShapeSequence:
		return "sequence"
	case ShapeRepeated:
		return "repeated"
	case ShapeRepeatedGroups:
		return "repeated-groups"
	default:
		return "unknown"
	}
}

// Parameter is the compiled form of one declared parameter. Parameters are
// owned by their Grammar and shared by concurrent matches, so the exported
// fields must be treated as read-only. Aliases, defaults and rules are only
// reachable through accessors.
type Parameter struct {
	// Name is the canonical name.
	Name string

	aliases []string

	Kind     validator.Kind
	Arity    Arity
	Multiple bool

	defaultValue validator.Value

	Required bool
	Hidden   bool

	// Topic is the owning topic, or nil.
	Topic *Topic

	// Usage replaces the generated usage fragment when set.
	Usage string

	// ValueText replaces the type name placeholder when set.
	ValueText string

	// Help is the explicit help-text, else the body text.
	Help string

	rule validator.Rule

	index int
}

// Shape returns the structure of the parameter's resolved value.
func (p *Parameter) Shape() Shape {
	switch {
	case p.Kind == validator.KindFlag:
		return ShapeFlag
	case p.Multiple && p.Arity.IsExactlyOne():
		return ShapeRepeated
	case p.Multiple:
		return ShapeRepeatedGroups
	case p.Arity.IsExactlyOne():
		return ShapeScalar
	default:
		return ShapeSequence
	}
}

// Aliases returns every recognized alias, canonical name first.
func (p *Parameter) Aliases() []string {
	return slices.Clone(p.aliases)
}

// Default returns the shaped default value. It is the zero Value when the
// parameter declares none.
func (p *Parameter) Default() validator.Value {
	return p.defaultValue
}

// HasDefault reports whether the parameter declares a default.
func (p *Parameter) HasDefault() bool {
	return !p.defaultValue.IsNone()
}

// Rule returns the rule that coerces and validates each raw value.
func (p *Parameter) Rule() validator.Rule {
	return p.rule
}

// TakesValue reports whether the parameter consumes value tokens.
func (p *Parameter) TakesValue() bool {
	return p.Kind.TakesValue()
}

// Placeholder returns the value placeholder shown in usage text.
func (p *Parameter) Placeholder() string {
	if p.ValueText != "" {
		return p.ValueText
	}
	return p.Kind.Placeholder()
}

// Index returns the declaration position of the parameter.
func (p *Parameter) Index() int {
	return p.index
}

// Apply coerces and validates one raw value.
func (p *Parameter) Apply(raw string) (validator.Value, error) {
	return p.rule.Apply(raw)
}

// shapeValue wraps a single resolved value into the parameter's shape.
func (p *Parameter) shapeValue(v validator.Value) validator.Value {
	switch p.Shape() {
	case ShapeSequence, ShapeRepeated:
		return validator.Sequence(v)
	case ShapeRepeatedGroups:
		return validator.Sequence(validator.Sequence(v))
	default:
		return v
	}
}

// Topic is a named grouping of parameters for help output.
type Topic struct {
	// Name is the canonical name.
	Name string

	aliases []string

	// Text describes the topic.
	Text string

	parameters []*Parameter
}

// Aliases returns every recognized alias, canonical name first.
func (t *Topic) Aliases() []string {
	return slices.Clone(t.aliases)
}

// Parameters returns the topic members in declaration order.
func (t *Topic) Parameters() []*Parameter {
	out := make([]*Parameter, len(t.parameters))
	copy(out, t.parameters)
	return out
}

// splitAliases parses a comma separated name list. Entries are trimmed;
// an empty entry is reported by returning ok=false.
func splitAliases(list string) ([]string, bool) {
	parts := strings.Split(list, ",")
	aliases := make([]string, 0, len(parts))
	for _, part := range parts {
		a := strings.TrimSpace(part)
		if a == "" {
			return nil, false
		}
		aliases = append(aliases, a)
	}
	return aliases, true
}

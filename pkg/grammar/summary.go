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
	"github.com/NVIDIA/clspec/pkg/header"
	"github.com/NVIDIA/clspec/pkg/validator"
)

// Summary is a serializable description of a compiled grammar.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	Name            string             `json:"name" yaml:"name"`
	Usage           string             `json:"usage,omitempty" yaml:"usage,omitempty"`
	CaseInsensitive bool               `json:"caseInsensitive" yaml:"caseInsensitive"`
	Files           FileSummary        `json:"files" yaml:"files"`
	Topics          []TopicSummary     `json:"topics,omitempty" yaml:"topics,omitempty"`
	Parameters      []ParameterSummary `json:"parameters" yaml:"parameters"`
}

// FileSummary describes the file argument policy.
type FileSummary struct {
	Allow bool `json:"allow" yaml:"allow"`
	Min   int  `json:"min" yaml:"min"`
	Max   *int `json:"max,omitempty" yaml:"max,omitempty"`
}

// TopicSummary describes one topic.
type TopicSummary struct {
	Name       string   `json:"name" yaml:"name"`
	Aliases    []string `json:"aliases" yaml:"aliases"`
	Text       string   `json:"text,omitempty" yaml:"text,omitempty"`
	Parameters []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ParameterSummary describes one parameter.
type ParameterSummary struct {
	Name     string           `json:"name" yaml:"name"`
	Aliases  []string         `json:"aliases" yaml:"aliases"`
	Kind     validator.Kind   `json:"kind" yaml:"kind"`
	Arity    string           `json:"arity,omitempty" yaml:"arity,omitempty"`
	Multiple bool             `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Shape    string           `json:"shape" yaml:"shape"`
	Required bool             `json:"required,omitempty" yaml:"required,omitempty"`
	Hidden   bool             `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Default  *validator.Value `json:"default,omitempty" yaml:"default,omitempty"`
	Topic    string           `json:"topic,omitempty" yaml:"topic,omitempty"`
	Rule     string           `json:"rule" yaml:"rule"`
	Help     string           `json:"help,omitempty" yaml:"help,omitempty"`
}

// Summarize describes g. Hidden parameters are included and marked.
func (g *Grammar) Summarize(version string) *Summary {
	s := &Summary{
		Name:            g.name,
		Usage:           g.usage,
		CaseInsensitive: g.caseInsensitive,
		Files: FileSummary{
			Allow: g.files.Allow,
			Min:   g.files.Min,
		},
		Parameters: make([]ParameterSummary, 0, len(g.params)),
	}
	s.Init(header.KindGrammar, version)

	if g.files.HasMax {
		maxFiles := g.files.Max
		s.Files.Max = &maxFiles
	}

	for _, t := range g.topics {
		ts := TopicSummary{
			Name:    t.Name,
			Aliases: t.Aliases(),
			Text:    t.Text,
		}
		for _, p := range t.parameters {
			ts.Parameters = append(ts.Parameters, p.Name)
		}
		s.Topics = append(s.Topics, ts)
	}

	for _, p := range g.params {
		ps := ParameterSummary{
			Name:     p.Name,
			Aliases:  p.Aliases(),
			Kind:     p.Kind,
			Multiple: p.Multiple,
			Shape:    p.Shape().String(),
			Required: p.Required,
			Hidden:   p.Hidden,
			Rule:     p.Rule().String(),
			Help:     p.Help,
		}
		if p.TakesValue() {
			ps.Arity = p.Arity.String()
		}
		if p.HasDefault() {
			d := p.Default()
			ps.Default = &d
		}
		if p.Topic != nil {
			ps.Topic = p.Topic.Name
		}
		s.Parameters = append(s.Parameters, ps)
	}

	return s
}

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
	"maps"

	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/header"
	"github.com/NVIDIA/clspec/pkg/validator"
)

// CommandLine is the result of matching one token list. It is owned by the
// caller; the grammar it refers to is shared.
type CommandLine struct {
	grammar    *grammar.Grammar
	values     map[string]validator.Value
	given      map[string]bool
	files      []string
	actions    []grammar.Action
	showHidden bool
}

// Get returns the resolved value of the parameter with the given canonical
// name. ok is false when the parameter was neither given nor defaulted.
func (c *CommandLine) Get(name string) (validator.Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Lookup returns the resolved value of the parameter known by alias.
func (c *CommandLine) Lookup(alias string) (validator.Value, bool) {
	p, ok := c.grammar.Lookup(alias)
	if !ok {
		return validator.Value{}, false
	}
	return c.Get(p.Name)
}

// Given reports whether the parameter with the given canonical name
// appeared in the token list, as opposed to resolving from its default.
func (c *CommandLine) Given(name string) bool {
	return c.given[name]
}

// Values returns a copy of all resolved values keyed by canonical name.
func (c *CommandLine) Values() map[string]validator.Value {
	return maps.Clone(c.values)
}

// Files returns the file arguments in order.
func (c *CommandLine) Files() []string {
	out := make([]string, len(c.files))
	copy(out, c.files)
	return out
}

// Actions returns the reserved actions found in the token list, in order
// of first appearance.
func (c *CommandLine) Actions() []grammar.Action {
	out := make([]grammar.Action, len(c.actions))
	copy(out, c.actions)
	return out
}

// HelpRequested reports whether a reserved action short-circuited matching.
func (c *CommandLine) HelpRequested() bool {
	return len(c.actions) > 0
}

// View returns the help view to render: the first reserved action, or an
// empty Action when no help was requested.
func (c *CommandLine) View() grammar.Action {
	if len(c.actions) == 0 {
		return ""
	}
	return c.actions[0]
}

// ShowHidden reports whether the hidden meta token was given.
func (c *CommandLine) ShowHidden() bool {
	return c.showHidden
}

// Grammar returns the grammar the command line was matched against.
func (c *CommandLine) Grammar() *grammar.Grammar {
	return c.grammar
}

func (c *CommandLine) hasAction(a grammar.Action) bool {
	for _, x := range c.actions {
		if x == a {
			return true
		}
	}
	return false
}

// Report is the serializable form of a CommandLine.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Command       string                     `json:"command" yaml:"command"`
	Values        map[string]validator.Value `json:"values" yaml:"values"`
	Given         []string                   `json:"given,omitempty" yaml:"given,omitempty"`
	Files         []string                   `json:"files" yaml:"files"`
	HelpRequested bool                       `json:"helpRequested" yaml:"helpRequested"`
	View          grammar.Action             `json:"view,omitempty" yaml:"view,omitempty"`
	Actions       []grammar.Action           `json:"actions,omitempty" yaml:"actions,omitempty"`
	ShowHidden    bool                       `json:"showHidden,omitempty" yaml:"showHidden,omitempty"`
}

// Report describes c for output. Given lists parameters in declaration
// order.
func (c *CommandLine) Report(version string) *Report {
	r := &Report{
		Command:       c.grammar.Name(),
		Values:        c.Values(),
		Files:         c.Files(),
		HelpRequested: c.HelpRequested(),
		View:          c.View(),
		Actions:       c.Actions(),
		ShowHidden:    c.showHidden,
	}
	r.Init(header.KindCommandLine, version)

	for _, p := range c.grammar.Parameters() {
		if c.given[p.Name] {
			r.Given = append(r.Given, p.Name)
		}
	}
	return r
}

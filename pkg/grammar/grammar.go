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
	"golang.org/x/text/cases"

	"github.com/NVIDIA/clspec/pkg/validator"
)

// Action is a help action selected by a reserved token.
type Action string

// Reserved actions. The token for each is the option marker followed by
// the action name, e.g. -help.
const (
	ActionHelp   Action = "help"
	ActionUsage  Action = "usage"
	ActionTopics Action = "topics"
)

// String returns the action name.
func (a Action) String() string {
	return string(a)
}

// Actions returns all reserved actions.
func Actions() []Action {
	return []Action{ActionHelp, ActionUsage, ActionTopics}
}

// Token markers.
const (
	// OptionMarker prefixes parameter aliases and reserved actions.
	OptionMarker = "-"

	// MetaMarker prefixes meta tokens that alter help output.
	MetaMarker = "--"

	// EndOfOptions makes every later token a file argument.
	EndOfOptions = "--"

	// MetaHidden is the meta token name that reveals hidden parameters.
	MetaHidden = "hidden"
)

// defaultProgramName is used in usage text when neither the definition nor
// the caller names the program.
const defaultProgramName = "command"

// FilePolicy governs positional file arguments.
type FilePolicy struct {
	Allow bool
	Min   int

	// Max is meaningful only when HasMax is set.
	Max    int
	HasMax bool
}

// Allows reports whether n file arguments satisfy the policy.
func (f FilePolicy) Allows(n int) bool {
	if n == 0 {
		return f.Min == 0
	}
	if !f.Allow || n < f.Min {
		return false
	}
	return !f.HasMax || n <= f.Max
}

// Grammar is a compiled command definition. It is immutable and safe for
// concurrent use by any number of matchers.
type Grammar struct {
	name            string
	usage           string
	files           FilePolicy
	caseInsensitive bool

	params       []*Parameter
	topics       []*Topic
	aliases      map[string]*Parameter
	topicAliases map[string]*Topic
}

// Option is a functional option for Compile.
type Option func(*compiler)

// WithRegistry returns an Option that resolves validator references against
// r instead of the default registry.
func WithRegistry(r *validator.Registry) Option {
	return func(c *compiler) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithCaseInsensitive returns an Option that forces case-insensitive alias
// matching regardless of the definition.
func WithCaseInsensitive(enabled bool) Option {
	return func(c *compiler) {
		c.caseInsensitive = enabled
	}
}

// WithProgramName returns an Option that names the program in generated
// usage text when the definition does not.
func WithProgramName(name string) Option {
	return func(c *compiler) {
		c.programName = name
	}
}

// Name returns the program name used in usage text.
func (g *Grammar) Name() string {
	return g.name
}

// Usage returns the declared usage line, or an empty string when usage
// should be generated.
func (g *Grammar) Usage() string {
	return g.usage
}

// Files returns the file argument policy.
func (g *Grammar) Files() FilePolicy {
	return g.files
}

// CaseInsensitive reports whether aliases match regardless of case.
func (g *Grammar) CaseInsensitive() bool {
	return g.caseInsensitive
}

// Parameters returns all parameters in declaration order.
func (g *Grammar) Parameters() []*Parameter {
	out := make([]*Parameter, len(g.params))
	copy(out, g.params)
	return out
}

// Topics returns all topics in declaration order.
func (g *Grammar) Topics() []*Topic {
	out := make([]*Topic, len(g.topics))
	copy(out, g.topics)
	return out
}

// Lookup resolves a parameter by any of its aliases, without the option
// marker.
func (g *Grammar) Lookup(alias string) (*Parameter, bool) {
	p, ok := g.aliases[g.Key(alias)]
	return p, ok
}

// LookupTopic resolves a topic by any of its aliases.
func (g *Grammar) LookupTopic(alias string) (*Topic, bool) {
	t, ok := g.topicAliases[g.Key(alias)]
	return t, ok
}

// Action resolves a reserved action name, without the option marker.
func (g *Grammar) Action(name string) (Action, bool) {
	key := g.Key(name)
	for _, a := range Actions() {
		if key == g.Key(string(a)) {
			return a, true
		}
	}
	return "", false
}

// IsMeta reports whether name, without the meta marker, is the given meta
// token.
func (g *Grammar) IsMeta(name, meta string) bool {
	return g.Key(name) == g.Key(meta)
}

// Key normalizes an alias for lookup. Case-insensitive grammars fold case.
func (g *Grammar) Key(alias string) string {
	return foldKey(alias, g.caseInsensitive)
}

func foldKey(alias string, fold bool) string {
	if !fold {
		return alias
	}
	// Casers carry state, so each call gets its own.
	return cases.Fold().String(alias)
}

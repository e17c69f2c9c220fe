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
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/clspec/pkg/definition"
	"github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/validator"
)

// compiler carries the state of one compilation.
type compiler struct {
	registry        *validator.Registry
	caseInsensitive bool
	programName     string

	// owners maps each folded alias to the declaration that claimed it.
	owners map[string]string
}

// Compile builds a Grammar from a definition tree. It walks the tree once,
// topics first and then parameters, and stops at the first DefinitionError.
// Compile does not modify def and may run concurrently for independent
// definitions.
func Compile(def *definition.Command, opts ...Option) (*Grammar, error) {
	c := &compiler{
		registry: validator.Default(),
		owners:   make(map[string]string),
	}
	if def != nil {
		c.caseInsensitive = def.CaseInsensitive
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := definition.Validate(def); err != nil {
		return nil, fromStructured(err)
	}

	g := &Grammar{
		name:            def.Name,
		usage:           strings.TrimSpace(def.Usage),
		caseInsensitive: c.caseInsensitive,
		aliases:         make(map[string]*Parameter),
		topicAliases:    make(map[string]*Topic),
	}
	if g.name == "" {
		g.name = c.programName
	}
	if g.name == "" {
		g.name = defaultProgramName
	}

	files, err := compileFiles(def)
	if err != nil {
		return nil, err
	}
	g.files = files

	for i, td := range def.Topics {
		t, err := c.compileTopic(definition.TopicNode(i), td)
		if err != nil {
			return nil, err
		}
		g.topics = append(g.topics, t)
		for _, a := range t.aliases {
			g.topicAliases[c.key(a)] = t
		}
	}

	for i, pd := range def.Parameters {
		p, err := c.compileParameter(g, definition.ParameterNode(i), pd)
		if err != nil {
			return nil, err
		}
		p.index = i
		g.params = append(g.params, p)
		for _, a := range p.aliases {
			g.aliases[c.key(a)] = p
		}
		if p.Topic != nil {
			p.Topic.parameters = append(p.Topic.parameters, p)
		}
	}

	slog.Debug("grammar compiled",
		"name", g.name,
		"parameters", len(g.params),
		"topics", len(g.topics),
		"aliases", len(g.aliases),
		"caseInsensitive", g.caseInsensitive)

	return g, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// definitions embedded in programs.
func MustCompile(def *definition.Command, opts ...Option) *Grammar {
	g, err := Compile(def, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func compileFiles(def *definition.Command) (FilePolicy, error) {
	policy := FilePolicy{Allow: def.AllowFiles}

	if def.MinFiles != nil {
		policy.Min = *def.MinFiles
	}
	if def.MaxFiles != nil {
		policy.Max = *def.MaxFiles
		policy.HasMax = true
	}

	if !policy.Allow && (policy.Min > 0 || policy.HasMax) {
		return FilePolicy{}, defError(errors.ErrCodeInvalidDefinition, "command", "",
			"min-files and max-files require allow-files")
	}
	if policy.HasMax && policy.Min > policy.Max {
		return FilePolicy{}, defError(errors.ErrCodeInvalidDefinition, "command", "",
			"min-files %d exceeds max-files %d", policy.Min, policy.Max)
	}
	return policy, nil
}

func (c *compiler) key(alias string) string {
	return foldKey(alias, c.caseInsensitive)
}

// claim registers the aliases of one declaration in the shared namespace.
func (c *compiler) claim(node, owner, name string, aliases []string) error {
	for _, a := range aliases {
		if strings.HasPrefix(a, OptionMarker) || strings.ContainsAny(a, " \t\r\n") {
			return &DefinitionError{
				Code:      errors.ErrCodeInvalidDefinition,
				Message:   fmt.Sprintf("alias %q must not start with %q or contain whitespace", a, OptionMarker),
				Node:      node,
				Parameter: name,
				Alias:     a,
			}
		}

		k := c.key(a)
		for _, action := range Actions() {
			if k == c.key(string(action)) {
				return &DefinitionError{
					Code:      errors.ErrCodeReservedAlias,
					Message:   fmt.Sprintf("alias %q is reserved", a),
					Node:      node,
					Parameter: name,
					Alias:     a,
				}
			}
		}

		if prev, ok := c.owners[k]; ok {
			return &DefinitionError{
				Code:      errors.ErrCodeDuplicateAlias,
				Message:   fmt.Sprintf("alias %q is declared by both %s and %s", a, prev, owner),
				Node:      node,
				Parameter: name,
				Alias:     a,
				Owners:    []string{prev, owner},
			}
		}
		c.owners[k] = owner
	}
	return nil
}

func (c *compiler) compileTopic(node string, td definition.Topic) (*Topic, error) {
	aliases, ok := splitAliases(td.Name)
	if !ok {
		return nil, defError(errors.ErrCodeInvalidDefinition, node, td.Name,
			"topic name list %q has an empty entry", td.Name)
	}

	t := &Topic{
		Name:    aliases[0],
		aliases: aliases,
		Text:    strings.TrimSpace(td.Text),
	}
	if err := c.claim(node, "topic "+t.Name, t.Name, aliases); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *compiler) compileParameter(g *Grammar, node string, pd definition.Parameter) (*Parameter, error) {
	aliases, ok := splitAliases(pd.Name)
	if !ok {
		return nil, defError(errors.ErrCodeInvalidDefinition, node, pd.Name,
			"parameter name list %q has an empty entry", pd.Name)
	}
	name := aliases[0]

	p := &Parameter{
		Name:      name,
		aliases:   aliases,
		Kind:      pd.Kind,
		Multiple:  pd.Multiple,
		Required:  pd.Required,
		Hidden:    pd.Hidden,
		Usage:     strings.TrimSpace(pd.Usage),
		ValueText: strings.TrimSpace(pd.ValueText),
		Help:      strings.TrimSpace(pd.HelpText),
	}
	if p.Help == "" {
		p.Help = strings.TrimSpace(pd.Text)
	}

	if err := c.claim(node, "parameter "+name, name, aliases); err != nil {
		return nil, err
	}

	arity, err := compileArity(node, name, pd)
	if err != nil {
		return nil, err
	}
	p.Arity = arity

	rule, err := c.registry.Rule(pd.Kind, strings.TrimSpace(pd.ValidationRegex), strings.TrimSpace(pd.Validator))
	if err != nil {
		return nil, &DefinitionError{
			Code:      errors.ErrCodeInvalidRule,
			Message:   fmt.Sprintf("parameter %q has an invalid validation rule", name),
			Node:      node,
			Parameter: name,
			Cause:     err,
		}
	}
	p.rule = rule

	if ref := strings.TrimSpace(pd.Topic); ref != "" {
		t, ok := g.topicAliases[c.key(ref)]
		if !ok {
			return nil, defError(errors.ErrCodeUnknownTopic, node, name,
				"parameter %q references undeclared topic %q", name, ref)
		}
		p.Topic = t
	}

	if pd.Default != nil {
		if pd.Required {
			return nil, defError(errors.ErrCodeInvalidDefault, node, name,
				"parameter %q is required and cannot declare a default", name)
		}
		if p.Kind != validator.KindFlag && !p.Arity.Allows(1) {
			return nil, defError(errors.ErrCodeInvalidDefault, node, name,
				"parameter %q takes %s values and cannot declare a single default", name, p.Arity)
		}
		v, err := p.Apply(pd.Default.String())
		if err != nil {
			return nil, &DefinitionError{
				Code:      errors.ErrCodeInvalidDefault,
				Message:   fmt.Sprintf("default %q of parameter %q is invalid", pd.Default.String(), name),
				Node:      node,
				Parameter: name,
				Cause:     err,
			}
		}
		p.defaultValue = p.shapeValue(v)
	}

	return p, nil
}

// compileArity enforces the arity rules: flags take no arguments, multiple
// excludes fixed counts other than one, and unbounded arity needs multiple.
func compileArity(node, name string, pd definition.Parameter) (Arity, error) {
	expr := strings.TrimSpace(pd.Arguments)

	if pd.Kind == validator.KindFlag {
		if expr != "" {
			return Arity{}, defError(errors.ErrCodeInvalidArity, node, name,
				"flag %q cannot declare arguments", name)
		}
		if pd.Multiple {
			return Arity{}, defError(errors.ErrCodeInvalidArity, node, name,
				"flag %q cannot be multiple", name)
		}
		return Arity{}, nil
	}

	arity, err := ParseArity(expr)
	if err != nil {
		return Arity{}, &DefinitionError{
			Code:      errors.ErrCodeInvalidArity,
			Message:   fmt.Sprintf("parameter %q has a malformed arity", name),
			Node:      node,
			Parameter: name,
			Cause:     err,
		}
	}

	if arity.Unbounded && !pd.Multiple {
		return Arity{}, defError(errors.ErrCodeInvalidArity, node, name,
			"parameter %q: unbounded arity %s requires multiple", name, arity)
	}
	if pd.Multiple && arity.IsFixed() && !arity.IsExactlyOne() {
		return Arity{}, defError(errors.ErrCodeInvalidArity, node, name,
			"parameter %q: multiple cannot be combined with a fixed count of %d", name, arity.Min)
	}
	return arity, nil
}

// fromStructured converts a structural validation failure into a
// DefinitionError.
func fromStructured(err error) error {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) {
		return &DefinitionError{Code: errors.ErrCodeInvalidDefinition, Message: err.Error(), Cause: err}
	}
	de := &DefinitionError{Code: se.Code, Message: se.Message, Cause: se.Cause}
	if node, ok := se.Context["node"].(string); ok {
		de.Node = node
	}
	return de
}

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
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/validator"
)

// Match resolves tokens against g. tokens is conventionally the process
// argument vector without the program name; it is never modified.
//
// When a reserved token is present the result reports the requested help
// view and err is nil regardless of the other tokens. Otherwise the result
// holds a value for every parameter that was given or has a default, and
// flags that were not given resolve to false.
func Match(g *grammar.Grammar, tokens []string) (*CommandLine, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "grammar is nil")
	}

	m := &matcher{
		g:         g,
		tokens:    tokens,
		firstFile: -1,
		cl: &CommandLine{
			grammar: g,
			values:  make(map[string]validator.Value),
			given:   make(map[string]bool),
			files:   []string{},
		},
	}

	m.scanReserved()
	if m.cl.HelpRequested() {
		slog.Debug("help requested",
			"command", g.Name(),
			"view", m.cl.View(),
			"showHidden", m.cl.showHidden)
		return m.cl, nil
	}

	if err := m.consume(); err != nil {
		return nil, err
	}
	if err := m.checkFiles(); err != nil {
		return nil, err
	}
	if err := m.finalize(); err != nil {
		return nil, err
	}

	slog.Debug("command line matched",
		"command", g.Name(),
		"tokens", len(tokens),
		"given", len(m.cl.given),
		"files", len(m.cl.files))

	return m.cl, nil
}

// matcher holds the cursor state of one Match call.
type matcher struct {
	g      *grammar.Grammar
	tokens []string
	pos    int
	cl     *CommandLine

	// firstFile is the token index of the first file argument, or -1.
	firstFile int
}

// scanReserved records every reserved action and meta token ahead of the
// end-of-options marker. The first reserved action selects the view.
func (m *matcher) scanReserved() {
	for _, tok := range m.tokens {
		if tok == grammar.EndOfOptions {
			return
		}
		if name, ok := metaName(tok); ok {
			if m.g.IsMeta(name, grammar.MetaHidden) {
				m.cl.showHidden = true
			}
			continue
		}
		name, ok := optionName(tok)
		if !ok {
			continue
		}
		action, ok := m.g.Action(name)
		if !ok || m.cl.hasAction(action) {
			continue
		}
		m.cl.actions = append(m.cl.actions, action)
	}
}

// consume runs the token loop.
func (m *matcher) consume() error {
	for m.pos < len(m.tokens) {
		tok := m.tokens[m.pos]

		if tok == grammar.EndOfOptions {
			m.addFiles(m.pos+1, m.tokens[m.pos+1:]...)
			m.pos = len(m.tokens)
			return nil
		}

		if name, ok := metaName(tok); ok {
			if !m.g.IsMeta(name, grammar.MetaHidden) {
				return unknownOption(tok, m.pos)
			}
			m.pos++
			continue
		}

		name, ok := optionName(tok)
		if !ok {
			m.addFiles(m.pos, tok)
			m.pos++
			continue
		}

		p, ok := m.g.Lookup(name)
		if !ok {
			return unknownOption(tok, m.pos)
		}
		if err := m.consumeParameter(p); err != nil {
			return err
		}
	}
	return nil
}

// consumeParameter resolves one occurrence of p. The cursor is on the
// option token and is left on the first token after the consumed values.
func (m *matcher) consumeParameter(p *grammar.Parameter) error {
	tok, at := m.tokens[m.pos], m.pos
	m.pos++

	if m.cl.given[p.Name] && !p.Multiple {
		return duplicateOption(p.Name, tok, at)
	}
	m.cl.given[p.Name] = true

	if !p.TakesValue() {
		m.cl.values[p.Name] = validator.Flag(true)
		return nil
	}

	raw := m.collect(p.Arity)
	if len(raw) < p.Arity.Min {
		return &ValidationError{
			Code:      errors.ErrCodeTooFewValues,
			Message:   fmt.Sprintf("option %q expects %s values, got %d", p.Name, p.Arity, len(raw)),
			Parameter: p.Name,
			Token:     tok,
			Position:  at,
			Count:     len(raw),
		}
	}
	if !p.Arity.IsFixed() && !p.Arity.Unbounded && m.pos < len(m.tokens) && !m.stops(m.tokens[m.pos]) {
		return &ValidationError{
			Code:      errors.ErrCodeTooManyValues,
			Message:   fmt.Sprintf("option %q accepts at most %d values", p.Name, p.Arity.Max),
			Parameter: p.Name,
			Token:     m.tokens[m.pos],
			Position:  m.pos,
			Count:     len(raw) + 1,
		}
	}

	values := make([]validator.Value, 0, len(raw))
	for i, r := range raw {
		v, err := p.Apply(r)
		if err != nil {
			return invalidValue(p, r, at+1+i, err)
		}
		values = append(values, v)
	}

	m.store(p, values)
	return nil
}

// collect takes value tokens for one occurrence: up to the arity maximum,
// stopping early at the first token that cannot be a value.
func (m *matcher) collect(a grammar.Arity) []string {
	var raw []string
	for m.pos < len(m.tokens) {
		if !a.Unbounded && len(raw) == a.Max {
			break
		}
		tok := m.tokens[m.pos]
		if m.stops(tok) {
			break
		}
		raw = append(raw, tok)
		m.pos++
	}
	return raw
}

// stops reports whether tok ends value consumption: the end-of-options
// marker, any meta token, a reserved action or a known alias. Everything
// else, including negative numbers, is a value.
func (m *matcher) stops(tok string) bool {
	if tok == grammar.EndOfOptions {
		return true
	}
	if _, ok := metaName(tok); ok {
		return true
	}
	name, ok := optionName(tok)
	if !ok {
		return false
	}
	if _, ok := m.g.Lookup(name); ok {
		return true
	}
	_, ok = m.g.Action(name)
	return ok
}

// store records the values of one occurrence in the parameter's shape.
func (m *matcher) store(p *grammar.Parameter, values []validator.Value) {
	switch p.Shape() {
	case grammar.ShapeScalar:
		m.cl.values[p.Name] = values[0]
	case grammar.ShapeSequence:
		m.cl.values[p.Name] = validator.Sequence(values...)
	case grammar.ShapeRepeated:
		m.cl.values[p.Name] = appendValue(m.cl.values[p.Name], values[0])
	case grammar.ShapeRepeatedGroups:
		m.cl.values[p.Name] = appendValue(m.cl.values[p.Name], validator.Sequence(values...))
	}
}

func appendValue(seq, v validator.Value) validator.Value {
	return validator.Sequence(append(seq.Values(), v)...)
}

// checkFiles enforces the grammar's file argument policy.
func (m *matcher) checkFiles() error {
	files := m.g.Files()
	n := len(m.cl.files)

	if n > 0 && !files.Allow {
		return &ValidationError{
			Code:     errors.ErrCodeUnexpectedFiles,
			Message:  fmt.Sprintf("%s does not accept file arguments, got %q", m.g.Name(), m.cl.files[0]),
			Token:    m.cl.files[0],
			Position: m.firstFile,
			Count:    n,
		}
	}
	if files.Allows(n) {
		return nil
	}

	bounds := fmt.Sprintf("at least %d", files.Min)
	if files.HasMax {
		bounds = fmt.Sprintf("between %d and %d", files.Min, files.Max)
	}
	return &ValidationError{
		Code:     errors.ErrCodeFileCount,
		Message:  fmt.Sprintf("%s expects %s file arguments, got %d", m.g.Name(), bounds, n),
		Position: -1,
		Count:    n,
	}
}

// finalize applies defaults and reports every missing required parameter.
func (m *matcher) finalize() error {
	var missing []string
	for _, p := range m.g.Parameters() {
		if m.cl.given[p.Name] {
			continue
		}
		switch {
		case p.HasDefault():
			m.cl.values[p.Name] = p.Default()
		case p.Required:
			missing = append(missing, p.Name)
		case !p.TakesValue():
			m.cl.values[p.Name] = validator.Flag(false)
		}
	}
	if len(missing) > 0 {
		return missingRequired(missing)
	}
	return nil
}

func (m *matcher) addFiles(pos int, files ...string) {
	if len(files) == 0 {
		return
	}
	if m.firstFile < 0 {
		m.firstFile = pos
	}
	m.cl.files = append(m.cl.files, files...)
}

func invalidValue(p *grammar.Parameter, raw string, pos int, err error) *ValidationError {
	ve := &ValidationError{
		Code:      errors.ErrCodeInvalidValue,
		Message:   fmt.Sprintf("invalid value %q for option %q", raw, p.Name),
		Parameter: p.Name,
		Token:     raw,
		Position:  pos,
		Value:     raw,
		Rule:      p.Rule().String(),
	}
	var f *validator.Failure
	if stderrors.As(err, &f) {
		ve.Rule = f.Rule
		ve.Cause = f.Err
		if f.Err == nil {
			ve.Message = fmt.Sprintf("value %q for option %q does not match %s", raw, p.Name, f.Rule)
		}
	} else {
		ve.Cause = err
	}
	return ve
}

// optionName strips the option marker from tok. A lone marker is not an
// option.
func optionName(tok string) (string, bool) {
	if len(tok) <= len(grammar.OptionMarker) || !strings.HasPrefix(tok, grammar.OptionMarker) {
		return "", false
	}
	return tok[len(grammar.OptionMarker):], true
}

// metaName strips the meta marker from tok.
func metaName(tok string) (string, bool) {
	if len(tok) <= len(grammar.MetaMarker) || !strings.HasPrefix(tok, grammar.MetaMarker) {
		return "", false
	}
	return tok[len(grammar.MetaMarker):], true
}

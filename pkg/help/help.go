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

package help

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/clspec/pkg/grammar"
)

// View names accepted by ParseView. "full" is an alias for the help view.
const (
	ViewFull   = "full"
	ViewUsage  = "usage"
	ViewTopics = "topics"
)

// SupportedViews returns the view names accepted by ParseView.
func SupportedViews() []string {
	return []string{ViewFull, ViewUsage, ViewTopics}
}

// ParseView maps a view name to the help action that renders it. An empty
// name selects the full view.
func ParseView(s string) (grammar.Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ViewFull, string(grammar.ActionHelp):
		return grammar.ActionHelp, nil
	case ViewUsage:
		return grammar.ActionUsage, nil
	case ViewTopics:
		return grammar.ActionTopics, nil
	default:
		return "", fmt.Errorf("unknown help view %q, supported values: %v", s, SupportedViews())
	}
}

// Render returns the text for the given view. Hidden parameters are left
// out unless showHidden is set. Unknown views render the full help.
func Render(g *grammar.Grammar, view grammar.Action, showHidden bool) string {
	r := &renderer{g: g, showHidden: showHidden}
	switch view {
	case grammar.ActionUsage:
		r.usage()
	case grammar.ActionTopics:
		r.topics()
	default:
		r.full()
	}
	return r.b.String()
}

type renderer struct {
	g          *grammar.Grammar
	showHidden bool
	b          strings.Builder
}

func (r *renderer) visible() []*grammar.Parameter {
	var out []*grammar.Parameter
	for _, p := range r.g.Parameters() {
		if !p.Hidden || r.showHidden {
			out = append(out, p)
		}
	}
	return out
}

// full writes the usage line followed by every visible parameter. Parameters
// without a topic come first, then one section per topic in declaration
// order.
func (r *renderer) full() {
	r.usageLine()

	params := r.visible()
	var ungrouped []*grammar.Parameter
	for _, p := range params {
		if p.Topic == nil {
			ungrouped = append(ungrouped, p)
		}
	}
	if len(ungrouped) > 0 {
		r.b.WriteString("\nOptions:\n")
		r.table(ungrouped)
	}

	title := cases.Title(language.English)
	for _, t := range r.g.Topics() {
		var members []*grammar.Parameter
		for _, p := range t.Parameters() {
			if !p.Hidden || r.showHidden {
				members = append(members, p)
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&r.b, "\n%s:\n", title.String(t.Name))
		if t.Text != "" {
			r.b.WriteString(indent(t.Text, "  "))
			r.b.WriteString("\n\n")
		}
		r.table(members)
	}

	r.b.WriteString(r.reservedHint())
}

// usage writes the usage line and a one-line summary per parameter.
func (r *renderer) usage() {
	r.usageLine()
	params := r.visible()
	if len(params) == 0 {
		return
	}
	r.b.WriteString("\n")
	tw := tabwriter.NewWriter(&r.b, 0, 0, 2, ' ', 0)
	for _, p := range params {
		fmt.Fprintf(tw, "  %s\t%s\n", fragment(p), firstLine(p.Help))
	}
	_ = tw.Flush()
}

// topics writes each topic with its aliases and description.
func (r *renderer) topics() {
	topics := r.g.Topics()
	if len(topics) == 0 {
		fmt.Fprintf(&r.b, "%s has no help topics.\n", r.g.Name())
		return
	}
	r.b.WriteString("Topics:\n")
	tw := tabwriter.NewWriter(&r.b, 0, 0, 2, ' ', 0)
	for _, t := range topics {
		fmt.Fprintf(tw, "  %s\t%s\n", strings.Join(t.Aliases(), ", "), firstLine(t.Text))
		for _, line := range restLines(t.Text) {
			fmt.Fprintf(tw, "  \t%s\n", line)
		}
	}
	_ = tw.Flush()
}

// usageLine writes the declared usage text or a generated synopsis.
func (r *renderer) usageLine() {
	if u := r.g.Usage(); u != "" {
		fmt.Fprintf(&r.b, "Usage: %s\n", u)
		return
	}

	parts := []string{r.g.Name()}
	for _, p := range r.visible() {
		f := fragment(p)
		if p.Multiple {
			f += "..."
		}
		if !p.Required {
			f = "[" + f + "]"
		}
		parts = append(parts, f)
	}
	if files := r.g.Files(); files.Allow {
		if files.Min > 0 {
			parts = append(parts, "files...")
		} else {
			parts = append(parts, "[files...]")
		}
	}
	fmt.Fprintf(&r.b, "Usage: %s\n", strings.Join(parts, " "))
}

// table writes one aligned entry per parameter. Continuation lines of
// multi-line help stay in the help column.
func (r *renderer) table(params []*grammar.Parameter) {
	tw := tabwriter.NewWriter(&r.b, 0, 0, 2, ' ', 0)
	for _, p := range params {
		fmt.Fprintf(tw, "  %s\t%s\n", signature(p), firstLine(p.Help))
		for _, line := range restLines(p.Help) {
			fmt.Fprintf(tw, "  \t%s\n", line)
		}
		if notes := annotations(p); notes != "" {
			fmt.Fprintf(tw, "  \t%s\n", notes)
		}
	}
	_ = tw.Flush()
}

func (r *renderer) reservedHint() string {
	names := make([]string, 0, len(grammar.Actions()))
	for _, a := range grammar.Actions() {
		names = append(names, grammar.OptionMarker+a.String())
	}
	return fmt.Sprintf("\nUse %s for help output, %s%s to include hidden options.\n",
		strings.Join(names, ", "), grammar.MetaMarker, grammar.MetaHidden)
}

// fragment is the usage form of one parameter: its declared usage text, or
// the canonical alias followed by the value placeholder.
func fragment(p *grammar.Parameter) string {
	if p.Usage != "" {
		return p.Usage
	}
	f := grammar.OptionMarker + p.Name
	if v := value(p); v != "" {
		f += " " + v
	}
	return f
}

// signature lists every alias and the value placeholder.
func signature(p *grammar.Parameter) string {
	names := p.Aliases()
	aliases := make([]string, len(names))
	for i, a := range names {
		aliases[i] = grammar.OptionMarker + a
	}
	s := strings.Join(aliases, ", ")
	if v := value(p); v != "" {
		s += " " + v
	}
	return s
}

// value renders the placeholder with the arity when it is not exactly one.
func value(p *grammar.Parameter) string {
	if !p.TakesValue() {
		return ""
	}
	v := "<" + p.Placeholder() + ">"
	if !p.Arity.IsExactlyOne() {
		v += "{" + p.Arity.String() + "}"
	}
	return v
}

func annotations(p *grammar.Parameter) string {
	var notes []string
	if p.Required {
		notes = append(notes, "required")
	}
	if p.Multiple {
		notes = append(notes, "repeatable")
	}
	if p.HasDefault() && p.TakesValue() {
		notes = append(notes, "default: "+defaultText(p))
	}
	if p.Hidden {
		notes = append(notes, "hidden")
	}
	if len(notes) == 0 {
		return ""
	}
	return "(" + strings.Join(notes, ", ") + ")"
}

// defaultText shows a shaped default by its single member.
func defaultText(p *grammar.Parameter) string {
	return strings.Join(p.Default().Strings(), " ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func restLines(s string) []string {
	_, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return nil
	}
	return strings.Split(rest, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

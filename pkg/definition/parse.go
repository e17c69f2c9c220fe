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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/NVIDIA/clspec/pkg/defaults"
	"github.com/NVIDIA/clspec/pkg/header"
	"github.com/NVIDIA/clspec/pkg/serializer"
)

// ConfigMapDataKey is the key stem under which ConfigMaps store definitions:
// definition.yaml or definition.json.
const ConfigMapDataKey = "definition"

// Parse decodes a definition document in the given format.
func Parse(format serializer.Format, r io.Reader) (*Command, error) {
	reader, err := serializer.NewReader(format, r, serializer.WithStrict(true))
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := reader.Deserialize(&doc); err != nil {
		return nil, err
	}
	return doc.command()
}

// ParseString is Parse over an in-memory document.
func ParseString(format serializer.Format, s string) (*Command, error) {
	return Parse(format, strings.NewReader(s))
}

// Load reads a definition from a local path, an http(s) URL, or a
// cm://namespace/name ConfigMap URI. The format is taken from the file
// extension or, for ConfigMaps, from the data key.
func Load(ctx context.Context, uri string, opts ...serializer.SourceOption) (*Command, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.DefinitionLoadTimeout)
	defer cancel()

	base := []serializer.SourceOption{
		serializer.WithDataKey(ConfigMapDataKey),
		serializer.WithStrictSource(true),
	}

	doc, err := serializer.FromSource[Document](ctx, uri, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	return doc.command()
}

// command checks the header and returns the normalized spec.
func (d *Document) command() (*Command, error) {
	if err := d.Expect(header.KindCommandDefinition); err != nil {
		return nil, err
	}
	if d.Spec == nil {
		return nil, fmt.Errorf("definition has no spec")
	}

	cmd := d.Spec
	if cmd.Name == "" {
		cmd.Name = d.Metadata["name"]
	}
	cmd.normalize()
	return cmd, nil
}

// normalize dedents body text so indented markup renders flush left.
func (c *Command) normalize() {
	c.Usage = Dedent(c.Usage)
	for i := range c.Topics {
		c.Topics[i].Text = Dedent(c.Topics[i].Text)
	}
	for i := range c.Parameters {
		c.Parameters[i].Text = Dedent(c.Parameters[i].Text)
	}
}

// Dedent removes the longest common leading whitespace from the non-blank
// lines of s and trims surrounding blank lines.
func Dedent(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix = indent
			first = false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimRight(strings.TrimPrefix(line, prefix), " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

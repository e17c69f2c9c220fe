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

package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// patternFlags lists the modifiers accepted after a delimited pattern.
const patternFlags = "imsx"

// Pattern is a compiled validation regular expression.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// CompilePattern compiles a validation expression given either plain or in
// delimited /pattern/flags form.
func CompilePattern(expr string) (*Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty validation pattern")
	}

	body, flags, err := splitDelimited(expr)
	if err != nil {
		return nil, err
	}

	var prefix strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			prefix.WriteRune(f)
		case 'x':
			body = stripExtended(body)
		}
	}

	if !strings.HasPrefix(body, "^") && !hasEndAnchor(body) {
		body = `\A(?:` + body + `)\z`
	}
	if prefix.Len() > 0 {
		body = "(?" + prefix.String() + ")" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("invalid validation pattern %s: %w", expr, err)
	}

	return &Pattern{source: expr, re: re}, nil
}

// MatchString reports whether s satisfies the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the pattern as it was declared.
func (p *Pattern) String() string {
	return p.source
}

// splitDelimited separates /body/flags. Plain patterns are returned unchanged
// with no flags.
func splitDelimited(expr string) (string, string, error) {
	if len(expr) < 2 || expr[0] != '/' {
		return expr, "", nil
	}
	end := strings.LastIndexByte(expr, '/')
	if end == 0 {
		return expr, "", nil
	}
	flags := expr[end+1:]
	if strings.Trim(flags, patternFlags) != "" {
		// Not a flag suffix, so the slashes are part of a plain pattern.
		return expr, "", nil
	}
	body := expr[1:end]
	if body == "" {
		return "", "", fmt.Errorf("empty validation pattern %s", expr)
	}
	return body, flags, nil
}

func hasEndAnchor(body string) bool {
	if !strings.HasSuffix(body, "$") {
		return false
	}
	// Count the backslashes in front of the final $; an odd count escapes it.
	n := 0
	for i := len(body) - 2; i >= 0 && body[i] == '\\'; i-- {
		n++
	}
	return n%2 == 0
}

// stripExtended removes unescaped whitespace and #-comments outside of
// character classes, emulating the x modifier.
func stripExtended(body string) string {
	var out strings.Builder
	inClass := false
	inComment := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case c == '\\' && i+1 < len(body):
			out.WriteByte(c)
			out.WriteByte(body[i+1])
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
			out.WriteByte(c)
		case c == '[':
			inClass = true
			out.WriteByte(c)
		case c == '#':
			inComment = true
		case c == ' ', c == '\t', c == '\n', c == '\r', c == '\f', c == '\v':
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

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

// Package validator provides the value coercion and validation rules applied
// to command-line parameter values.
//
// # Overview
//
// Every parameter in a compiled grammar carries a Rule built from its value
// kind, an optional regular expression, and, for custom parameters, a named
// validator function resolved against a Registry. Applying a rule to a raw
// token either yields a typed Value or a *Failure describing which rule
// rejected the token.
//
// # Value Kinds
//
//   - flag: presence only, never consumes a token
//   - string: identity
//   - integer: base-10 signed 64-bit integer
//   - float, double: locale-independent decimal number
//   - filename: identity, existence is not checked
//   - custom: delegated to a named validator function
//
// # Regular Expressions
//
// Patterns are given either plain or in delimited form with trailing flags:
//
//	[a-z]+
//	/[a-z][a-z0-9]*/ix
//
// Supported flags are i (case-insensitive), m (multi-line), s (dot matches
// newline) and x (extended: unescaped whitespace and # comments are ignored).
// A pattern without its own ^ or $ anchor must match the whole value.
//
// # Usage
//
//	reg := validator.New(
//	    validator.WithValidator("port", func(raw string) (validator.Value, error) {
//	        n, err := strconv.Atoi(raw)
//	        if err != nil || n < 1 || n > 65535 {
//	            return validator.Value{}, fmt.Errorf("not a TCP port")
//	        }
//	        return validator.Integer(int64(n)), nil
//	    }),
//	)
//	rule, err := reg.Rule(validator.KindCustom, "", "port")
//	v, err := rule.Apply("8080")
//
// Registries are immutable once built and safe for concurrent use.
package validator

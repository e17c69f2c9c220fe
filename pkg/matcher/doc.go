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

/*
Package matcher matches raw argument lists against a compiled grammar.

Match walks the token list once, left to right, and produces either a
CommandLine with every parameter resolved to a typed value or a
*ValidationError describing the first problem found. Missing required
parameters are reported together in one error.

Reserved tokens (-help, -usage, -topics) are detected before anything else.
When one is present matching short-circuits: the returned CommandLine
reports the requested help view and no value is validated, so asking for
help never fails.

	g := grammar.MustCompile(def)
	cl, err := matcher.Match(g, os.Args[1:])
	if err != nil {
		var ve *matcher.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintln(os.Stderr, ve.Message)
		}
		os.Exit(2)
	}
	if cl.HelpRequested() {
		fmt.Print(help.Render(g, cl.View(), cl.ShowHidden()))
		return
	}
	verbose, _ := cl.Get("verbose")

Tokens:

  - "-alias" names a parameter by any of its aliases.
  - "--hidden" reveals hidden parameters in help output.
  - "--" ends option processing; every later token is a file argument.
  - Any other token is a value when a parameter is consuming values,
    otherwise a file argument. A lone "-" is a file argument.

A Grammar is immutable, so Match may be called concurrently with the same
grammar.
*/
package matcher

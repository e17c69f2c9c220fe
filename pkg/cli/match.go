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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/help"
	"github.com/NVIDIA/clspec/pkg/matcher"
)

func matchCmd() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Match an argument list against a command definition",
		ArgsUsage: "-- [arguments...]",
		Description: `Compile a command definition and match the arguments after -- against it.

On success the resolved command line is written in the selected format:
every parameter with its typed value, the file arguments, and which
parameters were given explicitly. When the arguments contain -help, -usage
or -topics the requested help text is printed instead.

# Examples

  clspec match -d example.yaml -- -bf -dv 3.5 file1.txt file2.txt
  clspec match -d example.yaml --format json -- -sv a b c
  clspec match -d example.yaml -- -help --hidden

# Exit Codes

  0  Arguments matched, or help was requested
  1  The definition could not be loaded, or output failed
  2  The arguments were rejected
  3  The definition is invalid`,
		Flags: []cli.Flag{
			definitionFlag(),
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
			programFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			g, err := newLoader(cmd).load(ctx, cmd.String("definition"))
			if err != nil {
				return err
			}

			cl, err := matcher.Match(g, matchTokens(cmd.Args().Slice()))
			if err != nil {
				return fmt.Errorf("%s: %w", g.Name(), err)
			}

			if cl.HelpRequested() {
				_, err := fmt.Fprint(stdoutOrDefault(cmd), help.Render(g, cl.View(), cl.ShowHidden()))
				return err
			}

			w, err := newOutputWriter(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeWriter(w)

			if err := w.Serialize(ctx, cl.Report(version)); err != nil {
				return fmt.Errorf("failed to serialize command line: %w", err)
			}

			slog.Debug("match completed",
				"command", g.Name(),
				"files", len(cl.Files()))
			return nil
		},
	}
}

// matchTokens drops the separator when the flag parser passes it through.
func matchTokens(args []string) []string {
	if len(args) > 0 && args[0] == grammar.EndOfOptions {
		return args[1:]
	}
	return args
}

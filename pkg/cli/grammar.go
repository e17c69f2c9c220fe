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

	"github.com/urfave/cli/v3"
)

func grammarCmd() *cli.Command {
	return &cli.Command{
		Name:      "grammar",
		Usage:     "Print the compiled grammar of a command definition",
		ArgsUsage: " ",
		Description: `Compile a command definition and print the resulting grammar: every
parameter with its aliases, kind, arity, resolved shape, default and
validation rule, the topics with their members, and the file policy.`,
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

			w, err := newOutputWriter(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeWriter(w)

			if err := w.Serialize(ctx, g.Summarize(version)); err != nil {
				return fmt.Errorf("failed to serialize grammar: %w", err)
			}
			return nil
		},
	}
}

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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clspec/pkg/help"
)

func helpCmd() *cli.Command {
	return &cli.Command{
		Name:      "help",
		Usage:     "Render help text for a command definition",
		ArgsUsage: " ",
		Description: `Render the help text a command definition produces for its reserved
tokens, without matching any arguments.

Views:
  full    usage line and every parameter grouped by topic (-help)
  usage   usage line and one line per parameter (-usage)
  topics  topic names and descriptions (-topics)

# Examples

  clspec help -d example.yaml
  clspec help -d example.yaml --view usage --hidden`,
		Flags: []cli.Flag{
			definitionFlag(),
			&cli.StringFlag{
				Name:  "view",
				Value: help.ViewFull,
				Usage: fmt.Sprintf("Help view (supported values: %s)", strings.Join(help.SupportedViews(), ", ")),
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "Include hidden parameters",
			},
			kubeconfigFlag(),
			programFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			view, err := help.ParseView(cmd.String("view"))
			if err != nil {
				return err
			}

			g, err := newLoader(cmd).load(ctx, cmd.String("definition"))
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(stdoutOrDefault(cmd), help.Render(g, view, cmd.Bool("hidden")))
			return err
		},
	}
}

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
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/clspec/pkg/defaults"
	"github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/header"
)

// CheckResult reports the outcome of compiling a set of definitions.
type CheckResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Definitions []DefinitionCheck `json:"definitions" yaml:"definitions"`
	Summary     CheckSummary      `json:"summary" yaml:"summary"`
}

// DefinitionCheck is the outcome for one definition source.
type DefinitionCheck struct {
	Source     string           `json:"source" yaml:"source"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Valid      bool             `json:"valid" yaml:"valid"`
	Parameters int              `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Topics     int              `json:"topics,omitempty" yaml:"topics,omitempty"`
	Code       errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// CheckSummary counts the checked definitions.
type CheckSummary struct {
	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Compile command definitions and report defects",
		ArgsUsage: " ",
		Description: `Load and compile one or more command definitions concurrently and report
whether each is valid. Compilation enforces alias uniqueness across
parameters and topics, arity rules, defaults and validation rules.

# Examples

Check a single definition:
  clspec check -d example.yaml

Check several definitions, writing JSON:
  clspec check -d a.yaml -d https://example.com/b.json -d cm://tools/c --format json

The command fails with exit code 3 when any definition is invalid.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:     "definition",
				Aliases:  []string{"d"},
				Required: true,
				Usage:    definitionUsage + "\n\tCan be repeated.",
				Sources:  cli.EnvVars("CLSPEC_DEFINITION"),
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			result, firstErr := checkDefinitions(ctx, newLoader(cmd), cmd.StringSlice("definition"))

			w, err := newOutputWriter(cmd, outFormat)
			if err != nil {
				return err
			}
			defer closeWriter(w)

			if err := w.Serialize(ctx, result); err != nil {
				return fmt.Errorf("failed to serialize check result: %w", err)
			}

			slog.Info("check completed",
				"total", result.Summary.Total,
				"valid", result.Summary.Valid,
				"invalid", result.Summary.Invalid)

			if firstErr != nil {
				return fmt.Errorf("%d of %d definitions are invalid: %w",
					result.Summary.Invalid, result.Summary.Total, firstErr)
			}
			return nil
		},
	}
}

// checkDefinitions compiles every source concurrently. Results keep the
// order of uris; the returned error is the first failure in that order.
func checkDefinitions(ctx context.Context, l *loader, uris []string) (*CheckResult, error) {
	result := &CheckResult{
		Definitions: make([]DefinitionCheck, len(uris)),
	}
	result.Init(header.KindCheckResult, version)
	errs := make([]error, len(uris))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaults.CLICheckConcurrency)

	for i, uri := range uris {
		g.Go(func() error {
			check := DefinitionCheck{Source: uri}

			gr, err := l.load(gctx, uri)
			if err != nil {
				errs[i] = err
				check.Error = err.Error()
				check.Code = errors.CodeOf(err)
			} else {
				check.Valid = true
				check.Name = gr.Name()
				check.Parameters = len(gr.Parameters())
				check.Topics = len(gr.Topics())
			}

			result.Definitions[i] = check
			return nil
		})
	}
	// Workers never fail; errors are recorded per definition.
	_ = g.Wait()

	var firstErr error
	for i, check := range result.Definitions {
		result.Summary.Total++
		if check.Valid {
			result.Summary.Valid++
			continue
		}
		result.Summary.Invalid++
		if firstErr == nil {
			firstErr = errs[i]
		}
	}
	return result, firstErr
}

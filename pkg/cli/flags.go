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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/clspec/pkg/definition"
	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/serializer"
)

const definitionUsage = `Path/URI to the command definition.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`

// Flags are built per command: urfave flags keep parse state.

func definitionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "definition",
		Aliases:  []string{"d"},
		Required: true,
		Usage:    definitionUsage,
		Sources:  cli.EnvVars("CLSPEC_DEFINITION"),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars("CLSPEC_FORMAT"),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for cm:// definitions (default: in-cluster or ~/.kube/config)",
		Sources: cli.EnvVars("CLSPEC_KUBECONFIG"),
	}
}

func programFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "program",
		Usage: "Program name shown in usage text when the definition does not declare one",
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	return serializer.ParseFormat(cmd.String("format"))
}

// newOutputWriter returns a writer for --output, falling back to the root
// command's writer.
func newOutputWriter(cmd *cli.Command, format serializer.Format) (*serializer.Writer, error) {
	if path := strings.TrimSpace(cmd.String("output")); path != "" {
		return serializer.NewFileWriterOrStdout(format, path)
	}
	return serializer.NewWriter(format, stdoutOrDefault(cmd)), nil
}

// stdoutOrDefault returns the root command's writer, or os.Stdout.
func stdoutOrDefault(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func closeWriter(w *serializer.Writer) {
	if err := w.Close(); err != nil {
		slog.Warn("failed to close serializer", "error", err)
	}
}

// loader reads and compiles definitions.
type loader struct {
	kubeconfig string
	program    string
}

func newLoader(cmd *cli.Command) *loader {
	return &loader{
		kubeconfig: cmd.String("kubeconfig"),
		program:    cmd.String("program"),
	}
}

func (l *loader) load(ctx context.Context, uri string) (*grammar.Grammar, error) {
	slog.Debug("loading definition", "uri", uri)

	def, err := definition.Load(ctx, uri, serializer.WithKubeconfig(l.kubeconfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load definition from %q: %w", uri, err)
	}

	g, err := grammar.Compile(def, grammar.WithProgramName(l.program))
	if err != nil {
		return nil, fmt.Errorf("invalid definition %q: %w", uri, err)
	}
	return g, nil
}

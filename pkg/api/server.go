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


package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	clerrors "github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/definition"
	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/logging"
	"github.com/NVIDIA/clspec/pkg/serializer"
	"github.com/NVIDIA/clspec/pkg/server"
)

const (
	name           = "clspecd"
	versionDefault = "dev"

	// EnvDefinition names the definition the service compiles at start-up.
	EnvDefinition = "CLSPEC_DEFINITION"
	// EnvKubeconfig points cm:// definitions at a specific cluster.
	EnvKubeconfig = "CLSPEC_KUBECONFIG"
	// EnvProgram overrides the program name used in usage lines.
	EnvProgram = "CLSPEC_PROGRAM"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/clspec/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve compiles the configured definition and serves it until shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	g, err := loadGrammar(ctx, os.Getenv(EnvDefinition), os.Getenv(EnvKubeconfig), os.Getenv(EnvProgram))
	if err != nil {
		slog.Error("failed to load definition", "error", err)
		return err
	}

	h := NewHandler(g, WithVersion(version))

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func loadGrammar(ctx context.Context, uri, kubeconfig, program string) (*grammar.Grammar, error) {
	if uri == "" {
		return nil, clerrors.New(clerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s must name a command definition", EnvDefinition))
	}

	def, err := definition.Load(ctx, uri, serializer.WithKubeconfig(kubeconfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load definition from %q: %w", uri, err)
	}

	g, err := grammar.Compile(def, grammar.WithProgramName(program))
	if err != nil {
		var de *grammar.DefinitionError
		if errors.As(err, &de) {
			slog.Error("definition rejected", "code", de.Code, "node", de.Node)
		}
		return nil, fmt.Errorf("invalid definition %q: %w", uri, err)
	}

	slog.Info("definition compiled",
		"source", uri,
		"command", g.Name(),
		"parameters", len(g.Parameters()),
		"topics", len(g.Topics()),
	)
	return g, nil
}

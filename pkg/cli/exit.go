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
	stderrors "errors"

	"github.com/NVIDIA/clspec/pkg/grammar"
	"github.com/NVIDIA/clspec/pkg/matcher"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitDefinition = 3
)

// ExitCode maps a command error to the process exit code: rejected argument
// lists exit with ExitValidation, defective definitions with ExitDefinition.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ve *matcher.ValidationError
	if stderrors.As(err, &ve) {
		return ExitValidation
	}
	var de *grammar.DefinitionError
	if stderrors.As(err, &de) {
		return ExitDefinition
	}
	return ExitError
}

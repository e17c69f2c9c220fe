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

// Package defaults provides centralized configuration constants for clspec.
//
// This package defines timeout values and limits used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
//   - Definition timeouts: For fetching remote definitions
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound HTTP requests
//
// # Usage
//
//	import "github.com/NVIDIA/clspec/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DefinitionLoadTimeout)
//	defer cancel()
//
// Compilation and matching never block, so no timeout applies to them
// directly; handler timeouts only bound request I/O.
package defaults

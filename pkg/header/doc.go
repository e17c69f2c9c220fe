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

// Package header provides the common document header for clspec inputs and
// outputs.
//
// Definitions and results carry Kubernetes-style type information:
//
//	apiVersion: clspec.nvidia.com/v1alpha1
//	kind: CommandDefinition
//	metadata:
//	  name: copy-files
//
// Writers stamp outputs with Init:
//
//	var out struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Values map[string]any `json:"values" yaml:"values"`
//	}
//	out.Init(header.KindCommandLine, version)
//
// Readers validate inputs with Expect, which accepts documents that omit
// the header entirely.
package header

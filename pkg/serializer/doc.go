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

// Package serializer reads and writes clspec documents.
//
// Definitions are read from a local path, an http(s) URL, or a Kubernetes
// ConfigMap referenced as cm://namespace/name:
//
//	def, err := serializer.FromSource[definition.Document](ctx, "cm://tools/copy-cli",
//	    serializer.WithDataKey("definition"))
//
// Results are written as JSON, YAML, or a flattened table:
//
//	w := serializer.NewWriter(serializer.FormatTable, os.Stdout)
//	defer w.Close()
//	if err := w.Serialize(ctx, result); err != nil {
//	    return err
//	}
//
// HTTP handlers use RespondJSON, which buffers the encoding so a failure
// never produces a partial response.
package serializer

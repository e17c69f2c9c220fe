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

// Package definition holds the abstract definition tree that the grammar
// compiler consumes, and the YAML/JSON front end that produces it.
//
// A definition document looks like:
//
//	apiVersion: clspec.nvidia.com/v1alpha1
//	kind: CommandDefinition
//	metadata:
//	  name: copy
//	spec:
//	  usage: copy [options] files...
//	  allow-files: true
//	  min-files: 1
//	  topics:
//	    - name: output,out
//	      text: Options controlling where files are written.
//	  parameters:
//	    - kind: flag
//	      name: verbose,v
//	      help-text: Print each file as it is copied.
//	    - kind: string
//	      name: target,t
//	      required: true
//	      topic: output
//	      validation-regex: /[a-z][a-z0-9_]*/i
//
// Documents are read from a local file, an http(s) URL, or a ConfigMap:
//
//	cmd, err := definition.Load(ctx, "cm://tools/copy-cli")
//
// The header is optional. Unknown fields are rejected so that misspelled
// attributes fail loudly instead of being ignored.
package definition

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

// Package grammar compiles a definition tree into an immutable command
// grammar: the parameter table in declaration order, the alias index, the
// topic index, and the command-level file policy.
//
// Aliases of parameters and topics share one namespace. Compilation fails
// with a *DefinitionError on the first collision, naming both owners:
//
//	g, err := grammar.Compile(def)
//	var de *grammar.DefinitionError
//	if errors.As(err, &de) && de.Code == errors.ErrCodeDuplicateAlias {
//	    fmt.Println(de.Alias, de.Owners)
//	}
//
// The reserved actions -help, -usage and -topics and the meta token
// --hidden are recognized by every grammar; definitions cannot claim the
// reserved names as aliases.
//
// A compiled Grammar holds no mutable state and may be shared across
// goroutines.
package grammar

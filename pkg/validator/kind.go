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

package validator

import (
	"fmt"
	"strings"
)

// Kind is the value kind declared for a parameter.
type Kind string

// Supported parameter kinds.
const (
	KindFlag     Kind = "flag"
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindDouble   Kind = "double"
	KindFilename Kind = "filename"
	KindCustom   Kind = "custom"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindFlag, KindString, KindInteger, KindFloat, KindDouble, KindFilename, KindCustom:
		return true
	default:
		return false
	}
}

// TakesValue reports whether parameters of this kind consume value tokens.
func (k Kind) TakesValue() bool {
	return k != KindFlag
}

// Placeholder returns the type name shown in usage text when a parameter
// declares no value-text of its own.
func (k Kind) Placeholder() string {
	switch k {
	case KindFlag:
		return ""
	case KindFilename:
		return "file"
	case KindCustom:
		return "value"
	default:
		return string(k)
	}
}

// ParseKind parses a kind name. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid parameter kind: %q, supported values: %v", s, SupportedKinds())
	}
	return k, nil
}

// SupportedKinds returns all supported kind names.
func SupportedKinds() []string {
	return []string{
		string(KindFlag),
		string(KindString),
		string(KindInteger),
		string(KindFloat),
		string(KindDouble),
		string(KindFilename),
		string(KindCustom),
	}
}

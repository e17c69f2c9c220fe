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

package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// Arity is the number of value tokens a parameter consumes per occurrence.
type Arity struct {
	Min int
	Max int

	// Unbounded means there is no maximum; Max is ignored.
	Unbounded bool
}

// ExactlyOne is the arity of a parameter that declares no arguments.
var ExactlyOne = Arity{Min: 1, Max: 1}

// ParseArity parses an arity expression: "N", "N..M", "N..*" or "*".
// An empty expression is ExactlyOne.
func ParseArity(expr string) (Arity, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ExactlyOne, nil
	}
	if expr == "*" {
		return Arity{Unbounded: true}, nil
	}

	lo, hi, ranged := strings.Cut(expr, "..")
	minCount, err := parseCount(lo)
	if err != nil {
		return Arity{}, fmt.Errorf("invalid arity %q: %w", expr, err)
	}

	if !ranged {
		if minCount < 1 {
			return Arity{}, fmt.Errorf("invalid arity %q: fixed count must be at least 1", expr)
		}
		return Arity{Min: minCount, Max: minCount}, nil
	}

	if strings.TrimSpace(hi) == "*" {
		return Arity{Min: minCount, Unbounded: true}, nil
	}

	maxCount, err := parseCount(hi)
	if err != nil {
		return Arity{}, fmt.Errorf("invalid arity %q: %w", expr, err)
	}
	if maxCount < 1 {
		return Arity{}, fmt.Errorf("invalid arity %q: maximum must be at least 1", expr)
	}
	if minCount > maxCount {
		return Arity{}, fmt.Errorf("invalid arity %q: minimum %d exceeds maximum %d", expr, minCount, maxCount)
	}
	return Arity{Min: minCount, Max: maxCount}, nil
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing count")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("count %q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("count %d is negative", n)
	}
	return n, nil
}

// IsExactlyOne reports whether the arity consumes a single value.
func (a Arity) IsExactlyOne() bool {
	return a == ExactlyOne
}

// IsFixed reports whether the arity consumes a fixed number of values.
func (a Arity) IsFixed() bool {
	return !a.Unbounded && a.Min == a.Max
}

// Allows reports whether n values satisfy the arity.
func (a Arity) Allows(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Unbounded || n <= a.Max
}

// String renders the arity in expression form.
func (a Arity) String() string {
	switch {
	case a.Unbounded && a.Min == 0:
		return "*"
	case a.Unbounded:
		return fmt.Sprintf("%d..*", a.Min)
	case a.IsFixed():
		return strconv.Itoa(a.Min)
	default:
		return fmt.Sprintf("%d..%d", a.Min, a.Max)
	}
}

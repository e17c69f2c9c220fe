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


// Package version parses dotted release versions such as "1", "v1.2" or
// "1.28.0-gke.1337000". It backs the builtin "version" value validator.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a release version with one to three numeric components.
// Precision records how many components were given; Extras keeps any
// pre-release or build suffix verbatim, including its leading '-' or '+'.
type Version struct {
	Major     int    `json:"major" yaml:"major"`
	Minor     int    `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch     int    `json:"patch,omitempty" yaml:"patch,omitempty"`
	Precision int    `json:"precision" yaml:"precision"`
	Extras    string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// String renders the components up to Precision followed by Extras.
// Parse(v.String()) yields v.
func (v Version) String() string {
	var s string
	switch v.Precision {
	case 1:
		s = strconv.Itoa(v.Major)
	case 2:
		s = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		s = fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return s + v.Extras
}

// Parse reads a version. A leading "v" is dropped. A '-' or '+' that follows
// a digit starts the suffix stored in Extras.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	main := s
	for i := 1; i < len(s); i++ {
		if (s[i] == '-' || s[i] == '+') && s[i-1] >= '0' && s[i-1] <= '9' {
			main, v.Extras = s[:i], s[i:]
			break
		}
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" || strings.IndexFunc(part, notDigit) >= 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = n
		case 1:
			v.Minor = n
		case 2:
			v.Patch = n
		}
	}

	v.Precision = len(parts)
	return v, nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("version.MustParse(%q): %v", s, err))
	}
	return v
}

// Compare orders v and other on the components both of them specify:
// "1.2" compares equal to "1.2.7". Extras are ignored.
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)

	for i, pair := range [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}} {
		if i >= precision {
			break
		}
		switch {
		case pair[0] < pair[1]:
			return -1
		case pair[0] > pair[1]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is the same as or newer than floor, compared at
// floor's precision.
func (v Version) AtLeast(floor Version) bool {
	return v.Compare(floor) >= 0
}

// IsValid reports whether v has non-negative components and a precision of
// one to three.
func (v Version) IsValid() bool {
	return v.Major >= 0 && v.Minor >= 0 && v.Patch >= 0 &&
		v.Precision >= 1 && v.Precision <= 3
}

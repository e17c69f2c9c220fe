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
	"net/mail"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/clspec/pkg/version"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// builtinValidators are available in every Registry unless WithoutBuiltins
// is applied.
var builtinValidators = map[string]Func{
	"uuid":       validateUUID,
	"url":        validateURL,
	"duration":   validateDuration,
	"identifier": validateIdentifier,
	"email":      validateEmail,
	"version":    validateVersion,
}

// validateUUID accepts any RFC 4122 textual form and normalizes it to the
// canonical lowercase hyphenated form.
func validateUUID(raw string) (Value, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return Value{}, err
	}
	return String(id.String()), nil
}

// validateURL accepts absolute URLs with a scheme and a host.
func validateURL(raw string) (Value, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return Value{}, err
	}
	if u.Scheme == "" || u.Host == "" {
		return Value{}, fmt.Errorf("url must be absolute")
	}
	return String(u.String()), nil
}

// validateDuration accepts Go duration syntax and resolves to the normalized
// duration text.
func validateDuration(raw string) (Value, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return Value{}, err
	}
	return String(d.String()), nil
}

func validateIdentifier(raw string) (Value, error) {
	if !identifierPattern.MatchString(raw) {
		return Value{}, fmt.Errorf("not a valid identifier")
	}
	return String(raw), nil
}

// validateEmail accepts a bare address or a named address and resolves to
// the bare address.
func validateEmail(raw string) (Value, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return Value{}, err
	}
	return String(addr.Address), nil
}

// validateVersion accepts dotted release versions and drops a leading "v".
func validateVersion(raw string) (Value, error) {
	v, err := version.Parse(raw)
	if err != nil {
		return Value{}, err
	}
	return String(v.String()), nil
}

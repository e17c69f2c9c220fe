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
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		raw     string
		want    Value
		wantErr bool
	}{
		{"flag true", KindFlag, "true", Flag(true), false},
		{"flag yes", KindFlag, "yes", Flag(true), false},
		{"flag off", KindFlag, "off", Flag(false), false},
		{"flag invalid", KindFlag, "maybe", Value{}, true},
		{"string", KindString, "hello world", String("hello world"), false},
		{"filename", KindFilename, "file1.txt", String("file1.txt"), false},
		{"integer", KindInteger, "42", Integer(42), false},
		{"negative integer", KindInteger, "-7", Integer(-7), false},
		{"integer not numeric", KindInteger, "abc", Value{}, true},
		{"integer overflow", KindInteger, "99999999999999999999", Value{}, true},
		{"integer decimal", KindInteger, "1.5", Value{}, true},
		{"integer leading space", KindInteger, " 5", Value{}, true},
		{"integer trailing newline", KindInteger, "5\n", Value{}, true},
		{"double", KindDouble, "3.5", Float(3.5), false},
		{"float exponent", KindFloat, "1e3", Float(1000), false},
		{"float hex rejected", KindFloat, "0x1p-2", Value{}, true},
		{"float nan rejected", KindDouble, "NaN", Value{}, true},
		{"float inf rejected", KindDouble, "Infinity", Value{}, true},
		{"float comma rejected", KindDouble, "3,5", Value{}, true},
		{"float surrounding space rejected", KindFloat, " 2.5 ", Value{}, true},
		{"custom without validator", KindCustom, "x", Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.kind, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce(%s, %q) error = %v, wantErr %v", tt.kind, tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("Coerce(%s, %q) = %v, want %v", tt.kind, tt.raw, got, tt.want)
			}
		})
	}
}

func TestRegistryRule(t *testing.T) {
	reg := New()

	tests := []struct {
		name      string
		kind      Kind
		pattern   string
		validator string
		wantRule  string
		wantErr   bool
	}{
		{name: "builtin kind", kind: KindInteger, wantRule: "integer"},
		{name: "pattern", kind: KindString, pattern: "[a-z]+", wantRule: "regex [a-z]+"},
		{name: "custom", kind: KindCustom, validator: "uuid", wantRule: "validator uuid"},
		{name: "custom without validator", kind: KindCustom, wantErr: true},
		{name: "validator on builtin kind", kind: KindString, validator: "uuid", wantErr: true},
		{name: "unknown validator", kind: KindCustom, validator: "nope", wantErr: true},
		{name: "flag with pattern", kind: KindFlag, pattern: "x", wantErr: true},
		{name: "bad pattern", kind: KindString, pattern: "([", wantErr: true},
		{name: "invalid kind", kind: Kind("boolean"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := reg.Rule(tt.kind, tt.pattern, tt.validator)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rule() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && rule.String() != tt.wantRule {
				t.Errorf("Rule().String() = %q, want %q", rule.String(), tt.wantRule)
			}
		})
	}
}

func TestRuleApply(t *testing.T) {
	reg := New()

	t.Run("pattern checked before coercion", func(t *testing.T) {
		rule, err := reg.Rule(KindInteger, "[0-9]{2}", "")
		if err != nil {
			t.Fatal(err)
		}
		if v, err := rule.Apply("12"); err != nil || v.Int() != 12 {
			t.Errorf("Apply(12) = %v, %v", v, err)
		}
		_, err = rule.Apply("123")
		var f *Failure
		if !errors.As(err, &f) {
			t.Fatalf("expected *Failure, got %v", err)
		}
		if f.Rule != "regex [0-9]{2}" || f.Value != "123" {
			t.Errorf("failure = %+v", f)
		}
	})

	t.Run("coercion failure names kind", func(t *testing.T) {
		rule, _ := reg.Rule(KindInteger, "", "")
		_, err := rule.Apply("abc")
		var f *Failure
		if !errors.As(err, &f) {
			t.Fatalf("expected *Failure, got %v", err)
		}
		if f.Rule != "integer" {
			t.Errorf("Rule = %q, want integer", f.Rule)
		}
		if f.Err == nil {
			t.Error("expected underlying reason")
		}
	})

	t.Run("builtin uuid validator normalizes", func(t *testing.T) {
		rule, _ := reg.Rule(KindCustom, "", "uuid")
		v, err := rule.Apply("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
		if err != nil {
			t.Fatal(err)
		}
		if v.Text() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
			t.Errorf("Text() = %q", v.Text())
		}
		if _, err := rule.Apply("not-a-uuid"); err == nil {
			t.Error("expected failure")
		}
	})
}

func TestBuiltinValidators(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"url", "https://example.com/path", "https://example.com/path", false},
		{"url", "example.com", "", true},
		{"url", "/relative", "", true},
		{"duration", "90s", "1m30s", false},
		{"duration", "soon", "", true},
		{"identifier", "string_value", "string_value", false},
		{"identifier", "1value", "", true},
		{"email", "Jane <jane@example.com>", "jane@example.com", false},
		{"email", "jane", "", true},
		{"version", "v1.28.0-gke.1", "1.28.0-gke.1", false},
		{"version", "1.2.3.4", "", true},
	}

	reg := New()
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.raw, func(t *testing.T) {
			fn, ok := reg.Lookup(tt.name)
			if !ok {
				t.Fatalf("validator %q not registered", tt.name)
			}
			v, err := fn(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && v.Text() != tt.want {
				t.Errorf("got %q, want %q", v.Text(), tt.want)
			}
		})
	}
}

func TestRegistryOptions(t *testing.T) {
	port := func(raw string) (Value, error) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 65535 {
			return Value{}, fmt.Errorf("not a TCP port")
		}
		return Integer(int64(n)), nil
	}

	reg := New(WithoutBuiltins(), WithValidator("port", port))
	if got := reg.Names(); len(got) != 1 || got[0] != "port" {
		t.Fatalf("Names() = %v, want [port]", got)
	}

	rule, err := reg.Rule(KindCustom, "", "port")
	if err != nil {
		t.Fatal(err)
	}
	v, err := rule.Apply("8080")
	if err != nil || v.Int() != 8080 {
		t.Errorf("Apply(8080) = %v, %v", v, err)
	}
	if _, err := rule.Apply("70000"); err == nil {
		t.Error("expected failure for out of range port")
	}

	if _, ok := Default().Lookup("uuid"); !ok {
		t.Error("default registry should include builtins")
	}
	if _, ok := reg.Lookup("uuid"); ok {
		t.Error("WithoutBuiltins should remove builtins")
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range SupportedKinds() {
		k, err := ParseKind(name)
		if err != nil {
			t.Errorf("ParseKind(%q) error = %v", name, err)
		}
		if k.String() != name {
			t.Errorf("ParseKind(%q) = %q", name, k)
		}
	}
	if k, err := ParseKind(" Integer "); err != nil || k != KindInteger {
		t.Errorf("ParseKind should be case-insensitive, got %q, %v", k, err)
	}
	if _, err := ParseKind("boolean"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if KindFlag.TakesValue() || !KindString.TakesValue() {
		t.Error("TakesValue mismatch")
	}
	if KindFilename.Placeholder() != "file" || KindDouble.Placeholder() != "double" {
		t.Error("Placeholder mismatch")
	}
}

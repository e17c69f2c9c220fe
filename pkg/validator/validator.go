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
	"math"
	"sort"
	"strconv"
	"strings"
)

// Func is a caller-supplied validator. It receives the raw token and returns
// the resolved value or an error describing why the token was rejected.
type Func func(raw string) (Value, error)

// Failure reports a raw token rejected by a rule.
type Failure struct {
	// Rule describes the rule that rejected the value (e.g. "integer",
	// "regex [a-z]+", "validator uuid").
	Rule string

	// Value is the offending raw token.
	Value string

	// Err is the underlying reason, if any.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("value %q rejected by %s: %v", f.Value, f.Rule, f.Err)
	}
	return fmt.Sprintf("value %q rejected by %s", f.Value, f.Rule)
}

// Unwrap returns the underlying reason.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Registry resolves named validators. It is immutable once built.
type Registry struct {
	validators map[string]Func
}

// Option is a functional option for configuring Registry instances.
type Option func(*Registry)

// WithValidator returns an Option that registers a named validator,
// replacing any builtin of the same name.
func WithValidator(name string, fn Func) Option {
	return func(r *Registry) {
		r.validators[strings.TrimSpace(name)] = fn
	}
}

// WithoutBuiltins returns an Option that removes the builtin validators.
// It only affects validators registered before it in the option list.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		for name := range builtinValidators {
			delete(r.validators, name)
		}
	}
}

// New creates a Registry holding the builtin validators plus any validators
// supplied through options.
func New(opts ...Option) *Registry {
	r := &Registry{
		validators: make(map[string]Func, len(builtinValidators)),
	}
	for name, fn := range builtinValidators {
		r.validators[name] = fn
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRegistry backs Default.
var defaultRegistry = New()

// Default returns the shared registry holding only the builtin validators.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.validators[name]
	return fn, ok
}

// Names returns the registered validator names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rule builds the validation rule for a parameter of the given kind.
// pattern is an optional regular expression; name is the validator
// reference, required for custom kinds and rejected for all others.
func (r *Registry) Rule(kind Kind, pattern, name string) (Rule, error) {
	if !kind.IsValid() {
		return Rule{}, fmt.Errorf("invalid parameter kind: %q", kind)
	}

	rule := Rule{Kind: kind}

	if pattern != "" {
		if kind == KindFlag {
			return Rule{}, fmt.Errorf("flag parameters cannot declare a validation pattern")
		}
		p, err := CompilePattern(pattern)
		if err != nil {
			return Rule{}, err
		}
		rule.Pattern = p
	}

	switch {
	case kind == KindCustom && name == "":
		return Rule{}, fmt.Errorf("custom parameters must reference a validator")
	case kind != KindCustom && name != "":
		return Rule{}, fmt.Errorf("validator %q can only be used with custom parameters", name)
	case kind == KindCustom:
		fn, ok := r.Lookup(name)
		if !ok {
			return Rule{}, fmt.Errorf("unknown validator %q, registered validators: %v", name, r.Names())
		}
		rule.Validator = name
		rule.fn = fn
	}

	return rule, nil
}

// Rule is the compiled validation rule of one parameter.
type Rule struct {
	// Kind is the declared value kind.
	Kind Kind

	// Pattern is the optional regular expression applied to the raw token.
	Pattern *Pattern

	// Validator is the name of the custom validator, if any.
	Validator string

	fn Func
}

// String describes the rule for error messages.
func (r Rule) String() string {
	switch {
	case r.Pattern != nil:
		return "regex " + r.Pattern.String()
	case r.Validator != "":
		return "validator " + r.Validator
	default:
		return string(r.Kind)
	}
}

// Apply coerces and validates a raw token. The pattern, when present, is
// checked against the raw token before kind coercion.
func (r Rule) Apply(raw string) (Value, error) {
	if r.Pattern != nil && !r.Pattern.MatchString(raw) {
		return Value{}, &Failure{Rule: r.String(), Value: raw}
	}

	if r.Kind == KindCustom {
		if r.fn == nil {
			return Value{}, &Failure{Rule: r.String(), Value: raw, Err: fmt.Errorf("validator not resolved")}
		}
		v, err := r.fn(raw)
		if err != nil {
			return Value{}, &Failure{Rule: r.String(), Value: raw, Err: err}
		}
		return v, nil
	}

	v, err := Coerce(r.Kind, raw)
	if err != nil {
		return Value{}, &Failure{Rule: r.String(), Value: raw, Err: err}
	}
	return v, nil
}

// Coerce converts a raw token into a value of a builtin kind. For flags the
// token is interpreted as a boolean literal, which is how flag defaults are
// declared.
func Coerce(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindFlag:
		b, err := parseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return Flag(b), nil
	case KindString, KindFilename:
		return String(raw), nil
	case KindInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a valid integer: %w", unwrapNumError(err))
		}
		return Integer(i), nil
	case KindFloat, KindDouble:
		f, err := parseDecimal(raw)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case KindCustom:
		return Value{}, fmt.Errorf("custom values require a validator")
	default:
		return Value{}, fmt.Errorf("invalid parameter kind: %q", kind)
	}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a valid boolean: %q", raw)
	}
}

// parseDecimal accepts plain decimal and exponent notation only: hexadecimal
// floats, infinities and NaN are rejected.
func parseDecimal(raw string) (float64, error) {
	if raw == "" || strings.ContainsAny(raw, "xXpP_") {
		return 0, fmt.Errorf("not a valid decimal number: %q", raw)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid decimal number: %w", unwrapNumError(err))
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not a valid decimal number: %q", raw)
	}
	return f, nil
}

func unwrapNumError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

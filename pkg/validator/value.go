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
	"encoding/json"
	"strconv"
	"strings"
)

// ValueType identifies which member of a Value is populated.
type ValueType int

// Value types.
const (
	TypeNone ValueType = iota
	TypeFlag
	TypeString
	TypeInteger
	TypeFloat
	TypeSequence
)

// String returns the name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeFlag:
		return "flag"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeSequence:
		return "sequence"
	default:
		return "none"
	}
}

// Value is a resolved parameter value: a flag, a string, an integer, a float,
// or an ordered sequence of values. The zero Value has TypeNone.
type Value struct {
	typ ValueType
	b   bool
	s   string
	i   int64
	f   float64
	seq []Value
}

// Flag returns a flag value.
func Flag(b bool) Value {
	return Value{typ: TypeFlag, b: b}
}

// String returns a string value.
func String(s string) Value {
	return Value{typ: TypeString, s: s}
}

// Integer returns an integer value.
func Integer(i int64) Value {
	return Value{typ: TypeInteger, i: i}
}

// Float returns a floating point value.
func Float(f float64) Value {
	return Value{typ: TypeFloat, f: f}
}

// Sequence returns an ordered sequence of values. The slice is copied.
func Sequence(values ...Value) Value {
	seq := make([]Value, len(values))
	copy(seq, values)
	return Value{typ: TypeSequence, seq: seq}
}

// Type returns the value type.
func (v Value) Type() ValueType {
	return v.typ
}

// IsNone reports whether v is the zero Value.
func (v Value) IsNone() bool {
	return v.typ == TypeNone
}

// Bool returns the flag state. It is false for non-flag values.
func (v Value) Bool() bool {
	return v.typ == TypeFlag && v.b
}

// Text returns the string member. It is empty for non-string values.
func (v Value) Text() string {
	if v.typ != TypeString {
		return ""
	}
	return v.s
}

// Int returns the integer member. It is zero for non-integer values.
func (v Value) Int() int64 {
	if v.typ != TypeInteger {
		return 0
	}
	return v.i
}

// Float returns the float member, widening integers.
func (v Value) Float() float64 {
	switch v.typ {
	case TypeFloat:
		return v.f
	case TypeInteger:
		return float64(v.i)
	default:
		return 0
	}
}

// Values returns a copy of the sequence members. It is nil for scalars.
func (v Value) Values() []Value {
	if v.typ != TypeSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Len returns the number of sequence members, or 1 for a scalar and 0 for none.
func (v Value) Len() int {
	switch v.typ {
	case TypeNone:
		return 0
	case TypeSequence:
		return len(v.seq)
	default:
		return 1
	}
}

// Strings flattens the value into its textual form, one entry per scalar.
func (v Value) Strings() []string {
	switch v.typ {
	case TypeNone:
		return nil
	case TypeSequence:
		var out []string
		for _, m := range v.seq {
			out = append(out, m.Strings()...)
		}
		return out
	default:
		return []string{v.String()}
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.typ {
	case TypeFlag:
		return strconv.FormatBool(v.b)
	case TypeString:
		return v.s
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeSequence:
		parts := make([]string, len(v.seq))
		for i, m := range v.seq {
			parts[i] = m.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// Interface returns the value as a plain Go value: bool, string, int64,
// float64, []any, or nil.
func (v Value) Interface() any {
	switch v.typ {
	case TypeFlag:
		return v.b
	case TypeString:
		return v.s
	case TypeInteger:
		return v.i
	case TypeFloat:
		return v.f
	case TypeSequence:
		out := make([]any, len(v.seq))
		for i, m := range v.seq {
			out[i] = m.Interface()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether two values have the same type and contents.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeFlag:
		return v.b == o.b
	case TypeString:
		return v.s == o.s
	case TypeInteger:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f
	case TypeSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

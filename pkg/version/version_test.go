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


package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "1", want: Version{Major: 1, Precision: 1}},
		{in: "v1.2", want: Version{Major: 1, Minor: 2, Precision: 2}},
		{in: "1.2.3", want: Version{Major: 1, Minor: 2, Patch: 3, Precision: 3}},
		{in: "1.28.0-gke.1337000", want: Version{Major: 1, Minor: 28, Precision: 3, Extras: "-gke.1337000"}},
		{in: "2.0.1+build.7", want: Version{Major: 2, Patch: 1, Precision: 3, Extras: "+build.7"}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "1.2.3.4", wantErr: ErrTooManyComponents},
		{in: "1..2", wantErr: ErrNonNumeric},
		{in: "a.b", wantErr: ErrNonNumeric},
		{in: "-1", wantErr: ErrNonNumeric},
		{in: "1.+2", wantErr: ErrNonNumeric},
		{in: " 1.2", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, in := range []string{"1", "1.2", "1.2.3", "1.28.0-gke.1337000", "3.1+meta"} {
		v := MustParse(in)
		assert.Equal(t, in, v.String())
		assert.Equal(t, v, MustParse(v.String()))
	}
	assert.Equal(t, "1.2.3", MustParse("v1.2.3").String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3", "1.2.9", 1},
		{"1.2", "1.2.9", 0},
		{"2", "1.9.9", 1},
		{"1.2.3-rc1", "1.2.3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
			assert.Equal(t, -tt.want, MustParse(tt.b).Compare(MustParse(tt.a)))
		})
	}

	assert.True(t, MustParse("1.29.1").AtLeast(MustParse("1.29")))
	assert.False(t, MustParse("1.28.9").AtLeast(MustParse("1.29")))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("x") })
}

func FuzzParse(f *testing.F) {
	for _, seed := range []string{"1", "v1.2", "1.2.3", "1.2.3-x", "", ".", "1.", "vv1", "-1", "1.2.3.4"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := Parse(input)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Fatalf("Parse(%q) returned invalid version %+v", input, v)
		}
		again, err := Parse(v.String())
		if err != nil {
			t.Fatalf("re-parse of %q (from %q) failed: %v", v.String(), input, err)
		}
		if again != v {
			t.Fatalf("round trip mismatch for %q: %+v != %+v", input, v, again)
		}
	})
}

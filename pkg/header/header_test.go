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

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(WithKind(KindGrammar), WithMetadata("name", "copy"))

	assert.Equal(t, KindGrammar, h.GetKind())
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "copy", h.GetMetadata()["name"])

	h = New(WithAPIVersion("other/v1"))
	assert.Equal(t, "other/v1", h.APIVersion)
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindCommandLine, "v1.2.3")

	assert.Equal(t, KindCommandLine, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v1.2.3", h.Metadata["version"])
	assert.NotEmpty(t, h.Metadata["timestamp"])

	h.Init(KindCheckResult, "")
	_, ok := h.Metadata["version"]
	assert.False(t, ok, "empty version should not be recorded")
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{KindCommandDefinition, KindGrammar, KindCommandLine, KindCheckResult} {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, Kind("Snapshot").IsValid())
}

func TestExpect(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{"empty header accepted", Header{}, false},
		{"matching", Header{Kind: KindCommandDefinition, APIVersion: APIVersion}, false},
		{"kind only", Header{Kind: KindCommandDefinition}, false},
		{"wrong kind", Header{Kind: KindGrammar}, true},
		{"wrong version", Header{Kind: KindCommandDefinition, APIVersion: "v2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Expect(KindCommandDefinition)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

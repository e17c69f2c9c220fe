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

package definition

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/clspec/pkg/errors"
	"github.com/NVIDIA/clspec/pkg/k8s/client"
	"github.com/NVIDIA/clspec/pkg/serializer"
	"github.com/NVIDIA/clspec/pkg/validator"
)

const exampleYAML = `
apiVersion: clspec.nvidia.com/v1alpha1
kind: CommandDefinition
metadata:
  name: example
spec:
  allow-files: true
  min-files: 0
  topics:
    - name: numbers,num
      text: |
          Numeric options.
            Indented detail.
  parameters:
    - kind: flag
      name: boolean_flag,bf
    - kind: double
      name: double_value,dv
      topic: num
    - kind: string
      name: string_parameter,sp
      default: This is the default value
    - kind: integer
      name: count,c
      default: 3
    - kind: string
      name: string_value,sv
      arguments: 1..5
      text: |
          Between one and
          five values.
`

func TestParse_YAML(t *testing.T) {
	cmd, err := ParseString(serializer.FormatYAML, exampleYAML)
	require.NoError(t, err)

	assert.Equal(t, "example", cmd.Name, "name falls back to metadata")
	assert.True(t, cmd.AllowFiles)
	require.NotNil(t, cmd.MinFiles)
	assert.Equal(t, 0, *cmd.MinFiles)
	assert.Nil(t, cmd.MaxFiles)

	require.Len(t, cmd.Topics, 1)
	assert.Equal(t, "numbers,num", cmd.Topics[0].Name)
	assert.Equal(t, "Numeric options.\n  Indented detail.", cmd.Topics[0].Text)

	require.Len(t, cmd.Parameters, 5)
	assert.Equal(t, validator.KindFlag, cmd.Parameters[0].Kind)
	assert.Equal(t, "num", cmd.Parameters[1].Topic)
	require.NotNil(t, cmd.Parameters[2].Default)
	assert.Equal(t, "This is the default value", cmd.Parameters[2].Default.String())
	assert.Equal(t, Ptr("3"), cmd.Parameters[3].Default)
	assert.Equal(t, "1..5", cmd.Parameters[4].Arguments)
	assert.Equal(t, "Between one and\nfive values.", cmd.Parameters[4].Text)

	require.NoError(t, Validate(cmd))
}

func TestParse_JSON(t *testing.T) {
	doc := `{
	  "kind": "CommandDefinition",
	  "spec": {
	    "name": "copy",
	    "case-insensitive": true,
	    "parameters": [
	      {"kind": "integer", "name": "count", "default": 10},
	      {"kind": "float", "name": "ratio", "default": 0.5},
	      {"kind": "flag", "name": "force", "default": true},
	      {"kind": "string", "name": "label", "default": "x"}
	    ]
	  }
	}`

	cmd, err := ParseString(serializer.FormatJSON, doc)
	require.NoError(t, err)

	assert.Equal(t, "copy", cmd.Name)
	assert.True(t, cmd.CaseInsensitive)
	assert.Equal(t, "10", cmd.Parameters[0].Default.String())
	assert.Equal(t, "0.5", cmd.Parameters[1].Default.String())
	assert.Equal(t, "true", cmd.Parameters[2].Default.String())
	assert.Equal(t, "x", cmd.Parameters[3].Default.String())
}

func TestParse_DedentsUsage(t *testing.T) {
	doc := `{
	  "spec": {
	    "name": "copy",
	    "usage": "\n      copy [options] SOURCE DEST\n        copies SOURCE to DEST\n    "
	  }
	}`

	cmd, err := ParseString(serializer.FormatJSON, doc)
	require.NoError(t, err)
	assert.Equal(t, "copy [options] SOURCE DEST\n  copies SOURCE to DEST", cmd.Usage)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format serializer.Format
		doc    string
	}{
		{"no spec", serializer.FormatYAML, "kind: CommandDefinition\n"},
		{"wrong kind", serializer.FormatYAML, "kind: Grammar\nspec: {}\n"},
		{"wrong api version", serializer.FormatYAML, "apiVersion: v9\nspec: {}\n"},
		{"unknown field", serializer.FormatYAML, "spec:\n  parameters:\n    - kind: flag\n      name: a\n      requird: true\n"},
		{"sequence default", serializer.FormatYAML, "spec:\n  parameters:\n    - kind: string\n      name: a\n      default: [x, y]\n"},
		{"object default json", serializer.FormatJSON, `{"spec":{"parameters":[{"kind":"string","name":"a","default":{}}]}}`},
		{"table format", serializer.FormatTable, "spec: {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.format, tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "   hello  ", "hello"},
		{"common indent", "\n    a\n      b\n    c\n", "a\n  b\nc"},
		{"blank lines kept inside", "  a\n\n  b", "a\n\nb"},
		{"tabs", "\tx\n\ty", "x\ny"},
		{"crlf", "  a\r\n  b", "a\nb"},
		{"mixed indent keeps common part", "\t  a\n\t b", " a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedent(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *Command
		wantNode string
	}{
		{
			name: "valid",
			cmd: &Command{
				AllowFiles: true,
				MinFiles:   ptr.To(1),
				MaxFiles:   ptr.To(2),
				Topics:     []Topic{{Name: "general"}},
				Parameters: []Parameter{{Kind: validator.KindString, Name: "a"}},
			},
		},
		{
			name:     "negative min-files",
			cmd:      &Command{MinFiles: ptr.To(-1)},
			wantNode: "command",
		},
		{
			name:     "negative max-files",
			cmd:      &Command{MaxFiles: ptr.To(-3)},
			wantNode: "command",
		},
		{
			name:     "empty topic name",
			cmd:      &Command{Topics: []Topic{{Name: "a"}, {Name: "  "}}},
			wantNode: "topics[1]",
		},
		{
			name:     "empty parameter name",
			cmd:      &Command{Parameters: []Parameter{{Kind: validator.KindFlag}}},
			wantNode: "parameters[0]",
		},
		{
			name:     "missing kind",
			cmd:      &Command{Parameters: []Parameter{{Name: "a"}}},
			wantNode: "parameters[0]",
		},
		{
			name:     "unknown kind",
			cmd:      &Command{Parameters: []Parameter{{Kind: "a"}, {Kind: "boolean", Name: "b"}}},
			wantNode: "parameters[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cmd)
			if tt.wantNode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			se := errors.AsStructured(err)
			assert.Equal(t, errors.ErrCodeInvalidDefinition, se.Code)
			assert.Equal(t, tt.wantNode, se.Context["node"])
		})
	}

	assert.True(t, errors.HasCode(Validate(nil), errors.ErrCodeInvalidDefinition))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleYAML), 0o600))

	cmd, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, cmd.Parameters, 5)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ConfigMap(t *testing.T) {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "example-cli", Namespace: "tools"},
		Data:       map[string]string{ConfigMapDataKey + ".yaml": exampleYAML},
	}
	factory := func(string) (client.Interface, error) {
		return fake.NewSimpleClientset(cm), nil
	}

	cmd, err := Load(context.Background(), "cm://tools/example-cli", serializer.WithClientFactory(factory))
	require.NoError(t, err)
	assert.Equal(t, "example", cmd.Name)
	assert.Len(t, cmd.Parameters, 5)

	_, err = Load(context.Background(), "cm://tools/other", serializer.WithClientFactory(factory))
	assert.Error(t, err)
}

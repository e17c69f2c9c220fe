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

package serializer

import (
	"context"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/clspec/pkg/k8s/client"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{
			name:          "valid URI",
			uri:           "cm://tools/copy-cli",
			wantNamespace: "tools",
			wantName:      "copy-cli",
		},
		{
			name:          "valid URI with spaces",
			uri:           "cm://tools / copy-cli ",
			wantNamespace: "tools",
			wantName:      "copy-cli",
		},
		{name: "missing scheme", uri: "tools/copy-cli", wantErr: true},
		{name: "wrong scheme", uri: "http://tools/copy-cli", wantErr: true},
		{name: "missing name", uri: "cm://tools/", wantErr: true},
		{name: "missing namespace", uri: "cm:///copy-cli", wantErr: true},
		{name: "missing separator", uri: "cm://tools", wantErr: true},
		{name: "empty URI", uri: "", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := ParseConfigMapURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfigMapURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if namespace != tt.wantNamespace {
				t.Errorf("namespace = %q, want %q", namespace, tt.wantNamespace)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func newConfigMap(data map[string]string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "copy-cli", Namespace: "tools"},
		Data:       data,
	}
}

func TestReadConfigMap(t *testing.T) {
	tests := []struct {
		name        string
		data        map[string]string
		wantContent string
		wantFormat  Format
		wantErr     string
	}{
		{
			name:        "yaml key",
			data:        map[string]string{"definition.yaml": "a: 1"},
			wantContent: "a: 1",
			wantFormat:  FormatYAML,
		},
		{
			name:        "json key",
			data:        map[string]string{"definition.json": `{"a":1}`},
			wantContent: `{"a":1}`,
			wantFormat:  FormatJSON,
		},
		{
			name:        "yaml preferred over json",
			data:        map[string]string{"definition.json": `{"a":1}`, "definition.yml": "a: 2"},
			wantContent: "a: 2",
			wantFormat:  FormatYAML,
		},
		{
			name: "declared format selects key",
			data: map[string]string{
				"format":          "json",
				"definition.yaml": "a: 1",
				"definition.json": `{"a":2}`,
			},
			wantContent: `{"a":2}`,
			wantFormat:  FormatJSON,
		},
		{
			name:    "declared table format",
			data:    map[string]string{"format": "table", "definition.yaml": "a: 1"},
			wantErr: "unsupported format",
		},
		{
			name:    "no matching key",
			data:    map[string]string{"other.yaml": "a: 1"},
			wantErr: "has no definition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fake.NewSimpleClientset(newConfigMap(tt.data))

			content, format, err := ReadConfigMap(context.Background(), c, "tools", "copy-cli", "definition")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadConfigMap() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadConfigMap() error = %v", err)
			}
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
		})
	}
}

func TestReadConfigMap_NotFound(t *testing.T) {
	c := fake.NewSimpleClientset()
	_, _, err := ReadConfigMap(context.Background(), c, "tools", "missing", "definition")
	if err == nil || !strings.Contains(err.Error(), "failed to get ConfigMap tools/missing") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSource_ConfigMap(t *testing.T) {
	cm := newConfigMap(map[string]string{"definition.yaml": "name: copy\nvalue: 3\n"})

	var gotKubeconfig string
	factory := func(kubeconfig string) (client.Interface, error) {
		gotKubeconfig = kubeconfig
		return fake.NewSimpleClientset(cm), nil
	}

	cfg, err := FromSource[testConfig](context.Background(), "cm://tools/copy-cli",
		WithClientFactory(factory),
		WithKubeconfig("/tmp/kubeconfig"),
		WithDataKey("definition"),
	)
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}
	if cfg.Name != "copy" || cfg.Value != 3 {
		t.Errorf("FromSource() = %+v", cfg)
	}
	if gotKubeconfig != "/tmp/kubeconfig" {
		t.Errorf("factory kubeconfig = %q", gotKubeconfig)
	}
}

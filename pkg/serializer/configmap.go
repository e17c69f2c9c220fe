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
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/clspec/pkg/defaults"
	"github.com/NVIDIA/clspec/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ConfigMapURIScheme prefixes ConfigMap references: cm://namespace/name.
const ConfigMapURIScheme = "cm://"

// defaultDataKey is the ConfigMap data key stem used when none is configured.
const defaultDataKey = "data"

// formatDataKey is an optional ConfigMap data key naming the format of the
// document stored under the stem key.
const formatDataKey = "format"

// ParseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}

// ReadConfigMap returns the document stored in a ConfigMap under the given
// key stem along with its format. Keys are tried in order: the key named by
// the "format" entry, then <stem>.yaml, <stem>.yml and <stem>.json.
func ReadConfigMap(ctx context.Context, c client.Interface, namespace, name, stem string) (string, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return "", "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	candidates := []struct {
		key    string
		format Format
	}{
		{stem + ".yaml", FormatYAML},
		{stem + ".yml", FormatYAML},
		{stem + ".json", FormatJSON},
	}

	if declared, ok := cm.Data[formatDataKey]; ok {
		f, err := ParseFormat(declared)
		if err != nil || f == FormatTable {
			return "", "", fmt.Errorf("ConfigMap %s/%s declares unsupported format %q", namespace, name, declared)
		}
		if data, ok := cm.Data[stem+"."+string(f)]; ok {
			return data, f, nil
		}
	}

	for _, cand := range candidates {
		if data, ok := cm.Data[cand.key]; ok {
			slog.Debug("reading from ConfigMap",
				"namespace", namespace,
				"name", name,
				"key", cand.key,
				"size", len(data))
			return data, cand.format, nil
		}
	}

	return "", "", fmt.Errorf("ConfigMap %s/%s has no %s.{yaml,yml,json} data", namespace, name, stem)
}

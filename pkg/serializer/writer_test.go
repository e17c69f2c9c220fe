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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type labeled struct {
	label string
}

func (l labeled) String() string { return "<" + l.label + ">" }

type nested struct {
	Name   string
	Values map[string]any
	Files  []string
	Label  labeled
	Empty  *testConfig
	hidden string
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	if err := w.Serialize(context.Background(), testConfig{Name: "copy", Value: 1}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got testConfig
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Name != "copy" || got.Value != 1 {
		t.Errorf("got %+v", got)
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Errorf("expected indented output, got %q", buf.String())
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	if err := w.Serialize(context.Background(), testConfig{Name: "copy", Value: 1}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got testConfig
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got.Name != "copy" || got.Value != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	data := nested{
		Name:   "copy",
		Values: map[string]any{"count": 3},
		Files:  []string{"a.txt", "b.txt"},
		Label:  labeled{label: "x"},
		hidden: "secret",
	}
	if err := w.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"FIELD", "VALUE",
		"Name", "copy",
		"Values.count", "3",
		"Files.[0]", "a.txt",
		"Files.[1]", "b.txt",
		"Label", "<x>",
		"Empty", "<nil>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("unexported fields should not be rendered")
	}
}

func TestWriter_SerializeTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(FormatTable, &buf).Serialize(context.Background(), map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "<empty>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	if w.format != FormatJSON {
		t.Errorf("format = %q, want json fallback", w.format)
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	w, err := NewFileWriterOrStdout(FormatJSON, "")
	if err != nil {
		t.Fatalf("empty path error = %v", err)
	}
	if w.output != os.Stdout {
		t.Error("empty path should write to stdout")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	w, err = NewFileWriterOrStdout(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileWriterOrStdout() error = %v", err)
	}
	if err := w.Serialize(context.Background(), testConfig{Name: "file"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"file"`) {
		t.Errorf("file content = %q", data)
	}

	if _, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "out.json")); err == nil {
		t.Error("expected error for missing directory")
	}
}

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

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStructuredLoggerAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "clspec", "v1.2.3", slog.LevelInfo)
	logger.Info("grammar compiled", "parameters", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["module"] != "clspec" {
		t.Errorf("module = %v, want clspec", entry["module"])
	}
	if entry["version"] != "v1.2.3" {
		t.Errorf("version = %v, want v1.2.3", entry["version"])
	}
	if entry["msg"] != "grammar compiled" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if _, ok := entry["source"]; ok {
		t.Error("source should only be added at debug level")
	}
}

func TestStructuredLoggerDebugSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "clspec", "dev", slog.LevelDebug)
	logger.Debug("alias resolved", "alias", "sv")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := entry["source"]; !ok {
		t.Error("expected source location at debug level")
	}
}

func TestStructuredLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newStructuredLogger(&buf, "clspec", "dev", slog.LevelWarn)
	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %s", buf.String())
	}
}
